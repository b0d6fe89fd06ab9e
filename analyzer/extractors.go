package analyzer

import (
	"encoding/json"
	"math"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	tldrPattern    = regexp.MustCompile(`(?i)(tl;?dr|summary|key takeaways)`)
	tocPattern     = regexp.MustCompile(`(?i)(toc|table-of-contents)`)
	entityPattern  = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\b`)
	authorPattern  = regexp.MustCompile(`(?i)author`)
	datePattern    = regexp.MustCompile(`(?i)published`)
	bioPattern     = regexp.MustCompile(`(?i)(author|bio)`)
	sourcePattern  = regexp.MustCompile(`(?i)(reference|source|citation)`)
)

// questionWords are the interrogative/auxiliary prefixes that mark a heading
// as question-based.
var questionWords = []string{
	"what", "why", "how", "when", "where", "who",
	"which", "can", "is", "are", "do", "does",
}

// ReadabilityFunc scores plain text for reading ease. Failures are tolerated
// by substituting 0, never propagated.
type ReadabilityFunc func(text string) (float64, error)

// visibleText returns the page text with script, style and noscript contents
// stripped. Works on a clone so the document stays untouched.
func visibleText(doc *goquery.Document) string {
	body := doc.Find("body").Clone()
	body.Find("script, style, noscript").Remove()
	return body.Text()
}

// ExtractSchema scans all JSON-LD blocks for FAQ, HowTo and Article markup.
// Malformed blocks are skipped; presence flags are sticky while counts follow
// document order, so a later block of the same type overwrites the count.
func ExtractSchema(doc *goquery.Document) SchemaSignals {
	var out SchemaSignals

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		var payload any
		if err := json.Unmarshal([]byte(s.Text()), &payload); err != nil {
			return
		}

		var objects []map[string]any
		switch v := payload.(type) {
		case []any:
			for _, item := range v {
				if obj, ok := item.(map[string]any); ok {
					objects = append(objects, obj)
				}
			}
		case map[string]any:
			objects = append(objects, v)
		}

		for _, obj := range objects {
			schemaType, _ := obj["@type"].(string)
			schemaType = strings.ToLower(schemaType)

			switch {
			case strings.Contains(schemaType, "faqpage"):
				out.FAQPresent = true
				out.FAQCount = entryCount(obj["mainEntity"])
			case strings.Contains(schemaType, "howto"):
				out.HowToPresent = true
				out.HowToCount = entryCount(obj["step"])
			case strings.Contains(schemaType, "article"):
				out.ArticlePresent = true
			}
		}
	})

	return out
}

// entryCount counts the elements of a JSON array value; anything else is 0.
func entryCount(v any) int {
	arr, ok := v.([]any)
	if !ok {
		return 0
	}
	return len(arr)
}

// ExtractQuestions counts headings and identifies question-based ones.
func ExtractQuestions(doc *goquery.Document) QuestionSignals {
	var out QuestionSignals

	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		out.TotalHeadings++

		text := strings.TrimSpace(s.Text())
		if isQuestionHeading(text) {
			out.QuestionHeadings++
			if len(out.Examples) < 5 {
				out.Examples = append(out.Examples, text)
			}
		}
	})

	return out
}

func isQuestionHeading(text string) bool {
	lower := strings.ToLower(text)
	if strings.HasSuffix(lower, "?") {
		return true
	}
	for _, qw := range questionWords {
		if strings.HasPrefix(lower, qw) {
			return true
		}
	}
	return false
}

// ExtractSnippet measures featured-snippet readiness: first paragraph length,
// lists, tables, 40-60 word paragraphs, and a composite 0-100 score.
func ExtractSnippet(doc *goquery.Document) SnippetSignals {
	var out SnippetSignals

	paragraphs := doc.Find("p")
	paragraphs.Each(func(i int, s *goquery.Selection) {
		wc := len(strings.Fields(s.Text()))
		if i == 0 {
			out.FirstParaWords = wc
		}
		if wc >= 40 && wc <= 60 {
			out.ShortParagraphs++
		}
	})

	out.Lists = doc.Find("ul, ol").Length()
	out.Tables = doc.Find("table").Length()

	score := 0
	if out.FirstParaWords >= 40 && out.FirstParaWords <= 60 {
		score += 30
	}
	if out.Lists > 0 {
		score += 25
	}
	if out.Tables > 0 {
		score += 20
	}
	if out.ShortParagraphs >= 3 {
		score += 25
	}
	if score > 100 {
		score = 100
	}
	out.SnippetScore = score

	return out
}

// ExtractStructure measures content structure and delegates reading ease to
// the provided readability function, substituting 0 on failure.
func ExtractStructure(doc *goquery.Document, readability ReadabilityFunc) StructureSignals {
	var out StructureSignals

	text := visibleText(doc)

	out.HasTLDR = tldrPattern.MatchString(text)

	doc.Find("div, nav").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if class, ok := s.Attr("class"); ok && tocPattern.MatchString(class) {
			out.HasTOC = true
			return false
		}
		return true
	})

	paragraphs := doc.Find("p")
	if paragraphs.Length() > 0 {
		totalWords := 0
		paragraphs.Each(func(_ int, s *goquery.Selection) {
			totalWords += len(strings.Fields(s.Text()))
		})
		out.AvgParaLength = round1(float64(totalWords) / float64(paragraphs.Length()))
	}

	out.WordCount = len(strings.Fields(text))

	if readability != nil {
		if score, err := readability(text); err == nil {
			out.FleschReadingEase = round1(score)
		}
	}

	return out
}

// ExtractEntities runs a heuristic proper-noun scan over the visible text.
// Examples keep first-occurrence order so repeated runs are identical.
func ExtractEntities(doc *goquery.Document) EntitySignals {
	var out EntitySignals

	matches := entityPattern.FindAllString(visibleText(doc), -1)
	seen := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		out.EntitiesFound++
		if len(out.Examples) < 10 {
			out.Examples = append(out.Examples, m)
		}
	}

	return out
}

// ExtractEEAT checks trust markers in the markup. The URL is part of the
// contract but currently unused by the checks.
func ExtractEEAT(doc *goquery.Document, url string) EEATSignals {
	_ = url

	var out EEATSignals

	doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		if name, ok := s.Attr("name"); ok && authorPattern.MatchString(name) {
			out.HasAuthorMeta = true
		}
		if prop, ok := s.Attr("property"); ok && datePattern.MatchString(prop) {
			out.HasDate = true
		}
	})

	doc.Find("div, section").Each(func(_ int, s *goquery.Selection) {
		class, ok := s.Attr("class")
		if !ok {
			return
		}
		if bioPattern.MatchString(class) {
			out.HasAuthorBio = true
		}
		if sourcePattern.MatchString(class) {
			out.HasSources = true
		}
	})

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.ToLower(href)
		if strings.Contains(href, "about") {
			out.HasAboutLink = true
		}
		if strings.Contains(href, "contact") {
			out.HasContactLink = true
		}
	})

	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
