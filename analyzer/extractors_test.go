package analyzer

import (
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docFrom(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

// words builds a paragraph body with exactly n words.
func words(n int) string {
	return strings.TrimSpace(strings.Repeat("alpha ", n))
}

func TestExtractSchemaFAQAndHowTo(t *testing.T) {
	html := `<html><head>
<script type="application/ld+json">
{"@type": "FAQPage", "mainEntity": [{"name": "q1"}, {"name": "q2"}]}
</script>
<script type="application/ld+json">
[{"@type": "HowTo", "step": [{"name": "s1"}, {"name": "s2"}, {"name": "s3"}]},
 {"@type": "BlogArticle"}]
</script>
</head><body></body></html>`

	signals := ExtractSchema(docFrom(t, html))

	assert.True(t, signals.FAQPresent)
	assert.Equal(t, 2, signals.FAQCount)
	assert.True(t, signals.HowToPresent)
	assert.Equal(t, 3, signals.HowToCount)
	assert.True(t, signals.ArticlePresent, "type containing 'article' should match case-insensitively")
}

func TestExtractSchemaMalformedBlockSkipped(t *testing.T) {
	html := `<html><head>
<script type="application/ld+json">{not valid json</script>
<script type="application/ld+json">{"@type": "Article"}</script>
</head><body></body></html>`

	signals := ExtractSchema(docFrom(t, html))

	assert.False(t, signals.FAQPresent)
	assert.True(t, signals.ArticlePresent)
}

func TestExtractSchemaLaterBlockOverwritesCount(t *testing.T) {
	// Presence is sticky but counts follow document order: the last FAQ
	// block scanned determines the stored count.
	html := `<html><head>
<script type="application/ld+json">{"@type": "FAQPage", "mainEntity": [{}, {}, {}, {}]}</script>
<script type="application/ld+json">{"@type": "FAQPage", "mainEntity": [{}]}</script>
</head><body></body></html>`

	signals := ExtractSchema(docFrom(t, html))

	assert.True(t, signals.FAQPresent)
	assert.Equal(t, 1, signals.FAQCount)
}

func TestExtractSchemaMissingEntriesCountZero(t *testing.T) {
	html := `<html><head>
<script type="application/ld+json">{"@type": "FAQPage"}</script>
</head><body></body></html>`

	signals := ExtractSchema(docFrom(t, html))

	assert.True(t, signals.FAQPresent)
	assert.Equal(t, 0, signals.FAQCount)
}

func TestExtractQuestions(t *testing.T) {
	html := `<html><body>
<h1>Introduction</h1>
<h2>How to begin</h2>
<h2>Pricing options?</h2>
<h3>?</h3>
<h2>Conclusion</h2>
</body></html>`

	signals := ExtractQuestions(docFrom(t, html))

	assert.Equal(t, 5, signals.TotalHeadings)
	assert.Equal(t, 3, signals.QuestionHeadings)
	assert.Equal(t, []string{"How to begin", "Pricing options?", "?"}, signals.Examples)
}

func TestExtractQuestionsCapsExamplesAtFive(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("<html><body>")
	for i := 0; i < 8; i++ {
		sb.WriteString("<h2>What is this?</h2>")
	}
	sb.WriteString("</body></html>")

	signals := ExtractQuestions(docFrom(t, sb.String()))

	assert.Equal(t, 8, signals.QuestionHeadings)
	assert.Len(t, signals.Examples, 5)
}

func TestExtractSnippetCompositeScore(t *testing.T) {
	// First paragraph of exactly 50 words, one list, no tables, three more
	// 45-word paragraphs: 30 + 25 + 0 + 25 = 80.
	html := `<html><body>
<p>` + words(50) + `</p>
<p>` + words(45) + `</p>
<p>` + words(45) + `</p>
<p>` + words(45) + `</p>
<ul><li>one</li></ul>
</body></html>`

	signals := ExtractSnippet(docFrom(t, html))

	assert.Equal(t, 50, signals.FirstParaWords)
	assert.Equal(t, 1, signals.Lists)
	assert.Equal(t, 0, signals.Tables)
	assert.Equal(t, 4, signals.ShortParagraphs)
	assert.Equal(t, 80, signals.SnippetScore)
}

func TestExtractSnippetNoParagraphs(t *testing.T) {
	signals := ExtractSnippet(docFrom(t, "<html><body><div>no paragraphs here</div></body></html>"))

	assert.Equal(t, 0, signals.FirstParaWords)
	assert.Equal(t, 0, signals.SnippetScore)
}

func TestExtractStructure(t *testing.T) {
	html := `<html><body>
<nav class="table-of-contents"><a href="#a">A</a></nav>
<p>Key Takeaways: ` + words(10) + `</p>
<p>` + words(30) + `</p>
</body></html>`

	stubReadability := func(string) (float64, error) { return 72.34, nil }
	signals := ExtractStructure(docFrom(t, html), stubReadability)

	assert.True(t, signals.HasTLDR)
	assert.True(t, signals.HasTOC)
	assert.InDelta(t, 21.0, signals.AvgParaLength, 0.01, "mean of 12 and 30 word paragraphs")
	assert.Equal(t, 72.3, signals.FleschReadingEase)
	assert.Greater(t, signals.WordCount, 40)
}

func TestExtractStructureReadabilityFailureSubstitutesZero(t *testing.T) {
	failing := func(string) (float64, error) { return 0, errors.New("provider broke") }
	signals := ExtractStructure(docFrom(t, "<html><body><p>short text</p></body></html>"), failing)

	assert.Equal(t, 0.0, signals.FleschReadingEase)
}

func TestExtractStructureIgnoresScriptText(t *testing.T) {
	html := `<html><body>
<script>var hidden = "summary of nothing with many many words";</script>
<p>one two three</p>
</body></html>`

	signals := ExtractStructure(docFrom(t, html), nil)

	assert.False(t, signals.HasTLDR, "script contents are not visible text")
	assert.Equal(t, 3, signals.WordCount)
}

func TestExtractEntities(t *testing.T) {
	html := `<html><body>
<p>Alpha Beta partnered with Gamma. Later, Alpha Beta expanded into new markets.</p>
</body></html>`

	signals := ExtractEntities(docFrom(t, html))

	assert.Equal(t, 3, signals.EntitiesFound)
	assert.Equal(t, []string{"Alpha Beta", "Gamma", "Later"}, signals.Examples,
		"examples keep first-occurrence order and deduplicate")
}

func TestExtractEntitiesCapsExamplesAtTen(t *testing.T) {
	names := []string{"Aaa", "Bbb", "Ccc", "Ddd", "Eee", "Fff", "Ggg", "Hhh", "Iii", "Jjj", "Kkk", "Lll"}
	html := "<html><body><p>" + strings.Join(names, " and ") + "</p></body></html>"

	signals := ExtractEntities(docFrom(t, html))

	assert.Equal(t, 12, signals.EntitiesFound)
	assert.Len(t, signals.Examples, 10)
}

func TestExtractEEAT(t *testing.T) {
	html := `<html><head>
<meta name="Author" content="Jane Smith">
<meta property="article:published_time" content="2024-01-15">
</head><body>
<div class="author-bio">About Jane</div>
<section class="references">Sources</section>
<a href="/about-us">About</a>
<a href="/CONTACT">Contact</a>
</body></html>`

	signals := ExtractEEAT(docFrom(t, html), "https://example.com")

	assert.True(t, signals.HasAuthorMeta)
	assert.True(t, signals.HasDate)
	assert.True(t, signals.HasAuthorBio)
	assert.True(t, signals.HasSources)
	assert.True(t, signals.HasAboutLink)
	assert.True(t, signals.HasContactLink)
}

func TestExtractEEATEmptyPage(t *testing.T) {
	signals := ExtractEEAT(docFrom(t, "<html><body><p>plain text</p></body></html>"), "https://example.com")

	assert.Equal(t, EEATSignals{}, signals)
}
