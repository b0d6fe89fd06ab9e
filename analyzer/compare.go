package analyzer

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// YourSiteLabel marks the operator's own page in a comparison.
const YourSiteLabel = "Your Site"

// CompareTarget is one labeled URL in a comparison run.
type CompareTarget struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// SiteResult holds the audit for one successfully analyzed site plus its
// per-component percentages for radar-style display.
type SiteResult struct {
	Label        string             `json:"label"`
	URL          string             `json:"url"`
	Audit        *Audit             `json:"audit"`
	ComponentPct map[string]float64 `json:"componentPct"`
}

// RankEntry is one row of the ranked score table.
type RankEntry struct {
	Rank  int    `json:"rank"`
	Label string `json:"label"`
	Score int    `json:"score"`
}

// Gap names a metric where a competitor beats "Your Site".
type Gap struct {
	Metric string `json:"metric"`
	Label  string `json:"label"`
	Detail string `json:"detail"`
}

// Comparison is the full output of a multi-URL comparison run.
type Comparison struct {
	Results       []SiteResult `json:"results"`
	Warnings      []string     `json:"warnings,omitempty"`
	Ranking       []RankEntry  `json:"ranking"`
	TopPerformer  string       `json:"topPerformer"`
	BestPractices []string     `json:"bestPractices"`
	Gaps          []Gap        `json:"gaps"`
	ScoreDelta    *float64     `json:"scoreDelta,omitempty"`
}

// Compare runs the full pipeline for each target sequentially. A failed
// fetch drops only that target with a warning; fewer than two successes
// yields ErrInsufficientComparison.
func (a *Analyzer) Compare(ctx context.Context, targets []CompareTarget) (*Comparison, error) {
	comparison := &Comparison{}

	for i, target := range targets {
		a.log.Info("analyzing comparison target",
			zap.String("label", target.Label),
			zap.Int("position", i+1),
			zap.Int("total", len(targets)),
		)

		audit, err := a.AnalyzeWithContext(ctx, target.URL)
		if err != nil {
			comparison.Warnings = append(comparison.Warnings,
				fmt.Sprintf("Could not analyze %s: %v", target.Label, err))
			continue
		}

		comparison.Results = append(comparison.Results, SiteResult{
			Label:        target.Label,
			URL:          target.URL,
			Audit:        audit,
			ComponentPct: componentPercentages(audit.Breakdown),
		})
	}

	if len(comparison.Results) < 2 {
		return nil, ErrInsufficientComparison
	}

	a.stats.RecordComparison()

	comparison.Ranking = rankResults(comparison.Results)
	comparison.TopPerformer = comparison.Ranking[0].Label
	comparison.BestPractices = bestPractices(findResult(comparison.Results, comparison.TopPerformer))

	if yours := findResult(comparison.Results, YourSiteLabel); yours != nil {
		comparison.Gaps = competitiveGaps(yours, comparison.Results)
		delta := scoreDelta(yours, comparison.Results)
		comparison.ScoreDelta = &delta
	}

	return comparison, nil
}

// componentPercentages converts a breakdown into 0-100 percentages per
// component, the shape radar charts consume.
func componentPercentages(b Breakdown) map[string]float64 {
	pct := make(map[string]float64, len(b.Components))
	for name, c := range b.Components {
		pct[name] = round1(c.Score / c.Max * 100)
	}
	return pct
}

// rankResults orders sites by overall score descending; ties keep input
// order.
func rankResults(results []SiteResult) []RankEntry {
	ranking := make([]RankEntry, 0, len(results))
	for _, r := range results {
		ranking = append(ranking, RankEntry{Label: r.Label, Score: r.Audit.Breakdown.Total})
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Score > ranking[j].Score
	})
	for i := range ranking {
		ranking[i].Rank = i + 1
	}
	return ranking
}

func findResult(results []SiteResult, label string) *SiteResult {
	for i := range results {
		if results[i].Label == label {
			return &results[i]
		}
	}
	return nil
}

// bestPractices extracts what the top-scoring site does right.
func bestPractices(top *SiteResult) []string {
	if top == nil {
		return nil
	}

	signals := top.Audit.Signals
	var practices []string

	if signals.Schema.FAQPresent {
		practices = append(practices, fmt.Sprintf("Uses FAQ Schema with %d questions", signals.Schema.FAQCount))
	}
	if signals.Schema.HowToPresent {
		practices = append(practices, fmt.Sprintf("Implements HowTo Schema with %d steps", signals.Schema.HowToCount))
	}
	if signals.Structure.HasTLDR {
		practices = append(practices, "Includes TL;DR summary section")
	}
	if signals.Snippet.Lists > 2 {
		practices = append(practices, fmt.Sprintf("Uses %d lists for better readability", signals.Snippet.Lists))
	}
	if signals.Questions.QuestionHeadings >= 5 {
		practices = append(practices, fmt.Sprintf("Has %d question-based headings", signals.Questions.QuestionHeadings))
	}
	if signals.EEAT.HasAuthorMeta {
		practices = append(practices, "Includes comprehensive author information")
	}
	if signals.Structure.FleschReadingEase >= 60 {
		practices = append(practices, fmt.Sprintf("Maintains good readability (score: %.1f)", signals.Structure.FleschReadingEase))
	}

	return practices
}

// competitiveGaps lists the metrics where each competitor beats "Your Site".
// Entries are deduplicated and truncated to 10, keeping first-seen order.
func competitiveGaps(yours *SiteResult, results []SiteResult) []Gap {
	var gaps []Gap
	seen := make(map[string]struct{})

	add := func(g Gap) {
		key := g.Metric + "|" + g.Label + "|" + g.Detail
		if _, dup := seen[key]; dup || len(gaps) >= 10 {
			return
		}
		seen[key] = struct{}{}
		gaps = append(gaps, g)
	}

	mine := yours.Audit.Signals

	for _, r := range results {
		if r.Label == YourSiteLabel {
			continue
		}
		theirs := r.Audit.Signals

		if !mine.Schema.FAQPresent && theirs.Schema.FAQPresent {
			add(Gap{
				Metric: "FAQ Schema",
				Label:  r.Label,
				Detail: fmt.Sprintf("%s has FAQ schema, you don't", r.Label),
			})
		}
		if !mine.Schema.HowToPresent && theirs.Schema.HowToPresent {
			add(Gap{
				Metric: "HowTo Schema",
				Label:  r.Label,
				Detail: fmt.Sprintf("%s has HowTo schema, you don't", r.Label),
			})
		}
		if mine.Questions.QuestionHeadings < theirs.Questions.QuestionHeadings {
			diff := theirs.Questions.QuestionHeadings - mine.Questions.QuestionHeadings
			add(Gap{
				Metric: "Question Headings",
				Label:  r.Label,
				Detail: fmt.Sprintf("%s has %d more question-based headings", r.Label, diff),
			})
		}
		if mine.Snippet.Lists < theirs.Snippet.Lists {
			diff := theirs.Snippet.Lists - mine.Snippet.Lists
			add(Gap{
				Metric: "Lists",
				Label:  r.Label,
				Detail: fmt.Sprintf("%s has %d more lists", r.Label, diff),
			})
		}
		if float64(mine.Structure.WordCount) < float64(theirs.Structure.WordCount)*0.7 {
			add(Gap{
				Metric: "Content Depth",
				Label:  r.Label,
				Detail: fmt.Sprintf("%s has %d words vs your %d", r.Label, theirs.Structure.WordCount, mine.Structure.WordCount),
			})
		}
		if !mine.EEAT.HasAuthorMeta && theirs.EEAT.HasAuthorMeta {
			add(Gap{
				Metric: "Author Info",
				Label:  r.Label,
				Detail: fmt.Sprintf("%s has author metadata, you don't", r.Label),
			})
		}
	}

	return gaps
}

// scoreDelta is "Your Site" minus the competitor average.
func scoreDelta(yours *SiteResult, results []SiteResult) float64 {
	total := 0
	count := 0
	for _, r := range results {
		if r.Label == YourSiteLabel {
			continue
		}
		total += r.Audit.Breakdown.Total
		count++
	}
	if count == 0 {
		return 0
	}
	return round1(float64(yours.Audit.Breakdown.Total) - float64(total)/float64(count))
}
