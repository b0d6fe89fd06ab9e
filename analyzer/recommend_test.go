package analyzer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func actionsOf(recs []Recommendation) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Action)
	}
	return out
}

func hasAction(recs []Recommendation, prefix string) bool {
	for _, r := range recs {
		if strings.HasPrefix(r.Action, prefix) {
			return true
		}
	}
	return false
}

func TestGenerateRecommendationsEmptyPage(t *testing.T) {
	recs := GenerateRecommendations(&AnalysisResult{})

	require.NotEmpty(t, recs)
	assert.True(t, hasAction(recs, "Implement FAQ Schema Markup"))
	assert.True(t, hasAction(recs, "Expand First Paragraph"))
	assert.False(t, hasAction(recs, "Shorten First Paragraph"))
	assert.True(t, hasAction(recs, "Add Bulleted or Numbered Lists"))
	assert.True(t, hasAction(recs, "Add Contact Page Link"))

	// HowTo schema only makes sense once question headings exist.
	assert.False(t, hasAction(recs, "Implement HowTo Schema for Process Content"))

	for _, r := range recs {
		assert.NotEmpty(t, r.Category, "%s", r.Action)
		assert.NotEmpty(t, r.Impact, "%s", r.Action)
		assert.NotEmpty(t, r.Effort, "%s", r.Action)
		assert.NotEmpty(t, r.Steps, "%s", r.Action)
	}
}

func TestGenerateRecommendationsFirstParaBounds(t *testing.T) {
	long := &AnalysisResult{Snippet: SnippetSignals{FirstParaWords: 100}}
	recs := GenerateRecommendations(long)
	assert.True(t, hasAction(recs, "Implement FAQ Schema Markup"))
	assert.True(t, hasAction(recs, "Shorten First Paragraph (Currently: 100 words"))
	assert.False(t, hasAction(recs, "Expand First Paragraph"))

	inRange := &AnalysisResult{Snippet: SnippetSignals{FirstParaWords: 50}}
	recs = GenerateRecommendations(inRange)
	assert.False(t, hasAction(recs, "Shorten First Paragraph"))
	assert.False(t, hasAction(recs, "Expand First Paragraph"))
}

func TestGenerateRecommendationsPriorityOrdering(t *testing.T) {
	recs := GenerateRecommendations(&AnalysisResult{})
	require.NotEmpty(t, recs)

	prev := 0
	for _, r := range recs {
		rank := r.Priority.rank()
		assert.GreaterOrEqual(t, rank, prev,
			"recommendation %q breaks HIGH/MEDIUM/LOW ordering", r.Action)
		prev = rank
	}
}

func TestGenerateRecommendationsOptimizedPage(t *testing.T) {
	res := maxedResult()
	recs := GenerateRecommendations(res)

	// A 400-word page keeps one depth suggestion but nothing else fires.
	require.Len(t, recs, 1, "unexpected recommendations: %v", actionsOf(recs))
	assert.True(t, hasAction(recs, "Expand Content Depth (Current: 400 words"))
	assert.Equal(t, PriorityLow, recs[0].Priority)
}

func TestGenerateRecommendationsHowToNeedsQuestions(t *testing.T) {
	res := &AnalysisResult{Questions: QuestionSignals{QuestionHeadings: 2}}
	recs := GenerateRecommendations(res)
	assert.True(t, hasAction(recs, "Implement HowTo Schema for Process Content"))

	res.Schema.HowToPresent = true
	recs = GenerateRecommendations(res)
	assert.False(t, hasAction(recs, "Implement HowTo Schema for Process Content"))
}

func TestGenerateRecommendationsLongFormTriggers(t *testing.T) {
	res := maxedResult()
	res.Structure.WordCount = 2000
	res.Structure.HasTOC = false
	res.Snippet.Tables = 0

	recs := GenerateRecommendations(res)

	assert.True(t, hasAction(recs, "Add Table of Contents"))
	assert.True(t, hasAction(recs, "Add Comparison Tables or Data Tables"))
	assert.True(t, hasAction(recs, "Add Strategic Internal Links"))
	assert.False(t, hasAction(recs, "Expand Content Depth"))
}

func TestGenerateRecommendationsMetricInterpolation(t *testing.T) {
	res := &AnalysisResult{
		Questions: QuestionSignals{QuestionHeadings: 1},
		Structure: StructureSignals{FleschReadingEase: 42.5, AvgParaLength: 120.3},
		Entities:  EntitySignals{EntitiesFound: 4},
	}

	recs := GenerateRecommendations(res)

	assert.True(t, hasAction(recs, "Add More Question-Based Headings (Currently: 1,"))
	assert.True(t, hasAction(recs, "Improve Readability Score (Current: 42.5,"))
	assert.True(t, hasAction(recs, "Shorten Paragraphs (Current avg: 120.3 words"))
	assert.True(t, hasAction(recs, "Increase Entity Mentions (Current: 4,"))
}
