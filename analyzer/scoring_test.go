package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// maxedResult returns signals that earn full marks in every component.
func maxedResult() *AnalysisResult {
	return &AnalysisResult{
		Schema: SchemaSignals{
			FAQPresent:     true,
			FAQCount:       3,
			HowToPresent:   true,
			HowToCount:     4,
			ArticlePresent: true,
		},
		Questions: QuestionSignals{TotalHeadings: 8, QuestionHeadings: 6},
		Snippet: SnippetSignals{
			FirstParaWords:  50,
			Lists:           2,
			Tables:          1,
			ShortParagraphs: 4,
			SnippetScore:    100,
		},
		Structure: StructureSignals{
			HasTLDR:           true,
			HasTOC:            true,
			AvgParaLength:     55,
			WordCount:         400,
			FleschReadingEase: 70,
		},
		Entities: EntitySignals{EntitiesFound: 12},
		EEAT: EEATSignals{
			HasAuthorMeta:  true,
			HasDate:        true,
			HasAuthorBio:   true,
			HasSources:     true,
			HasAboutLink:   true,
			HasContactLink: true,
		},
	}
}

func TestScoreBreakdownMaxedSignals(t *testing.T) {
	b := ScoreBreakdown(maxedResult())

	assert.Equal(t, 100, b.Total)
	for _, key := range ComponentOrder {
		c, ok := b.Components[key]
		require.True(t, ok, "missing component %q", key)
		assert.Equal(t, c.Max, c.Score, "component %q should be at max", key)
	}
}

func TestScoreBreakdownZeroSignals(t *testing.T) {
	b := ScoreBreakdown(&AnalysisResult{})

	assert.Equal(t, 0, b.Total)
	assert.Len(t, b.Components, len(ComponentOrder))
	for key, c := range b.Components {
		assert.Equal(t, 0.0, c.Score, "component %q", key)
		assert.Positive(t, c.Max, "component %q", key)
	}
}

func TestScoreBreakdownComponentMaxima(t *testing.T) {
	b := ScoreBreakdown(&AnalysisResult{})

	assert.Equal(t, 25.0, b.Components[ComponentSchema].Max)
	assert.Equal(t, 20.0, b.Components[ComponentQuestions].Max)
	assert.Equal(t, 20.0, b.Components[ComponentSnippet].Max)
	assert.Equal(t, 15.0, b.Components[ComponentStructure].Max)
	assert.Equal(t, 10.0, b.Components[ComponentEEAT].Max)
	assert.Equal(t, 10.0, b.Components[ComponentEntities].Max)
}

func TestScoreBreakdownQuestionCap(t *testing.T) {
	res := &AnalysisResult{Questions: QuestionSignals{QuestionHeadings: 9}}
	b := ScoreBreakdown(res)

	assert.Equal(t, 20.0, b.Components[ComponentQuestions].Score)
}

func TestScoreBreakdownSnippetScaling(t *testing.T) {
	res := &AnalysisResult{Snippet: SnippetSignals{SnippetScore: 80}}
	b := ScoreBreakdown(res)

	assert.Equal(t, 16.0, b.Components[ComponentSnippet].Score)
}

func TestScoreBreakdownEEATIncrements(t *testing.T) {
	res := &AnalysisResult{EEAT: EEATSignals{HasAuthorMeta: true, HasSources: true}}
	b := ScoreBreakdown(res)

	assert.Equal(t, 5.0, b.Components[ComponentEEAT].Score)

	// About/contact links are advisory only.
	res.EEAT.HasAboutLink = true
	res.EEAT.HasContactLink = true
	b = ScoreBreakdown(res)
	assert.Equal(t, 5.0, b.Components[ComponentEEAT].Score)
}

func TestScoreBreakdownEntityTiers(t *testing.T) {
	cases := []struct {
		found int
		want  float64
	}{
		{0, 0}, {5, 0}, {6, 5}, {10, 5}, {11, 10},
	}
	for _, tc := range cases {
		res := &AnalysisResult{Entities: EntitySignals{EntitiesFound: tc.found}}
		b := ScoreBreakdown(res)
		assert.Equal(t, tc.want, b.Components[ComponentEntities].Score, "entities=%d", tc.found)
	}
}

func TestBuildQuickChecks(t *testing.T) {
	checks := BuildQuickChecks(maxedResult())

	assert.Equal(t, QuickChecks{
		FAQSchema:        true,
		HowToSchema:      true,
		QuestionHeadings: true,
		SnippetReady:     true,
		HasTLDR:          true,
		GoodReadability:  true,
		AuthorInfo:       true,
	}, checks)

	assert.Equal(t, QuickChecks{}, BuildQuickChecks(&AnalysisResult{}))
}

func TestScoreEnginesPerfectPage(t *testing.T) {
	b := ScoreBreakdown(maxedResult())
	scores := ScoreEngines(b, DefaultEngineProfiles())

	require.Len(t, scores, 4)
	for name, es := range scores {
		assert.Equal(t, 100.0, es.Score, "engine %q", name)
		assert.NotEmpty(t, es.Focus, "engine %q", name)
	}
}

func TestScoreEnginesZeroPage(t *testing.T) {
	b := ScoreBreakdown(&AnalysisResult{})
	scores := ScoreEngines(b, DefaultEngineProfiles())

	for name, es := range scores {
		assert.Equal(t, 0.0, es.Score, "engine %q", name)
	}
}

func TestScoreEnginesMissingWeightFallsBackToOne(t *testing.T) {
	b := ScoreBreakdown(maxedResult())
	profiles := []EngineProfile{{
		Name:    "Sparse",
		Weights: map[string]float64{ComponentSchema: 2.0},
		Focus:   "partial weight table",
	}}

	scores := ScoreEngines(b, profiles)

	require.Contains(t, scores, "Sparse")
	assert.Equal(t, 100.0, scores["Sparse"].Score)
}

func TestValidateEngineProfiles(t *testing.T) {
	assert.NoError(t, ValidateEngineProfiles(DefaultEngineProfiles()))

	assert.Error(t, ValidateEngineProfiles(nil))
	assert.Error(t, ValidateEngineProfiles([]EngineProfile{
		{Name: "", Weights: map[string]float64{ComponentSchema: 1}},
	}))
	assert.Error(t, ValidateEngineProfiles([]EngineProfile{
		{Name: "NoWeights"},
	}))
	assert.Error(t, ValidateEngineProfiles([]EngineProfile{
		{Name: "Negative", Weights: map[string]float64{ComponentSchema: -0.5}},
	}))
}
