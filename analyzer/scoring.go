package analyzer

import "math"

// Component names used as breakdown keys.
const (
	ComponentSchema    = "schema"
	ComponentQuestions = "questions"
	ComponentSnippet   = "snippet"
	ComponentStructure = "structure"
	ComponentEEAT      = "eeat"
	ComponentEntities  = "entities"
)

// ComponentOrder is the fixed display order of breakdown components.
var ComponentOrder = []string{
	ComponentSchema,
	ComponentQuestions,
	ComponentSnippet,
	ComponentStructure,
	ComponentEEAT,
	ComponentEntities,
}

// ComponentNames maps component keys to human-readable labels.
var ComponentNames = map[string]string{
	ComponentSchema:    "Schema Markup",
	ComponentQuestions: "Question Content",
	ComponentSnippet:   "Snippet Optimization",
	ComponentStructure: "Content Structure",
	ComponentEEAT:      "E-E-A-T Signals",
	ComponentEntities:  "Entity Recognition",
}

// ScoreBreakdown converts extracted signals into the per-component score
// breakdown and the clamped 0-100 total. Pure and deterministic.
func ScoreBreakdown(res *AnalysisResult) Breakdown {
	components := make(map[string]ComponentScore, len(ComponentOrder))

	schemaScore := 0.0
	if res.Schema.FAQPresent {
		schemaScore += 10
	}
	if res.Schema.HowToPresent {
		schemaScore += 10
	}
	if res.Schema.ArticlePresent {
		schemaScore += 5
	}
	components[ComponentSchema] = ComponentScore{Score: schemaScore, Max: 25}

	questionScore := float64(res.Questions.QuestionHeadings * 4)
	if questionScore > 20 {
		questionScore = 20
	}
	components[ComponentQuestions] = ComponentScore{Score: questionScore, Max: 20}

	components[ComponentSnippet] = ComponentScore{
		Score: round1(float64(res.Snippet.SnippetScore) * 0.2),
		Max:   20,
	}

	structureScore := 0.0
	if res.Structure.HasTLDR {
		structureScore += 5
	}
	if res.Structure.HasTOC {
		structureScore += 5
	}
	if res.Structure.FleschReadingEase >= 60 {
		structureScore += 5
	}
	components[ComponentStructure] = ComponentScore{Score: structureScore, Max: 15}

	// About/contact links feed recommendations only, not the score.
	eeatTrue := 0
	for _, b := range []bool{
		res.EEAT.HasAuthorMeta,
		res.EEAT.HasDate,
		res.EEAT.HasAuthorBio,
		res.EEAT.HasSources,
	} {
		if b {
			eeatTrue++
		}
	}
	components[ComponentEEAT] = ComponentScore{Score: 2.5 * float64(eeatTrue), Max: 10}

	entityScore := 0.0
	switch {
	case res.Entities.EntitiesFound > 10:
		entityScore = 10
	case res.Entities.EntitiesFound > 5:
		entityScore = 5
	}
	components[ComponentEntities] = ComponentScore{Score: entityScore, Max: 10}

	total := 0.0
	for _, c := range components {
		total += c.Score
	}

	return Breakdown{
		Components: components,
		Total:      clampTotal(math.Round(total)),
	}
}

func clampTotal(v float64) int {
	if v > 100 {
		return 100
	}
	if v < 0 {
		return 0
	}
	return int(v)
}

// BuildQuickChecks derives the pass/fail summary grid from signals.
func BuildQuickChecks(res *AnalysisResult) QuickChecks {
	return QuickChecks{
		FAQSchema:        res.Schema.FAQPresent,
		HowToSchema:      res.Schema.HowToPresent,
		QuestionHeadings: res.Questions.QuestionHeadings >= 3,
		SnippetReady:     res.Snippet.SnippetScore >= 50,
		HasTLDR:          res.Structure.HasTLDR,
		GoodReadability:  res.Structure.FleschReadingEase >= 60,
		AuthorInfo:       res.EEAT.HasAuthorMeta,
	}
}
