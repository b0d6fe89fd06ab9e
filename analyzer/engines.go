package analyzer

import "fmt"

// EngineProfile is the weighting persona for one simulated answer engine.
// Profiles are immutable configuration built once at startup; they re-weight
// the component breakdown but never change which signals were extracted.
type EngineProfile struct {
	Name    string             `json:"name" yaml:"name"`
	Weights map[string]float64 `json:"weights" yaml:"weights"`
	Focus   string             `json:"focus" yaml:"focus"`
}

// DefaultEngineProfiles returns the four built-in engine personas.
func DefaultEngineProfiles() []EngineProfile {
	return []EngineProfile{
		{
			Name: "ChatGPT",
			Weights: map[string]float64{
				ComponentSchema:    1.2,
				ComponentQuestions: 1.1,
				ComponentSnippet:   1.0,
				ComponentStructure: 1.3,
				ComponentEEAT:      0.9,
				ComponentEntities:  1.0,
			},
			Focus: "Prioritizes conversational structure and clear formatting",
		},
		{
			Name: "Claude",
			Weights: map[string]float64{
				ComponentSchema:    1.0,
				ComponentQuestions: 1.2,
				ComponentSnippet:   1.0,
				ComponentStructure: 1.4,
				ComponentEEAT:      1.3,
				ComponentEntities:  1.1,
			},
			Focus: "Emphasizes content quality, trustworthiness, and natural language",
		},
		{
			Name: "Gemini",
			Weights: map[string]float64{
				ComponentSchema:    1.3,
				ComponentQuestions: 1.0,
				ComponentSnippet:   1.2,
				ComponentStructure: 1.0,
				ComponentEEAT:      1.0,
				ComponentEntities:  1.2,
			},
			Focus: "Strong preference for structured data and entities",
		},
		{
			Name: "Perplexity",
			Weights: map[string]float64{
				ComponentSchema:    1.1,
				ComponentQuestions: 1.3,
				ComponentSnippet:   1.2,
				ComponentStructure: 1.0,
				ComponentEEAT:      1.2,
				ComponentEntities:  1.0,
			},
			Focus: "Optimized for direct answers and source attribution",
		},
	}
}

// ValidateEngineProfiles rejects profiles that would corrupt scoring:
// missing names, empty weight tables, or non-positive multipliers.
func ValidateEngineProfiles(profiles []EngineProfile) error {
	if len(profiles) == 0 {
		return fmt.Errorf("no engine profiles defined")
	}
	for _, p := range profiles {
		if p.Name == "" {
			return fmt.Errorf("engine profile with empty name")
		}
		if len(p.Weights) == 0 {
			return fmt.Errorf("engine profile %q has no weights", p.Name)
		}
		for component, w := range p.Weights {
			if w <= 0 {
				return fmt.Errorf("engine profile %q: weight for %q must be positive, got %v", p.Name, component, w)
			}
		}
	}
	return nil
}

// ScoreEngines re-weights the breakdown per engine persona into normalized
// 0-100 scores. Unlisted components fall back to weight 1.0.
func ScoreEngines(b Breakdown, profiles []EngineProfile) map[string]EngineScore {
	scores := make(map[string]EngineScore, len(profiles))

	for _, profile := range profiles {
		weighted := 0.0
		totalWeight := 0.0

		for component, values := range b.Components {
			weight, ok := profile.Weights[component]
			if !ok {
				weight = 1.0
			}
			weighted += (values.Score / values.Max) * values.Max * weight
			totalWeight += values.Max * weight
		}

		score := round1(weighted / totalWeight * 100)
		if score > 100 {
			score = 100
		}

		scores[profile.Name] = EngineScore{Score: score, Focus: profile.Focus}
	}

	return scores
}
