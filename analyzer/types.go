package analyzer

// SchemaSignals describes the structured-data markup found on a page.
type SchemaSignals struct {
	FAQPresent     bool `json:"faqPresent"`
	FAQCount       int  `json:"faqCount"`
	HowToPresent   bool `json:"howtoPresent"`
	HowToCount     int  `json:"howtoCount"`
	ArticlePresent bool `json:"articlePresent"`
}

// QuestionSignals describes question-based headings.
type QuestionSignals struct {
	TotalHeadings    int      `json:"totalHeadings"`
	QuestionHeadings int      `json:"questionHeadings"`
	Examples         []string `json:"questionHeadingExamples"`
}

// SnippetSignals describes featured-snippet readiness.
type SnippetSignals struct {
	FirstParaWords  int `json:"firstParaWords"`
	Lists           int `json:"lists"`
	Tables          int `json:"tables"`
	ShortParagraphs int `json:"shortParagraphs"`
	SnippetScore    int `json:"snippetScore"`
}

// StructureSignals describes content structure and readability.
type StructureSignals struct {
	HasTLDR           bool    `json:"hasTldr"`
	HasTOC            bool    `json:"hasToc"`
	AvgParaLength     float64 `json:"avgParaLength"`
	WordCount         int     `json:"wordCount"`
	FleschReadingEase float64 `json:"fleschReadingEase"`
}

// EntitySignals describes heuristic proper-noun mentions.
type EntitySignals struct {
	EntitiesFound int      `json:"entitiesFound"`
	Examples      []string `json:"entityExamples"`
}

// EEATSignals describes experience/expertise/authority/trust markers.
type EEATSignals struct {
	HasAuthorMeta  bool `json:"hasAuthorMeta"`
	HasDate        bool `json:"hasDate"`
	HasAuthorBio   bool `json:"hasAuthorBio"`
	HasAboutLink   bool `json:"hasAboutLink"`
	HasContactLink bool `json:"hasContactLink"`
	HasSources     bool `json:"hasSources"`
}

// AnalysisResult aggregates the six signal facets extracted from one page.
type AnalysisResult struct {
	URL       string           `json:"url"`
	Schema    SchemaSignals    `json:"schema"`
	Questions QuestionSignals  `json:"questions"`
	Snippet   SnippetSignals   `json:"snippet"`
	Structure StructureSignals `json:"structure"`
	Entities  EntitySignals    `json:"entities"`
	EEAT      EEATSignals      `json:"eeat"`
}

// ComponentScore is one entry of the score breakdown.
type ComponentScore struct {
	Score float64 `json:"score"`
	Max   float64 `json:"max"`
}

// Breakdown maps component names to their scores plus the clamped total.
type Breakdown struct {
	Components map[string]ComponentScore `json:"breakdown"`
	Total      int                       `json:"total"`
}

// EngineScore is the normalized score for one simulated answer engine.
type EngineScore struct {
	Score float64 `json:"score"`
	Focus string  `json:"focus"`
}

// Priority ranks a recommendation.
type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// rank orders priorities for sorting; lower sorts first.
func (p Priority) rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// Recommendation is one actionable improvement with implementation guidance.
type Recommendation struct {
	Priority Priority `json:"priority"`
	Category string   `json:"category"`
	Action   string   `json:"action"`
	Impact   string   `json:"impact"`
	Effort   string   `json:"effort"`
	Steps    []string `json:"steps"`
	Example  string   `json:"example"`
}

// QuickChecks is the pass/fail summary grid shown alongside an audit.
type QuickChecks struct {
	FAQSchema        bool `json:"faqSchema"`
	HowToSchema      bool `json:"howtoSchema"`
	QuestionHeadings bool `json:"questionHeadings"`
	SnippetReady     bool `json:"snippetReady"`
	HasTLDR          bool `json:"hasTldr"`
	GoodReadability  bool `json:"goodReadability"`
	AuthorInfo       bool `json:"authorInfo"`
}

// Audit is the complete output of analyzing a single URL.
type Audit struct {
	URL             string                 `json:"url"`
	Signals         AnalysisResult         `json:"signals"`
	Breakdown       Breakdown              `json:"scoreBreakdown"`
	EngineScores    map[string]EngineScore `json:"engineScores"`
	Recommendations []Recommendation       `json:"recommendations"`
	QuickChecks     QuickChecks            `json:"quickChecks"`
}
