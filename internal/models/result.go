package models

// AnalysisResult is the JSON body exchanged over POST /api/analyze.
type AnalysisResult struct {
	Classification  string   `json:"classification"`
	Confidence      float64  `json:"confidence"`
	ExperienceYears float64  `json:"experience_years"`
	ExperienceLevel string   `json:"experience_level"`
	Name            string   `json:"name"`
	Email           *string  `json:"email"`
	Phone           *string  `json:"phone"`
	Education       []string `json:"education"`
	Skills          []string `json:"skills"`
}

// AnalyzeResponse is what the analysis service answers with. A non-empty
// Error overrides the result even on a 2xx status.
type AnalyzeResponse struct {
	AnalysisResult
	Error string `json:"error,omitempty"`
}

// WithDefaults fills collections the service left out so callers can range
// over them without presence checks.
func (r AnalysisResult) WithDefaults() AnalysisResult {
	if r.Education == nil {
		r.Education = []string{}
	}
	if r.Skills == nil {
		r.Skills = []string{}
	}
	return r
}

type AnalysisSummary struct {
	ID              string  `json:"id"`
	Filename        string  `json:"filename"`
	Classification  string  `json:"classification"`
	Confidence      float64 `json:"confidence"`
	ExperienceLevel string  `json:"experience_level"`
	CreatedAt       string  `json:"created_at"`
}

type AnalysisDetail struct {
	ID        string         `json:"id"`
	Filename  string         `json:"filename"`
	PageCount int            `json:"page_count"`
	CreatedAt string         `json:"created_at"`
	Result    AnalysisResult `json:"result"`
}
