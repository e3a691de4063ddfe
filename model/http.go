package model

type AnalyzeRequestBody struct {
	Segments []PitchClassSet `json:"segments"`
}

type AnalyzeResponse struct {
	ID       string   `json:"id"`
	Analysis Analysis `json:"analysis"`
}

type CompareRequestBody struct {
	Truth Annotation `json:"truth"`
	Guess Annotation `json:"guess"`
}

type TemplateResult struct {
	Label   string  `json:"label"`
	Root    string  `json:"root"`
	Quality Quality `json:"quality"`
	Notes   []int   `json:"notes"`
	Prior   float64 `json:"prior"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
