package dto

// ValidateInputRequest is the wire contract of the input-screening endpoint.
type ValidateInputRequest struct {
	Text     string `json:"text" validate:"required"`
	TenantId string `json:"tenant_id" validate:"required,max=255"`
}

type ValidateInputResponse struct {
	Passed          bool     `json:"passed"`
	RefusalCode     string   `json:"refusal_code,omitempty"`
	InjectionScore  float64  `json:"injection_score"`
	MatchedPatterns []string `json:"matched_patterns,omitempty"`
}

// ValidateOutputRequest screens a synthesized answer before it is surfaced.
type ValidateOutputRequest struct {
	Answer        string `json:"answer"`
	CitationCount int    `json:"citation_count"`
	TenantId      string `json:"tenant_id" validate:"required,max=255"`
}

type ValidateOutputResponse struct {
	Passed      bool   `json:"passed"`
	RefusalCode string `json:"refusal_code,omitempty"`
}
