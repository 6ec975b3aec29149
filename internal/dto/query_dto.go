package dto

import (
	"github.com/google/uuid"
)

type QueryRequest struct {
	Query    string `json:"query" validate:"required,min=1,max=4096"`
	TenantId string `json:"tenant_id" validate:"required,max=255"`
	UserId   string `json:"user_id" validate:"required,max=255"`
}

type CitationResponse struct {
	ChunkId          string  `json:"chunk_id"`
	DocumentId       string  `json:"document_id"`
	DocumentFilename string  `json:"document_filename"`
	PageNumber       *int    `json:"page_number,omitempty"`
	Excerpt          string  `json:"excerpt"`
	SimilarityScore  float64 `json:"similarity_score"`
}

type QueryResponse struct {
	SessionId uuid.UUID `json:"session_id"`
	// CorrelationId echoes the X-Correlation-ID request header (or the
	// generated one when absent).
	CorrelationId          string             `json:"correlation_id"`
	Answer                 string             `json:"answer"`
	Citations              []CitationResponse `json:"citations"`
	ResponseClassification string             `json:"response_classification"` // "FACTUAL_WITH_CITATIONS" | "REFUSED"
	RefusalReason          string             `json:"refusal_reason,omitempty"`
	GuardrailDegraded      bool               `json:"guardrail_degraded,omitempty"`
	SynthesisAttempts      int                `json:"synthesis_attempts"`
	PromptTokens           int                `json:"prompt_tokens"`
	CompletionTokens       int                `json:"completion_tokens"`
}
