package agent

import "context"

// GuardrailResult is the verdict of the safety collaborator.
type GuardrailResult struct {
	Passed         bool
	RefusalCode    string
	InjectionScore float64
}

// GuardrailClient validates a query against the safety collaborator.
// A returned error means the collaborator was unreachable, not that the
// query failed the check.
type GuardrailClient interface {
	ValidateInput(ctx context.Context, text, tenantID string) (*GuardrailResult, error)
}

// RetrieveRequest carries the parameters for one retrieval call.
type RetrieveRequest struct {
	Query               string
	TenantID            string
	TopK                int
	SimilarityThreshold float64
	CorrelationID       string
}

// RetrievalResult is the ranked evidence returned by the retrieval
// collaborator. The collaborator is the source of truth for relevance;
// no local thresholding is reapplied.
type RetrievalResult struct {
	HasContext bool
	Chunks     []RetrievedChunk
}

// RetrievalClient runs a tenant-scoped similarity search.
type RetrievalClient interface {
	Retrieve(ctx context.Context, req RetrieveRequest) (*RetrievalResult, error)
}
