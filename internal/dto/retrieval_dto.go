package dto

// RetrieveRequest is the wire contract of the evidence-retrieval endpoint.
type RetrieveRequest struct {
	Query               string  `json:"query" validate:"required,min=1,max=4096"`
	TenantId            string  `json:"tenant_id" validate:"required,max=255"`
	TopK                int     `json:"top_k" validate:"omitempty,min=1,max=50"`
	SimilarityThreshold float64 `json:"similarity_threshold" validate:"omitempty,min=0,max=1"`
}

type RetrievedChunkResponse struct {
	ChunkId          string  `json:"chunk_id"`
	DocumentId       string  `json:"document_id"`
	DocumentFilename string  `json:"document_filename"`
	Content          string  `json:"content"`
	PageNumber       *int    `json:"page_number,omitempty"`
	ChunkIndex       int     `json:"chunk_index"`
	SimilarityScore  float64 `json:"similarity_score"`
}

type RetrieveResponse struct {
	HasContext bool                     `json:"has_context"`
	Chunks     []RetrievedChunkResponse `json:"chunks"`
}
