package contract

import (
	"context"

	"contract-qa-be/internal/entity"

	"github.com/google/uuid"
)

// ScoredChunk wraps a DocumentChunk with its similarity score and the owning
// document's display filename.
type ScoredChunk struct {
	Chunk            *entity.DocumentChunk
	DocumentFilename string
	Similarity       float64 // 0.0 to 1.0 (1.0 = identical)
}

type DocumentChunkRepository interface {
	CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error
	DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error
	CountByDocumentId(ctx context.Context, documentId uuid.UUID) (int64, error)
	// SearchSimilarWithScore returns chunks ranked by cosine similarity,
	// tenant-scoped, filtered by threshold and capped at limit.
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, tenantId string, threshold float64) ([]*ScoredChunk, error)
}
