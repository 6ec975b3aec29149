package entity

import (
	"time"

	"github.com/google/uuid"
)

type DocumentChunk struct {
	Id             uuid.UUID
	DocumentId     uuid.UUID
	TenantId       string
	Content        string
	PageNumber     *int
	ChunkIndex     int
	WordCount      int
	EmbeddingModel string
	Embedding      []float32
	CreatedAt      time.Time
}
