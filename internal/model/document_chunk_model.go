package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type DocumentChunk struct {
	Id             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocumentId     uuid.UUID       `gorm:"type:uuid;not null;index"`
	TenantId       string          `gorm:"type:varchar(255);not null;index"`
	Content        string          `gorm:"type:text;not null"`
	PageNumber     *int            ``
	ChunkIndex     int             `gorm:"default:0"` // 0-based index for ordering
	WordCount      int             `gorm:"default:0"`
	EmbeddingModel string          `gorm:"type:varchar(255)"`
	Embedding      pgvector.Vector `gorm:"type:vector(768)"` // nomic-embed-text dimensionality
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
	DeletedAt      gorm.DeletedAt  `gorm:"index"`
}

func (DocumentChunk) TableName() string {
	return "document_chunks"
}
