package dto

import (
	"time"

	"github.com/google/uuid"
)

type UploadDocumentRequest struct {
	Filename    string `json:"filename" validate:"required,max=512"`
	ContentType string `json:"content_type" validate:"omitempty,max=255"`
	// Content is the raw document text. Binary formats are extracted
	// upstream; the indexer consumes plain text.
	Content  string `json:"content" validate:"required"`
	TenantId string `json:"tenant_id" validate:"required,max=255"`
	UserId   string `json:"user_id" validate:"required,max=255"`
}

type UploadDocumentResponse struct {
	Id     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}

// IndexDocumentMessage is the internal bus payload handed to the indexing
// worker after an upload is accepted.
type IndexDocumentMessage struct {
	DocumentId    uuid.UUID `json:"document_id"`
	CorrelationId string    `json:"correlation_id"`
}

type DocumentResponse struct {
	Id            uuid.UUID  `json:"id"`
	Filename      string     `json:"filename"`
	ContentType   string     `json:"content_type"`
	FileSizeBytes int64      `json:"file_size_bytes"`
	Status        string     `json:"status"`
	PageCount     *int       `json:"page_count,omitempty"`
	ChunkCount    *int       `json:"chunk_count,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}
