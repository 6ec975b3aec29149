package entity

import (
	"time"

	"github.com/google/uuid"
)

type DocumentStatus string

const (
	DocumentStatusUploaded DocumentStatus = "uploaded"
	DocumentStatusIndexing DocumentStatus = "indexing"
	DocumentStatusIndexed  DocumentStatus = "indexed"
	DocumentStatusFailed   DocumentStatus = "failed"
)

type Document struct {
	Id            uuid.UUID
	TenantId      string
	Filename      string
	ContentType   string
	FileSizeBytes int64
	Status        DocumentStatus
	StoragePath   string
	UploadedBy    string
	PageCount     *int
	ChunkCount    *int
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}
