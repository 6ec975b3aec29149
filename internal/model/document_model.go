package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Document struct {
	Id            uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantId      string         `gorm:"type:varchar(255);not null;index"`
	Filename      string         `gorm:"type:varchar(512);not null"`
	ContentType   string         `gorm:"type:varchar(255)"`
	FileSizeBytes int64          `gorm:"not null"`
	Status        string         `gorm:"type:varchar(32);not null;default:'uploaded'"`
	StoragePath   string         `gorm:"type:text"`
	UploadedBy    string         `gorm:"type:varchar(255)"`
	PageCount     *int           ``
	ChunkCount    *int           ``
	CreatedAt     time.Time      `gorm:"autoCreateTime"`
	UpdatedAt     *time.Time     `gorm:"autoUpdateTime"`
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (Document) TableName() string {
	return "documents"
}
