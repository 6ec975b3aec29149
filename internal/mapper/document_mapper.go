package mapper

import (
	"contract-qa-be/internal/entity"
	"contract-qa-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToModel(e *entity.Document) *model.Document {
	return &model.Document{
		Id:            e.Id,
		TenantId:      e.TenantId,
		Filename:      e.Filename,
		ContentType:   e.ContentType,
		FileSizeBytes: e.FileSizeBytes,
		Status:        string(e.Status),
		StoragePath:   e.StoragePath,
		UploadedBy:    e.UploadedBy,
		PageCount:     e.PageCount,
		ChunkCount:    e.ChunkCount,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func (m *DocumentMapper) ToEntity(mo *model.Document) *entity.Document {
	return &entity.Document{
		Id:            mo.Id,
		TenantId:      mo.TenantId,
		Filename:      mo.Filename,
		ContentType:   mo.ContentType,
		FileSizeBytes: mo.FileSizeBytes,
		Status:        entity.DocumentStatus(mo.Status),
		StoragePath:   mo.StoragePath,
		UploadedBy:    mo.UploadedBy,
		PageCount:     mo.PageCount,
		ChunkCount:    mo.ChunkCount,
		CreatedAt:     mo.CreatedAt,
		UpdatedAt:     mo.UpdatedAt,
	}
}

type DocumentChunkMapper struct{}

func NewDocumentChunkMapper() *DocumentChunkMapper {
	return &DocumentChunkMapper{}
}

func (m *DocumentChunkMapper) ToModel(e *entity.DocumentChunk) *model.DocumentChunk {
	return &model.DocumentChunk{
		Id:             e.Id,
		DocumentId:     e.DocumentId,
		TenantId:       e.TenantId,
		Content:        e.Content,
		PageNumber:     e.PageNumber,
		ChunkIndex:     e.ChunkIndex,
		WordCount:      e.WordCount,
		EmbeddingModel: e.EmbeddingModel,
		Embedding:      pgvector.NewVector(e.Embedding),
		CreatedAt:      e.CreatedAt,
	}
}

func (m *DocumentChunkMapper) ToEntity(mo *model.DocumentChunk) *entity.DocumentChunk {
	return &entity.DocumentChunk{
		Id:             mo.Id,
		DocumentId:     mo.DocumentId,
		TenantId:       mo.TenantId,
		Content:        mo.Content,
		PageNumber:     mo.PageNumber,
		ChunkIndex:     mo.ChunkIndex,
		WordCount:      mo.WordCount,
		EmbeddingModel: mo.EmbeddingModel,
		Embedding:      mo.Embedding.Slice(),
		CreatedAt:      mo.CreatedAt,
	}
}
