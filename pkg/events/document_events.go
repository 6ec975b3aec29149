package events

import (
	"time"

	"github.com/google/uuid"
)

func NewDocumentUploaded(documentID uuid.UUID, correlationID, tenantID, filename, uploadedBy string, fileSizeBytes int64) Event {
	return BaseEvent{
		Type: "document.uploaded",
		Data: map[string]interface{}{
			"document_id":     documentID.String(),
			"correlation_id":  correlationID,
			"tenant_id":       tenantID,
			"filename":        filename,
			"uploaded_by":     uploadedBy,
			"file_size_bytes": fileSizeBytes,
		},
		OccurredAt: time.Now().UTC(),
	}
}

func NewDocumentIndexed(documentID uuid.UUID, correlationID, tenantID string, chunkCount int, embeddingModel string) Event {
	return BaseEvent{
		Type: "document.indexed",
		Data: map[string]interface{}{
			"document_id":     documentID.String(),
			"correlation_id":  correlationID,
			"tenant_id":       tenantID,
			"chunk_count":     chunkCount,
			"embedding_model": embeddingModel,
		},
		OccurredAt: time.Now().UTC(),
	}
}

func NewDocumentIndexingFailed(documentID uuid.UUID, correlationID, tenantID, errorCode, errorMessage string) Event {
	return BaseEvent{
		Type: "document.indexing_failed",
		Data: map[string]interface{}{
			"document_id":    documentID.String(),
			"correlation_id": correlationID,
			"tenant_id":      tenantID,
			"error_code":     errorCode,
			"error_message":  errorMessage,
		},
		OccurredAt: time.Now().UTC(),
	}
}
