package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"contract-qa-be/internal/dto"
	"contract-qa-be/internal/entity"
	"contract-qa-be/internal/pkg/logger"
	"contract-qa-be/internal/pkg/serverutils"
	"contract-qa-be/internal/repository/contract"
	"contract-qa-be/pkg/events"
	pktNats "contract-qa-be/pkg/nats"

	"github.com/google/uuid"
)

type IDocumentService interface {
	Upload(ctx context.Context, req *dto.UploadDocumentRequest) (*dto.UploadDocumentResponse, error)
	Show(ctx context.Context, tenantId string, id uuid.UUID) (*dto.DocumentResponse, error)
	List(ctx context.Context, tenantId string) ([]*dto.DocumentResponse, error)
	Delete(ctx context.Context, tenantId string, id uuid.UUID) error
}

type documentService struct {
	documentRepository contract.DocumentRepository
	chunkRepository    contract.DocumentChunkRepository
	publisherService   IPublisherService
	eventPublisher     *pktNats.Publisher
	storageDir         string
	log                logger.ILogger
}

func NewDocumentService(
	documentRepository contract.DocumentRepository,
	chunkRepository contract.DocumentChunkRepository,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	storageDir string,
	log logger.ILogger,
) IDocumentService {
	return &documentService{
		documentRepository: documentRepository,
		chunkRepository:    chunkRepository,
		publisherService:   publisherService,
		eventPublisher:     eventPublisher,
		storageDir:         storageDir,
		log:                log,
	}
}

// Upload persists the document text, records the metadata row and hands the
// indexing work to the internal bus. The caller gets an id immediately;
// chunking and embedding happen asynchronously.
func (s *documentService) Upload(ctx context.Context, req *dto.UploadDocumentRequest) (*dto.UploadDocumentResponse, error) {
	docId := uuid.New()

	if err := os.MkdirAll(s.storageDir, 0o755); err != nil {
		return nil, fmt.Errorf("prepare storage dir: %w", err)
	}
	storagePath := filepath.Join(s.storageDir, docId.String()+".txt")
	if err := os.WriteFile(storagePath, []byte(req.Content), 0o644); err != nil {
		return nil, fmt.Errorf("persist document text: %w", err)
	}

	document := entity.Document{
		Id:            docId,
		TenantId:      req.TenantId,
		Filename:      req.Filename,
		ContentType:   req.ContentType,
		FileSizeBytes: int64(len(req.Content)),
		Status:        entity.DocumentStatusUploaded,
		StoragePath:   storagePath,
		UploadedBy:    req.UserId,
		CreatedAt:     time.Now(),
	}
	if err := s.documentRepository.Create(ctx, &document); err != nil {
		return nil, err
	}

	correlationId := serverutils.CorrelationIDFromContext(ctx)

	msgJson, err := json.Marshal(dto.IndexDocumentMessage{
		DocumentId:    document.Id,
		CorrelationId: correlationId,
	})
	if err != nil {
		return nil, err
	}
	if err := s.publisherService.Publish(ctx, msgJson); err != nil {
		return nil, fmt.Errorf("enqueue indexing: %w", err)
	}

	if s.eventPublisher != nil {
		event := events.NewDocumentUploaded(document.Id, correlationId, document.TenantId,
			document.Filename, document.UploadedBy, document.FileSizeBytes)
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.log.Warn("document", "failed to publish upload event", map[string]interface{}{
				"document_id": document.Id.String(),
				"error":       err.Error(),
			})
		}
	}

	return &dto.UploadDocumentResponse{
		Id:     document.Id,
		Status: string(document.Status),
	}, nil
}

func (s *documentService) Show(ctx context.Context, tenantId string, id uuid.UUID) (*dto.DocumentResponse, error) {
	document, err := s.documentRepository.FindById(ctx, tenantId, id)
	if err != nil {
		return nil, err
	}
	if document == nil {
		return nil, serverutils.NewNotFoundError("document not found")
	}
	return toDocumentResponse(document), nil
}

func (s *documentService) List(ctx context.Context, tenantId string) ([]*dto.DocumentResponse, error) {
	documents, err := s.documentRepository.FindAllByTenant(ctx, tenantId)
	if err != nil {
		return nil, err
	}
	responses := make([]*dto.DocumentResponse, len(documents))
	for i, d := range documents {
		responses[i] = toDocumentResponse(d)
	}
	return responses, nil
}

func (s *documentService) Delete(ctx context.Context, tenantId string, id uuid.UUID) error {
	document, err := s.documentRepository.FindById(ctx, tenantId, id)
	if err != nil {
		return err
	}
	if document == nil {
		return serverutils.NewNotFoundError("document not found")
	}

	if err := s.chunkRepository.DeleteByDocumentId(ctx, id); err != nil {
		return err
	}
	return s.documentRepository.Delete(ctx, id)
}

func toDocumentResponse(d *entity.Document) *dto.DocumentResponse {
	return &dto.DocumentResponse{
		Id:            d.Id,
		Filename:      d.Filename,
		ContentType:   d.ContentType,
		FileSizeBytes: d.FileSizeBytes,
		Status:        string(d.Status),
		PageCount:     d.PageCount,
		ChunkCount:    d.ChunkCount,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}
