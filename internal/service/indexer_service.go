package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"contract-qa-be/internal/dto"
	"contract-qa-be/internal/entity"
	"contract-qa-be/internal/pkg/logger"
	"contract-qa-be/internal/repository/contract"
	"contract-qa-be/pkg/chunker"
	"contract-qa-be/pkg/embedding"
	"contract-qa-be/pkg/events"
	pktNats "contract-qa-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IIndexerService interface {
	Consume(ctx context.Context) error
}

// indexerService is the async worker behind document uploads: it chunks the
// stored text, embeds each chunk and flips the document's status.
type indexerService struct {
	pubSub             *gochannel.GoChannel
	topicName          string
	documentRepository contract.DocumentRepository
	chunkRepository    contract.DocumentChunkRepository
	embeddingProvider  embedding.EmbeddingProvider
	embeddingModel     string
	chunker            *chunker.Chunker
	eventPublisher     *pktNats.Publisher
	log                logger.ILogger
}

func NewIndexerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	documentRepository contract.DocumentRepository,
	chunkRepository contract.DocumentChunkRepository,
	embeddingProvider embedding.EmbeddingProvider,
	embeddingModel string,
	textChunker *chunker.Chunker,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IIndexerService {
	return &indexerService{
		pubSub:             pubSub,
		topicName:          topicName,
		documentRepository: documentRepository,
		chunkRepository:    chunkRepository,
		embeddingProvider:  embeddingProvider,
		embeddingModel:     embeddingModel,
		chunker:            textChunker,
		eventPublisher:     eventPublisher,
		log:                log,
	}
}

func (s *indexerService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *indexerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.IndexDocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		s.log.Error("indexer", "failed to unmarshal indexing message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // malformed payload never becomes valid, do not retry
		return
	}

	document, err := s.documentRepository.FindByIdGlobal(ctx, payload.DocumentId)
	if err != nil {
		s.log.Error("indexer", "failed to load document", map[string]interface{}{
			"document_id": payload.DocumentId.String(),
			"error":       err.Error(),
		})
		msg.Nack()
		return
	}
	if document == nil {
		// Deleted between upload and indexing.
		msg.Ack()
		return
	}

	if err := s.index(ctx, document, payload.CorrelationId); err != nil {
		s.markFailed(ctx, document, payload.CorrelationId, err)
		msg.Ack() // failure is recorded on the document row, no redelivery
		return
	}

	msg.Ack()
}

func (s *indexerService) index(ctx context.Context, document *entity.Document, correlationId string) error {
	document.Status = entity.DocumentStatusIndexing
	if err := s.documentRepository.Update(ctx, document); err != nil {
		return fmt.Errorf("mark indexing: %w", err)
	}

	raw, err := os.ReadFile(document.StoragePath)
	if err != nil {
		return fmt.Errorf("read stored text: %w", err)
	}

	// Stale chunks from a previous indexing run must not survive a re-index.
	if err := s.chunkRepository.DeleteByDocumentId(ctx, document.Id); err != nil {
		return fmt.Errorf("clear previous chunks: %w", err)
	}

	pieces := s.chunker.Split(string(raw), nil)
	if len(pieces) == 0 {
		return fmt.Errorf("document has no extractable text")
	}

	chunks := make([]*entity.DocumentChunk, len(pieces))
	for i, piece := range pieces {
		embResp, err := s.embeddingProvider.Generate(piece.Content, embedding.TaskRetrievalDocument)
		if err != nil {
			return fmt.Errorf("embed chunk %d: %w", piece.ChunkIndex, err)
		}
		chunks[i] = &entity.DocumentChunk{
			DocumentId:     document.Id,
			TenantId:       document.TenantId,
			Content:        piece.Content,
			PageNumber:     piece.PageNumber,
			ChunkIndex:     piece.ChunkIndex,
			WordCount:      piece.WordCount,
			EmbeddingModel: s.embeddingModel,
			Embedding:      embResp.Embedding.Values,
			CreatedAt:      time.Now(),
		}
	}

	if err := s.chunkRepository.CreateBulk(ctx, chunks); err != nil {
		return fmt.Errorf("persist chunks: %w", err)
	}

	chunkCount := len(chunks)
	document.Status = entity.DocumentStatusIndexed
	document.ChunkCount = &chunkCount
	if err := s.documentRepository.Update(ctx, document); err != nil {
		return fmt.Errorf("mark indexed: %w", err)
	}

	s.log.Info("indexer", "document indexed", map[string]interface{}{
		"document_id": document.Id.String(),
		"tenant_id":   document.TenantId,
		"chunk_count": chunkCount,
	})

	if s.eventPublisher != nil {
		event := events.NewDocumentIndexed(document.Id, correlationId, document.TenantId, chunkCount, s.embeddingModel)
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.log.Warn("indexer", "failed to publish indexed event", map[string]interface{}{
				"document_id": document.Id.String(),
				"error":       err.Error(),
			})
		}
	}
	return nil
}

func (s *indexerService) markFailed(ctx context.Context, document *entity.Document, correlationId string, cause error) {
	s.log.Error("indexer", "document indexing failed", map[string]interface{}{
		"document_id": document.Id.String(),
		"tenant_id":   document.TenantId,
		"error":       cause.Error(),
	})

	document.Status = entity.DocumentStatusFailed
	if err := s.documentRepository.Update(ctx, document); err != nil {
		s.log.Error("indexer", "failed to mark document failed", map[string]interface{}{
			"document_id": document.Id.String(),
			"error":       err.Error(),
		})
	}

	if s.eventPublisher != nil {
		event := events.NewDocumentIndexingFailed(document.Id, correlationId, document.TenantId,
			"INDEXING_FAILED", cause.Error())
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.log.Warn("indexer", "failed to publish indexing_failed event", map[string]interface{}{
				"document_id": document.Id.String(),
				"error":       err.Error(),
			})
		}
	}
}
