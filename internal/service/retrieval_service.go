package service

import (
	"context"
	"fmt"

	"contract-qa-be/internal/dto"
	"contract-qa-be/internal/pkg/logger"
	"contract-qa-be/internal/repository/contract"
	"contract-qa-be/pkg/embedding"
)

type IRetrievalService interface {
	Retrieve(ctx context.Context, req *dto.RetrieveRequest) (*dto.RetrieveResponse, error)
}

type retrievalService struct {
	chunkRepository   contract.DocumentChunkRepository
	embeddingProvider embedding.EmbeddingProvider
	defaultTopK       int
	defaultThreshold  float64
	log               logger.ILogger
}

func NewRetrievalService(
	chunkRepository contract.DocumentChunkRepository,
	embeddingProvider embedding.EmbeddingProvider,
	defaultTopK int,
	defaultThreshold float64,
	log logger.ILogger,
) IRetrievalService {
	return &retrievalService{
		chunkRepository:   chunkRepository,
		embeddingProvider: embeddingProvider,
		defaultTopK:       defaultTopK,
		defaultThreshold:  defaultThreshold,
		log:               log,
	}
}

func (s *retrievalService) Retrieve(ctx context.Context, req *dto.RetrieveRequest) (*dto.RetrieveResponse, error) {
	topK := req.TopK
	if topK <= 0 {
		topK = s.defaultTopK
	}
	threshold := req.SimilarityThreshold
	if threshold <= 0 {
		threshold = s.defaultThreshold
	}

	embResp, err := s.embeddingProvider.Generate(req.Query, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	scored, err := s.chunkRepository.SearchSimilarWithScore(ctx, embResp.Embedding.Values, topK, req.TenantId, threshold)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}

	chunks := make([]dto.RetrievedChunkResponse, len(scored))
	for i, sc := range scored {
		chunks[i] = dto.RetrievedChunkResponse{
			ChunkId:          sc.Chunk.Id.String(),
			DocumentId:       sc.Chunk.DocumentId.String(),
			DocumentFilename: sc.DocumentFilename,
			Content:          sc.Chunk.Content,
			PageNumber:       sc.Chunk.PageNumber,
			ChunkIndex:       sc.Chunk.ChunkIndex,
			SimilarityScore:  sc.Similarity,
		}
	}

	s.log.Info("retrieval", "similarity search completed", map[string]interface{}{
		"tenant_id":  req.TenantId,
		"top_k":      topK,
		"threshold":  threshold,
		"chunk_hits": len(chunks),
	})

	return &dto.RetrieveResponse{
		HasContext: len(chunks) > 0,
		Chunks:     chunks,
	}, nil
}
