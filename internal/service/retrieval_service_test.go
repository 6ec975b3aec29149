package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"contract-qa-be/internal/dto"
	"contract-qa-be/internal/entity"
	"contract-qa-be/internal/repository/contract"
	"contract-qa-be/pkg/embedding"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scoringChunkRepo struct {
	memChunkRepo
	scored    []*contract.ScoredChunk
	err       error
	lastLimit int
	lastTenant    string
	lastThreshold float64
}

func (r *scoringChunkRepo) SearchSimilarWithScore(_ context.Context, _ []float32, limit int, tenantId string, threshold float64) ([]*contract.ScoredChunk, error) {
	r.lastLimit = limit
	r.lastTenant = tenantId
	r.lastThreshold = threshold
	if r.err != nil {
		return nil, r.err
	}
	return r.scored, nil
}

type failingEmbedder struct{}

func (failingEmbedder) Generate(string, string) (*embedding.EmbeddingResponse, error) {
	return nil, errors.New("embedding backend down")
}

func scoredChunkFixture(tenantId string) *contract.ScoredChunk {
	page := 2
	return &contract.ScoredChunk{
		Chunk: &entity.DocumentChunk{
			Id:         uuid.New(),
			DocumentId: uuid.New(),
			TenantId:   tenantId,
			Content:    "Either party may terminate with 60 days notice.",
			PageNumber: &page,
			ChunkIndex: 4,
			CreatedAt:  time.Now(),
		},
		DocumentFilename: "msa.pdf",
		Similarity:       0.83,
	}
}

func TestRetrieveReturnsRankedChunks(t *testing.T) {
	repo := &scoringChunkRepo{scored: []*contract.ScoredChunk{scoredChunkFixture("tenant-a")}}
	svc := NewRetrievalService(repo, fixedEmbedder{}, 5, 0.75, nopLogger{})

	res, err := svc.Retrieve(context.Background(), &dto.RetrieveRequest{
		Query:    "termination notice period",
		TenantId: "tenant-a",
	})

	require.NoError(t, err)
	assert.True(t, res.HasContext)
	require.Len(t, res.Chunks, 1)
	assert.Equal(t, "msa.pdf", res.Chunks[0].DocumentFilename)
	assert.Equal(t, 4, res.Chunks[0].ChunkIndex)
	assert.InDelta(t, 0.83, res.Chunks[0].SimilarityScore, 0.001)
	// Defaults applied when the request leaves them unset.
	assert.Equal(t, 5, repo.lastLimit)
	assert.InDelta(t, 0.75, repo.lastThreshold, 0.001)
	assert.Equal(t, "tenant-a", repo.lastTenant)
}

func TestRetrieveHonorsRequestOverrides(t *testing.T) {
	repo := &scoringChunkRepo{}
	svc := NewRetrievalService(repo, fixedEmbedder{}, 5, 0.75, nopLogger{})

	res, err := svc.Retrieve(context.Background(), &dto.RetrieveRequest{
		Query:               "q",
		TenantId:            "tenant-a",
		TopK:                12,
		SimilarityThreshold: 0.5,
	})

	require.NoError(t, err)
	assert.False(t, res.HasContext)
	assert.Empty(t, res.Chunks)
	assert.Equal(t, 12, repo.lastLimit)
	assert.InDelta(t, 0.5, repo.lastThreshold, 0.001)
}

func TestRetrieveEmbeddingFault(t *testing.T) {
	svc := NewRetrievalService(&scoringChunkRepo{}, failingEmbedder{}, 5, 0.75, nopLogger{})

	_, err := svc.Retrieve(context.Background(), &dto.RetrieveRequest{Query: "q", TenantId: "t"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "embed query")
}
