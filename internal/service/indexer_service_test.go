package service

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"contract-qa-be/internal/dto"
	"contract-qa-be/internal/entity"
	"contract-qa-be/internal/repository/contract"
	"contract-qa-be/pkg/chunker"
	"contract-qa-be/pkg/embedding"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memDocumentRepo struct {
	mu   sync.Mutex
	docs map[uuid.UUID]*entity.Document
}

func newMemDocumentRepo() *memDocumentRepo {
	return &memDocumentRepo{docs: map[uuid.UUID]*entity.Document{}}
}

func (r *memDocumentRepo) Create(_ context.Context, d *entity.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *d
	r.docs[d.Id] = &cp
	return nil
}

func (r *memDocumentRepo) Update(_ context.Context, d *entity.Document) error {
	return r.Create(context.Background(), d)
}

func (r *memDocumentRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.docs, id)
	return nil
}

func (r *memDocumentRepo) FindById(_ context.Context, tenantId string, id uuid.UUID) (*entity.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[id]
	if !ok || d.TenantId != tenantId {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r *memDocumentRepo) FindAllByTenant(_ context.Context, tenantId string) ([]*entity.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Document
	for _, d := range r.docs {
		if d.TenantId == tenantId {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memDocumentRepo) FindByIdGlobal(_ context.Context, id uuid.UUID) (*entity.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

type memChunkRepo struct {
	mu     sync.Mutex
	chunks []*entity.DocumentChunk
}

func (r *memChunkRepo) CreateBulk(_ context.Context, chunks []*entity.DocumentChunk) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range chunks {
		if c.Id == uuid.Nil {
			c.Id = uuid.New()
		}
		cp := *c
		r.chunks = append(r.chunks, &cp)
	}
	return nil
}

func (r *memChunkRepo) DeleteByDocumentId(_ context.Context, documentId uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.chunks[:0]
	for _, c := range r.chunks {
		if c.DocumentId != documentId {
			kept = append(kept, c)
		}
	}
	r.chunks = kept
	return nil
}

func (r *memChunkRepo) CountByDocumentId(_ context.Context, documentId uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, c := range r.chunks {
		if c.DocumentId == documentId {
			n++
		}
	}
	return n, nil
}

func (r *memChunkRepo) SearchSimilarWithScore(context.Context, []float32, int, string, float64) ([]*contract.ScoredChunk, error) {
	return nil, nil
}

type fixedEmbedder struct{}

func (fixedEmbedder) Generate(string, string) (*embedding.EmbeddingResponse, error) {
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: []float32{0.1, 0.2, 0.3}},
	}, nil
}

func TestIndexerProcessesUpload(t *testing.T) {
	dir := t.TempDir()
	docId := uuid.New()
	storagePath := filepath.Join(dir, docId.String()+".txt")
	text := strings.Repeat("word ", 700) // two chunks at size 512 / overlap 64
	require.NoError(t, os.WriteFile(storagePath, []byte(text), 0o644))

	docRepo := newMemDocumentRepo()
	require.NoError(t, docRepo.Create(context.Background(), &entity.Document{
		Id:          docId,
		TenantId:    "tenant-a",
		Filename:    "msa.txt",
		Status:      entity.DocumentStatusUploaded,
		StoragePath: storagePath,
		CreatedAt:   time.Now(),
	}))
	chunkRepo := &memChunkRepo{}

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	svc := NewIndexerService(
		pubSub, "DOCUMENT_UPLOADED",
		docRepo, chunkRepo,
		fixedEmbedder{}, "nomic-embed-text",
		chunker.New(512, 64),
		nil, nopLogger{},
	)

	require.NoError(t, svc.Consume(context.Background()))

	payload, err := json.Marshal(dto.IndexDocumentMessage{DocumentId: docId, CorrelationId: "corr-1"})
	require.NoError(t, err)
	require.NoError(t, NewPublisherService("DOCUMENT_UPLOADED", pubSub).Publish(context.Background(), payload))

	require.Eventually(t, func() bool {
		d, _ := docRepo.FindByIdGlobal(context.Background(), docId)
		return d != nil && d.Status == entity.DocumentStatusIndexed
	}, 5*time.Second, 20*time.Millisecond)

	doc, err := docRepo.FindByIdGlobal(context.Background(), docId)
	require.NoError(t, err)
	require.NotNil(t, doc.ChunkCount)
	assert.Equal(t, 2, *doc.ChunkCount)

	n, err := chunkRepo.CountByDocumentId(context.Background(), docId)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	chunkRepo.mu.Lock()
	defer chunkRepo.mu.Unlock()
	for _, c := range chunkRepo.chunks {
		assert.Equal(t, "tenant-a", c.TenantId)
		assert.Equal(t, "nomic-embed-text", c.EmbeddingModel)
		assert.NotEmpty(t, c.Embedding)
	}
}

func TestIndexerMarksFailureOnMissingFile(t *testing.T) {
	docId := uuid.New()
	docRepo := newMemDocumentRepo()
	require.NoError(t, docRepo.Create(context.Background(), &entity.Document{
		Id:          docId,
		TenantId:    "tenant-a",
		Status:      entity.DocumentStatusUploaded,
		StoragePath: "/nonexistent/path.txt",
		CreatedAt:   time.Now(),
	}))

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	svc := NewIndexerService(
		pubSub, "DOCUMENT_UPLOADED",
		docRepo, &memChunkRepo{},
		fixedEmbedder{}, "nomic-embed-text",
		chunker.New(512, 64),
		nil, nopLogger{},
	)
	require.NoError(t, svc.Consume(context.Background()))

	payload, _ := json.Marshal(dto.IndexDocumentMessage{DocumentId: docId})
	require.NoError(t, NewPublisherService("DOCUMENT_UPLOADED", pubSub).Publish(context.Background(), payload))

	require.Eventually(t, func() bool {
		d, _ := docRepo.FindByIdGlobal(context.Background(), docId)
		return d != nil && d.Status == entity.DocumentStatusFailed
	}, 5*time.Second, 20*time.Millisecond)
}
