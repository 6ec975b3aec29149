package collaborator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"contract-qa-be/internal/dto"
	"contract-qa-be/internal/pkg/serverutils"
	"contract-qa-be/pkg/agent"

	"github.com/google/uuid"
)

// RetrievalHTTPClient talks to a remote evidence-retrieval service.
type RetrievalHTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewRetrievalHTTPClient(baseURL string, timeout time.Duration) *RetrievalHTTPClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &RetrievalHTTPClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *RetrievalHTTPClient) Retrieve(ctx context.Context, req agent.RetrieveRequest) (*agent.RetrievalResult, error) {
	body, err := json.Marshal(dto.RetrieveRequest{
		Query:               req.Query,
		TenantId:            req.TenantID,
		TopK:                req.TopK,
		SimilarityThreshold: req.SimilarityThreshold,
	})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/retrieve", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if req.CorrelationID != "" {
		httpReq.Header.Set(serverutils.CorrelationIDHeader, req.CorrelationID)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("retrieval request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("retrieval returned status %d", resp.StatusCode)
	}

	var payload dto.RetrieveResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode retrieval response: %w", err)
	}

	chunks := make([]agent.RetrievedChunk, 0, len(payload.Chunks))
	for _, ch := range payload.Chunks {
		chunkID, err := uuid.Parse(ch.ChunkId)
		if err != nil {
			continue
		}
		documentID, err := uuid.Parse(ch.DocumentId)
		if err != nil {
			continue
		}
		chunks = append(chunks, agent.RetrievedChunk{
			ChunkID:          chunkID,
			DocumentID:       documentID,
			DocumentFilename: ch.DocumentFilename,
			Content:          ch.Content,
			PageNumber:       ch.PageNumber,
			ChunkIndex:       ch.ChunkIndex,
			SimilarityScore:  ch.SimilarityScore,
		})
	}

	return &agent.RetrievalResult{
		HasContext: payload.HasContext && len(chunks) > 0,
		Chunks:     chunks,
	}, nil
}
