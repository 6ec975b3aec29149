package service

import (
	"context"

	"contract-qa-be/internal/dto"
	"contract-qa-be/pkg/agent"

	"github.com/google/uuid"
)

// Embedded collaborator adapters. When COLLABORATOR_MODE=embedded the
// orchestrator talks to the in-process services through these instead of
// going over HTTP.

type embeddedGuardrailClient struct {
	svc IGuardrailService
}

func NewEmbeddedGuardrailClient(svc IGuardrailService) agent.GuardrailClient {
	return &embeddedGuardrailClient{svc: svc}
}

func (c *embeddedGuardrailClient) ValidateInput(ctx context.Context, text, tenantID string) (*agent.GuardrailResult, error) {
	resp, err := c.svc.ValidateInput(ctx, &dto.ValidateInputRequest{Text: text, TenantId: tenantID})
	if err != nil {
		return nil, err
	}
	return &agent.GuardrailResult{
		Passed:         resp.Passed,
		RefusalCode:    resp.RefusalCode,
		InjectionScore: resp.InjectionScore,
	}, nil
}

type embeddedRetrievalClient struct {
	svc IRetrievalService
}

func NewEmbeddedRetrievalClient(svc IRetrievalService) agent.RetrievalClient {
	return &embeddedRetrievalClient{svc: svc}
}

func (c *embeddedRetrievalClient) Retrieve(ctx context.Context, req agent.RetrieveRequest) (*agent.RetrievalResult, error) {
	resp, err := c.svc.Retrieve(ctx, &dto.RetrieveRequest{
		Query:               req.Query,
		TenantId:            req.TenantID,
		TopK:                req.TopK,
		SimilarityThreshold: req.SimilarityThreshold,
	})
	if err != nil {
		return nil, err
	}
	chunks := make([]agent.RetrievedChunk, 0, len(resp.Chunks))
	for _, ch := range resp.Chunks {
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
		HasContext: resp.HasContext && len(chunks) > 0,
		Chunks:     chunks,
	}, nil
}
