package agent

import (
	"context"
	"fmt"

	"contract-qa-be/internal/pkg/logger"
)

// retrievalStage fetches ranked evidence for the query. Unlike the guardrail
// stage it fails CLOSED: an unreachable retrieval collaborator is an
// infrastructure fault, because treating it as "no evidence found" would
// turn an outage into a silent refusal.
type retrievalStage struct {
	client RetrievalClient
	cfg    Config
	logger logger.ILogger
}

func newRetrievalStage(client RetrievalClient, cfg Config, log logger.ILogger) *retrievalStage {
	return &retrievalStage{client: client, cfg: cfg, logger: log}
}

func (r *retrievalStage) Run(ctx context.Context, state SessionState) (SessionState, error) {
	callCtx, cancel := context.WithTimeout(ctx, r.cfg.RetrievalTimeout)
	defer cancel()

	result, err := r.client.Retrieve(callCtx, RetrieveRequest{
		Query:               state.Query,
		TenantID:            state.TenantID,
		TopK:                r.cfg.TopK,
		SimilarityThreshold: r.cfg.SimilarityThreshold,
		CorrelationID:       state.CorrelationID,
	})
	if err != nil {
		return state, fmt.Errorf("retrieval collaborator: %w", err)
	}

	state.RetrievedChunks = result.Chunks
	state.HasContext = result.HasContext && len(result.Chunks) > 0
	if !state.HasContext {
		state.RefusalReason = RefusalNoRelevantContext
	}

	r.logger.Info("agent.retrieval", "retrieval completed", map[string]interface{}{
		"session_id":     state.SessionID.String(),
		"correlation_id": state.CorrelationID,
		"has_context":    state.HasContext,
		"chunk_count":    len(result.Chunks),
	})

	state.CurrentStage = StageRetrieval
	return state, nil
}
