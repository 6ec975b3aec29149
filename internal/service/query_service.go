package service

import (
	"context"

	"contract-qa-be/internal/dto"
	"contract-qa-be/internal/pkg/logger"
	"contract-qa-be/internal/pkg/serverutils"
	"contract-qa-be/pkg/agent"
	"contract-qa-be/pkg/events"
	pktNats "contract-qa-be/pkg/nats"
)

// Response classifications surfaced to callers. Every answer either carries
// citations or is an explicit refusal; there is no third bucket.
const (
	ClassificationFactualWithCitations = "FACTUAL_WITH_CITATIONS"
	ClassificationRefused              = "REFUSED"
)

type IQueryService interface {
	RunQuery(ctx context.Context, correlationID string, req *dto.QueryRequest) (*dto.QueryResponse, error)
}

type queryService struct {
	orchestrator   *agent.Orchestrator
	eventPublisher *pktNats.Publisher
	log            logger.ILogger
}

func NewQueryService(
	orchestrator *agent.Orchestrator,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IQueryService {
	return &queryService{
		orchestrator:   orchestrator,
		eventPublisher: eventPublisher,
		log:            log,
	}
}

// RunQuery drives one validated query through the agent pipeline. Validation
// happens before this point; no session exists for a malformed request.
func (s *queryService) RunQuery(ctx context.Context, correlationID string, req *dto.QueryRequest) (*dto.QueryResponse, error) {
	ctx = serverutils.WithCorrelationID(ctx, correlationID)

	state := agent.NewSessionState(correlationID, req.TenantId, req.UserId, req.Query)

	final, err := s.orchestrator.Run(ctx, state)
	if err != nil {
		// Infrastructure fault: the session terminated at the error stage.
		// Surface it as an upstream failure, never as a refusal.
		return nil, serverutils.NewCollaboratorError("query pipeline failed: " + final.ErrorMessage)
	}

	resp := s.toResponse(final)
	s.publishOutcome(ctx, final)
	return resp, nil
}

func (s *queryService) toResponse(state agent.SessionState) *dto.QueryResponse {
	resp := &dto.QueryResponse{
		SessionId:         state.SessionID,
		CorrelationId:     state.CorrelationID,
		Citations:         []dto.CitationResponse{},
		SynthesisAttempts: state.SynthesisAttempts,
		PromptTokens:      state.PromptTokens,
		CompletionTokens:  state.CompletionTokens,
		GuardrailDegraded: state.GuardrailDegraded,
	}

	if state.CurrentStage == agent.StageDone {
		resp.ResponseClassification = ClassificationFactualWithCitations
		resp.Answer = state.Answer
		for _, c := range state.Citations {
			resp.Citations = append(resp.Citations, dto.CitationResponse{
				ChunkId:          c.ChunkID.String(),
				DocumentId:       c.DocumentID.String(),
				DocumentFilename: c.DocumentFilename,
				PageNumber:       c.PageNumber,
				Excerpt:          c.Excerpt,
				SimilarityScore:  c.SimilarityScore,
			})
		}
		return resp
	}

	resp.ResponseClassification = ClassificationRefused
	resp.RefusalReason = state.RefusalReason
	return resp
}

// publishOutcome emits the audit event for a terminal session. Publishing is
// best-effort: the caller already has their answer and a bus outage must not
// fail the request.
func (s *queryService) publishOutcome(ctx context.Context, state agent.SessionState) {
	if s.eventPublisher == nil {
		return
	}

	var event events.Event
	switch state.CurrentStage {
	case agent.StageDone:
		chunkIDs := make([]string, len(state.Citations))
		for i, c := range state.Citations {
			chunkIDs[i] = c.ChunkID.String()
		}
		event = events.NewQueryCompleted(state.SessionID, state.CorrelationID, state.TenantID, state.UserID,
			chunkIDs, state.PromptTokens, state.CompletionTokens)
	case agent.StageRefused:
		event = events.NewQueryRefused(state.SessionID, state.CorrelationID, state.TenantID, state.UserID,
			state.RefusalReason, state.GuardrailDegraded)
	default:
		return
	}

	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.log.Warn("query", "failed to publish session outcome event", map[string]interface{}{
			"session_id": state.SessionID.String(),
			"error":      err.Error(),
		})
	}
}
