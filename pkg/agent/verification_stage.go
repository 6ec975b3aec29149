package agent

import (
	"context"

	"contract-qa-be/internal/pkg/logger"
)

// verificationStage is the locus of the state machine's central invariant:
// no answer is ever returned unless it has at least one grounded citation.
// It makes no collaborator call.
type verificationStage struct {
	cfg    Config
	logger logger.ILogger
}

func newVerificationStage(cfg Config, log logger.ILogger) *verificationStage {
	return &verificationStage{cfg: cfg, logger: log}
}

func (v *verificationStage) Run(_ context.Context, state SessionState) (SessionState, error) {
	state.CitationVerified = len(state.Citations) > 0 && state.Answer != ""

	if !state.CitationVerified && state.SynthesisAttempts >= v.cfg.maxAttempts() {
		// Retry budget exhausted. The router will route to REFUSED.
		state.RefusalReason = RefusalCitationVerificationFailed
	}

	v.logger.Info("agent.verification", "citation verification completed", map[string]interface{}{
		"session_id":     state.SessionID.String(),
		"verified":       state.CitationVerified,
		"citation_count": len(state.Citations),
		"attempts":       state.SynthesisAttempts,
	})

	state.CurrentStage = StageCitationVerification
	return state, nil
}
