package agent

import (
	"context"

	"contract-qa-be/internal/pkg/logger"
)

// guardrailStage runs the safety screening step: one call to the guardrail
// collaborator with a bounded timeout, no retry.
type guardrailStage struct {
	client GuardrailClient
	cfg    Config
	logger logger.ILogger
}

func newGuardrailStage(client GuardrailClient, cfg Config, log logger.ILogger) *guardrailStage {
	return &guardrailStage{client: client, cfg: cfg, logger: log}
}

// Run screens the query. On a successful collaborator response the verdict is
// trusted exactly. On collaborator unavailability the stage fails OPEN: the
// query is treated as passed, but the state carries GuardrailDegraded=true so
// the degraded pass stays distinguishable for audit.
func (g *guardrailStage) Run(ctx context.Context, state SessionState) (SessionState, error) {
	callCtx, cancel := context.WithTimeout(ctx, g.cfg.GuardrailTimeout)
	defer cancel()

	result, err := g.client.ValidateInput(callCtx, state.Query, state.TenantID)
	if err != nil {
		g.logger.Error("agent.guardrail", "guardrail collaborator unreachable, failing open", map[string]interface{}{
			"session_id":     state.SessionID.String(),
			"correlation_id": state.CorrelationID,
			"error":          err.Error(),
		})
		passed := true
		state.GuardrailPassed = &passed
		state.GuardrailDegraded = true
		state.CurrentStage = StageGuardrailCheck
		return state, nil
	}

	passed := result.Passed
	state.GuardrailPassed = &passed
	state.GuardrailRefusalCode = result.RefusalCode
	state.InjectionScore = result.InjectionScore
	if !passed {
		if result.RefusalCode != "" {
			state.RefusalReason = result.RefusalCode
		} else {
			state.RefusalReason = RefusalGuardrailRejected
		}
	}

	g.logger.Info("agent.guardrail", "guardrail check completed", map[string]interface{}{
		"session_id":      state.SessionID.String(),
		"passed":          passed,
		"refusal_code":    result.RefusalCode,
		"injection_score": result.InjectionScore,
	})

	state.CurrentStage = StageGuardrailCheck
	return state, nil
}
