package agent

import (
	"context"
	"fmt"

	"contract-qa-be/internal/pkg/logger"
	"contract-qa-be/pkg/llm"
)

// maxTransitions caps the driver loop as a hard safety net. The router's
// attempt bound terminates the only cycle long before this is reached.
const maxTransitions = 32

// Orchestrator drives one session through the stage/router loop to a
// terminal stage. It is constructed with explicit collaborator handles and
// configuration; there are no package-level singletons.
type Orchestrator struct {
	guardrail    *guardrailStage
	retrieval    *retrievalStage
	synthesis    *synthesisStage
	verification *verificationStage
	router       *Router
	logger       logger.ILogger
}

func NewOrchestrator(
	guardrailClient GuardrailClient,
	retrievalClient RetrievalClient,
	provider llm.LLMProvider,
	cfg Config,
	log logger.ILogger,
) *Orchestrator {
	return &Orchestrator{
		guardrail:    newGuardrailStage(guardrailClient, cfg, log),
		retrieval:    newRetrievalStage(retrievalClient, cfg, log),
		synthesis:    newSynthesisStage(provider, cfg, log),
		verification: newVerificationStage(cfg, log),
		router:       NewRouter(cfg),
		logger:       log,
	}
}

// Run executes the state machine for one session and returns the terminal
// state. Policy refusals are normal terminal states, not errors; an error is
// returned only for infrastructure faults (unreachable retrieval/completion
// collaborators, cancelled context), in which case the returned state is
// terminal at StageError.
func (o *Orchestrator) Run(ctx context.Context, state SessionState) (SessionState, error) {
	for i := 0; i < maxTransitions; i++ {
		if err := ctx.Err(); err != nil {
			return o.fail(state, err), err
		}

		next := o.router.Next(state)
		if next.IsTerminal() {
			state.CurrentStage = next
			o.logger.Info("agent.orchestrator", "session reached terminal stage", map[string]interface{}{
				"session_id":     state.SessionID.String(),
				"correlation_id": state.CorrelationID,
				"terminal":       string(next),
				"refusal_reason": state.RefusalReason,
				"attempts":       state.SynthesisAttempts,
			})
			return state, nil
		}

		var err error
		switch next {
		case StageGuardrailCheck:
			state, err = o.guardrail.Run(ctx, state)
		case StageRetrieval:
			state, err = o.retrieval.Run(ctx, state)
		case StageSynthesis:
			state, err = o.synthesis.Run(ctx, state)
		case StageCitationVerification:
			state, err = o.verification.Run(ctx, state)
		default:
			err = fmt.Errorf("router selected unexpected stage %q", next)
		}
		if err != nil {
			return o.fail(state, err), err
		}
	}

	err := fmt.Errorf("session exceeded %d transitions without terminating", maxTransitions)
	return o.fail(state, err), err
}

// fail stamps the state as an unrecoverable internal fault. ERROR is kept
// distinct from REFUSED so infrastructure failures never masquerade as
// policy refusals in the audit trail.
func (o *Orchestrator) fail(state SessionState, err error) SessionState {
	state.CurrentStage = StageError
	state.ErrorMessage = err.Error()
	o.logger.Error("agent.orchestrator", "session terminated with infrastructure fault", map[string]interface{}{
		"session_id":     state.SessionID.String(),
		"correlation_id": state.CorrelationID,
		"error":          err.Error(),
	})
	return state
}
