package agent

// Router selects the next stage from the just-produced state. It is pure and
// total: for every reachable stage exactly one successor is defined, and the
// only backward edge (verification -> synthesis) is bounded by the attempt
// counter, never by recursion.
type Router struct {
	cfg Config
}

func NewRouter(cfg Config) *Router {
	return &Router{cfg: cfg}
}

// Next inspects state.CurrentStage (the last completed stage) and returns
// the stage to execute next, or a terminal stage.
func (r *Router) Next(state SessionState) Stage {
	switch state.CurrentStage {
	case StageInit:
		return StageGuardrailCheck

	case StageGuardrailCheck:
		if state.GuardrailPassed != nil && *state.GuardrailPassed {
			return StageRetrieval
		}
		return StageRefused

	case StageRetrieval:
		if state.HasContext {
			return StageSynthesis
		}
		return StageRefused

	case StageSynthesis:
		return StageCitationVerification

	case StageCitationVerification:
		if state.CitationVerified {
			return StageDone
		}
		if state.SynthesisAttempts < r.cfg.maxAttempts() {
			return StageSynthesis
		}
		return StageRefused

	case StageDone, StageRefused, StageError:
		return state.CurrentStage

	default:
		// Unreachable for states produced by the orchestrator; surfacing
		// ERROR keeps the function total.
		return StageError
	}
}
