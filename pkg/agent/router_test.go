package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func boolPtr(b bool) *bool { return &b }

func TestRouterNext(t *testing.T) {
	router := NewRouter(DefaultConfig())

	tests := []struct {
		name  string
		state SessionState
		want  Stage
	}{
		{
			name:  "init routes to guardrail",
			state: SessionState{CurrentStage: StageInit},
			want:  StageGuardrailCheck,
		},
		{
			name:  "guardrail pass routes to retrieval",
			state: SessionState{CurrentStage: StageGuardrailCheck, GuardrailPassed: boolPtr(true)},
			want:  StageRetrieval,
		},
		{
			name:  "guardrail reject routes to refused",
			state: SessionState{CurrentStage: StageGuardrailCheck, GuardrailPassed: boolPtr(false)},
			want:  StageRefused,
		},
		{
			name:  "guardrail verdict missing routes to refused",
			state: SessionState{CurrentStage: StageGuardrailCheck},
			want:  StageRefused,
		},
		{
			name:  "retrieval with context routes to synthesis",
			state: SessionState{CurrentStage: StageRetrieval, HasContext: true},
			want:  StageSynthesis,
		},
		{
			name:  "retrieval without context routes to refused",
			state: SessionState{CurrentStage: StageRetrieval, HasContext: false},
			want:  StageRefused,
		},
		{
			name:  "synthesis always routes to verification",
			state: SessionState{CurrentStage: StageSynthesis},
			want:  StageCitationVerification,
		},
		{
			name:  "verified routes to done",
			state: SessionState{CurrentStage: StageCitationVerification, CitationVerified: true, SynthesisAttempts: 1},
			want:  StageDone,
		},
		{
			name:  "unverified with budget left loops to synthesis",
			state: SessionState{CurrentStage: StageCitationVerification, SynthesisAttempts: 2},
			want:  StageSynthesis,
		},
		{
			name:  "unverified with budget spent routes to refused",
			state: SessionState{CurrentStage: StageCitationVerification, SynthesisAttempts: 3},
			want:  StageRefused,
		},
		{
			name:  "done is absorbing",
			state: SessionState{CurrentStage: StageDone},
			want:  StageDone,
		},
		{
			name:  "refused is absorbing",
			state: SessionState{CurrentStage: StageRefused},
			want:  StageRefused,
		},
		{
			name:  "error is absorbing",
			state: SessionState{CurrentStage: StageError},
			want:  StageError,
		},
		{
			name:  "unknown stage surfaces error",
			state: SessionState{CurrentStage: Stage("garbage")},
			want:  StageError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, router.Next(tt.state))
		})
	}
}

// Totality: Next returns a defined stage for every declared stage value, even
// on otherwise-zero states.
func TestRouterTotal(t *testing.T) {
	router := NewRouter(DefaultConfig())
	all := []Stage{
		StageInit, StageGuardrailCheck, StageRetrieval, StageSynthesis,
		StageCitationVerification, StageDone, StageRefused, StageError,
	}
	valid := map[Stage]bool{}
	for _, s := range all {
		valid[s] = true
	}
	for _, s := range all {
		next := router.Next(SessionState{CurrentStage: s})
		assert.True(t, valid[next], "stage %q routed to undefined stage %q", s, next)
	}
}
