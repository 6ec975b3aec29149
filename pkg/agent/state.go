package agent

import (
	"github.com/google/uuid"
)

// Stage is one named step of the query state machine.
type Stage string

const (
	StageInit                  Stage = "init"
	StageGuardrailCheck        Stage = "guardrail_check"
	StageRetrieval             Stage = "retrieval"
	StageSynthesis             Stage = "synthesis"
	StageCitationVerification  Stage = "citation_verification"
	StageDone                  Stage = "done"
	StageRefused               Stage = "refused"
	StageError                 Stage = "error"
)

// IsTerminal reports whether the stage ends the session.
func (s Stage) IsTerminal() bool {
	return s == StageDone || s == StageRefused || s == StageError
}

// Machine-readable refusal reasons surfaced to the caller.
const (
	RefusalNoRelevantContext         = "NO_RELEVANT_CONTEXT"
	RefusalCitationVerificationFailed = "CITATION_VERIFICATION_FAILED"
	RefusalGuardrailRejected          = "GUARDRAIL_REJECTED"
)

// RetrievedChunk is one ranked evidence unit returned by the retrieval
// collaborator. Immutable once placed in the session state.
type RetrievedChunk struct {
	ChunkID          uuid.UUID
	DocumentID       uuid.UUID
	DocumentFilename string
	Content          string
	PageNumber       *int
	ChunkIndex       int
	SimilarityScore  float64
}

// Citation binds a claim in the answer to one retrieved chunk. A citation is
// only ever constructed from a chunk present in the session's retrieved set.
type Citation struct {
	ChunkID          uuid.UUID
	DocumentID       uuid.UUID
	DocumentFilename string
	PageNumber       *int
	Excerpt          string
	SimilarityScore  float64
}

// SessionState is the record threaded through every stage of one query
// session. Each stage adapter receives it by value and returns a new value;
// nothing outside the orchestrator ever holds a reference to it. Data flows
// forward-only: no stage reads fields produced by a later stage.
type SessionState struct {
	// Identity
	SessionID     uuid.UUID
	CorrelationID string
	TenantID      string
	UserID        string

	// Input
	Query string

	// Guardrail. GuardrailPassed is tri-state: nil until the guardrail
	// stage ran. GuardrailDegraded marks a fail-open pass (collaborator
	// unreachable) so audit can tell it apart from a confirmed pass.
	GuardrailPassed      *bool
	GuardrailDegraded    bool
	GuardrailRefusalCode string
	InjectionScore       float64

	// Retrieval
	RetrievedChunks []RetrievedChunk
	HasContext      bool

	// Synthesis
	Answer            string
	Citations         []Citation
	SynthesisAttempts int
	PromptTokens      int
	CompletionTokens  int

	// Verification
	CitationVerified bool

	// Control. CurrentStage always reflects the last completed stage or
	// the terminal outcome.
	CurrentStage  Stage
	RefusalReason string
	ErrorMessage  string
}

// NewSessionState creates the initial state for one incoming query. All
// optional fields start unset; the session id is generated here, once.
func NewSessionState(correlationID, tenantID, userID, query string) SessionState {
	return SessionState{
		SessionID:     uuid.New(),
		CorrelationID: correlationID,
		TenantID:      tenantID,
		UserID:        userID,
		Query:         query,
		CurrentStage:  StageInit,
	}
}

// chunkByID resolves a chunk id string against the retrieved set.
func (s SessionState) chunkByID(id string) (RetrievedChunk, bool) {
	for _, c := range s.RetrievedChunks {
		if c.ChunkID.String() == id {
			return c, true
		}
	}
	return RetrievedChunk{}, false
}
