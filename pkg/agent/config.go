package agent

import "time"

// Config holds the orchestration policy knobs. Values mirror the deployed
// defaults; everything is overridable from the environment via
// internal/config.
type Config struct {
	// TopK bounds how many chunks retrieval may return.
	TopK int
	// SimilarityThreshold is the relevance floor applied by the
	// retrieval collaborator.
	SimilarityThreshold float64
	// MaxSynthesisRetries is how many times a failed verification may
	// loop back to synthesis after the initial attempt. With the default
	// of 2 a session performs at most 3 synthesis calls.
	MaxSynthesisRetries int
	// MaxCompletionTokens caps the completion collaborator's output.
	MaxCompletionTokens int

	GuardrailTimeout time.Duration
	RetrievalTimeout time.Duration
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		TopK:                5,
		SimilarityThreshold: 0.75,
		MaxSynthesisRetries: 2,
		MaxCompletionTokens: 2048,
		GuardrailTimeout:    10 * time.Second,
		RetrievalTimeout:    15 * time.Second,
	}
}

// maxAttempts is the total synthesis budget: the initial attempt plus the
// configured retries.
func (c Config) maxAttempts() int {
	return c.MaxSynthesisRetries + 1
}
