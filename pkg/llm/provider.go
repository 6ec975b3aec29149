package llm

import (
	"context"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

// Completion is the provider-agnostic result of one completion request.
// Token counters are zero when the backend does not report usage.
type Completion struct {
	Content          string
	PromptTokens     int
	CompletionTokens int
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature  float64
	MaxTokens    int
	Model        string // Override default model
	JSONResponse bool   // Require a structured-JSON response body
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(maxTokens int) Option {
	return func(o *Options) {
		o.MaxTokens = maxTokens
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

func WithJSONResponse() Option {
	return func(o *Options) {
		o.JSONResponse = true
	}
}

// LLMProvider defines the contract for any completion backend
type LLMProvider interface {
	// Complete sends a chat history to the model and returns the response
	// together with token-usage counters.
	Complete(ctx context.Context, history []Message, options ...Option) (*Completion, error)
}
