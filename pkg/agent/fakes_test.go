package agent

import (
	"context"
	"errors"

	"contract-qa-be/pkg/llm"

	"github.com/google/uuid"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

type fakeGuardrail struct {
	result *GuardrailResult
	err    error
	calls  int
}

func (f *fakeGuardrail) ValidateInput(_ context.Context, _, _ string) (*GuardrailResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeRetrieval struct {
	result *RetrievalResult
	err    error
	calls  int
	lastReq RetrieveRequest
}

func (f *fakeRetrieval) Retrieve(_ context.Context, req RetrieveRequest) (*RetrievalResult, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

// fakeProvider returns its canned completions in order, repeating the last
// one once the script is exhausted.
type fakeProvider struct {
	completions []string
	err         error
	calls       int
	lastOptions llm.Options
}

func (f *fakeProvider) Complete(_ context.Context, _ []llm.Message, options ...llm.Option) (*llm.Completion, error) {
	f.calls++
	opts := llm.Options{}
	for _, o := range options {
		o(&opts)
	}
	f.lastOptions = opts
	if f.err != nil {
		return nil, f.err
	}
	idx := f.calls - 1
	if idx >= len(f.completions) {
		idx = len(f.completions) - 1
	}
	return &llm.Completion{
		Content:          f.completions[idx],
		PromptTokens:     100,
		CompletionTokens: 40,
	}, nil
}

var errUnavailable = errors.New("connection refused")

func passingGuardrail() *fakeGuardrail {
	return &fakeGuardrail{result: &GuardrailResult{Passed: true}}
}

func chunkFixture(content string) RetrievedChunk {
	page := 3
	return RetrievedChunk{
		ChunkID:          uuid.New(),
		DocumentID:       uuid.New(),
		DocumentFilename: "msa-2024.pdf",
		Content:          content,
		PageNumber:       &page,
		ChunkIndex:       0,
		SimilarityScore:  0.91,
	}
}

func retrievalWith(chunks ...RetrievedChunk) *fakeRetrieval {
	return &fakeRetrieval{result: &RetrievalResult{
		HasContext: len(chunks) > 0,
		Chunks:     chunks,
	}}
}

func citingReply(chunkID uuid.UUID) string {
	return `{"answer":"Payment is due within 30 days. [CHUNK:` + chunkID.String() + `]",` +
		`"citations":[{"chunk_id":"` + chunkID.String() + `","excerpt":"Payment is due within thirty (30) days of invoice."}]}`
}
