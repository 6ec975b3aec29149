package factory

import (
	"fmt"

	"contract-qa-be/pkg/llm"
	"contract-qa-be/pkg/llm/ollama"
	"contract-qa-be/pkg/llm/openai"
)

func NewLLMProvider(providerType, modelName, ollamaBaseURL, openaiBaseURL, openaiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "ollama":
		if ollamaBaseURL == "" {
			ollamaBaseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(ollamaBaseURL, modelName), nil
	case "openai":
		return openai.NewOpenAIProvider(openaiBaseURL, openaiKey, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
