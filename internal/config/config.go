package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Ai       AIConfig
	Agent    AgentConfig
	Ingest   IngestConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	AgentLogFilePath   string
	CorsAllowedOrigins string
	NatsURL            string
	JWTSecret          string
}

type DatabaseConfig struct {
	Connection string
}

type AIConfig struct {
	EmbeddingProvider string // "ollama" or "openai"
	OllamaBaseURL     string
	EmbeddingModel    string
	LLMProvider       string // "ollama", "openai"
	LLMModel          string // e.g. "llama3", "gpt-4o"
	OpenAIBaseURL     string
	OpenAIKey         string
}

type AgentConfig struct {
	TopK                int
	SimilarityThreshold float64
	MaxSynthesisRetries int
	MaxCompletionTokens int
	GuardrailTimeout    time.Duration
	RetrievalTimeout    time.Duration

	// CollaboratorMode selects "embedded" (in-process guardrail and
	// retrieval) or "http" (remote collaborators per the URLs below).
	CollaboratorMode    string
	GuardrailServiceURL string
	RetrievalServiceURL string
}

type IngestConfig struct {
	StorageDir        string
	UploadedTopicName string
	ChunkSizeWords    int
	ChunkOverlapWords int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			AgentLogFilePath:   getEnv("AGENT_LOG_FILE_PATH", "logs/agent.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			JWTSecret:          getEnv("JWT_SECRET", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "ollama"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			EmbeddingModel:    getEnv("EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:       getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:          getEnv("LLM_MODEL", "llama3"),
			OpenAIBaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com"),
			OpenAIKey:         getEnv("OPENAI_API_KEY", ""),
		},
		Agent: AgentConfig{
			TopK:                getEnvAsInt("AGENT_RETRIEVAL_TOP_K", 5),
			SimilarityThreshold: getEnvAsFloat("AGENT_SIMILARITY_THRESHOLD", 0.75),
			MaxSynthesisRetries: getEnvAsInt("AGENT_MAX_SYNTHESIS_RETRIES", 2),
			MaxCompletionTokens: getEnvAsInt("AGENT_MAX_COMPLETION_TOKENS", 2048),
			GuardrailTimeout:    getEnvAsDuration("AGENT_GUARDRAIL_TIMEOUT", 10*time.Second),
			RetrievalTimeout:    getEnvAsDuration("AGENT_RETRIEVAL_TIMEOUT", 15*time.Second),
			CollaboratorMode:    getEnv("COLLABORATOR_MODE", "embedded"),
			GuardrailServiceURL: getEnv("GUARDRAIL_SERVICE_URL", "http://localhost:3000"),
			RetrievalServiceURL: getEnv("RETRIEVAL_SERVICE_URL", "http://localhost:3000"),
		},
		Ingest: IngestConfig{
			StorageDir:        getEnv("DOCUMENT_STORAGE_DIR", "storage/documents"),
			UploadedTopicName: getEnv("DOCUMENT_UPLOADED_TOPIC_NAME", "DOCUMENT_UPLOADED"),
			ChunkSizeWords:    getEnvAsInt("CHUNK_SIZE_WORDS", 512),
			ChunkOverlapWords: getEnvAsInt("CHUNK_OVERLAP_WORDS", 64),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
