package bootstrap

import (
	"log"

	"contract-qa-be/internal/config"
	"contract-qa-be/internal/controller"
	"contract-qa-be/internal/pkg/logger"
	"contract-qa-be/internal/repository/implementation"
	"contract-qa-be/internal/service"
	"contract-qa-be/pkg/agent"
	"contract-qa-be/pkg/chunker"
	"contract-qa-be/pkg/collaborator"
	"contract-qa-be/pkg/embedding"
	"contract-qa-be/pkg/llm/factory"

	pktNats "contract-qa-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	QueryController     controller.IQueryController
	GuardrailController controller.IGuardrailController
	RetrievalController controller.IRetrievalController
	DocumentController  controller.IDocumentController

	// Background Services (Exposed for main.go to run)
	IndexerService service.IIndexerService
	AuditService   service.IAuditService

	// Infrastructure handles main.go needs for shutdown
	EventPublisher *pktNats.Publisher
	SysLogger      logger.ILogger
	AgentLogger    logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	// The agent audit trail goes to its own file so per-stage records are
	// greppable without the server noise.
	agentLogger := logger.NewIsolatedLogger(cfg.App.AgentLogFilePath)

	// 2. Internal event bus (indexing pipeline)
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "openai" {
		embeddingProvider = embedding.NewOpenAIProvider(cfg.Ai.OpenAIBaseURL, cfg.Ai.OpenAIKey, cfg.Ai.EmbeddingModel)
		log.Printf("[INFO] Using Embedding Provider: OPENAI (%s)", cfg.Ai.EmbeddingModel)
	} else {
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.EmbeddingModel)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.EmbeddingModel)
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.OpenAIBaseURL,
		cfg.Ai.OpenAIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. NATS audit bus
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
		natsSub = nil
	}

	// 5. Repositories
	documentRepo := implementation.NewDocumentRepository(db)
	chunkRepo := implementation.NewDocumentChunkRepository(db)

	// 6. Collaborator services (always constructed: they back the HTTP
	// endpoints even when the orchestrator talks to remote peers)
	guardrailService := service.NewGuardrailService(0, sysLogger)
	retrievalService := service.NewRetrievalService(
		chunkRepo,
		embeddingProvider,
		cfg.Agent.TopK,
		cfg.Agent.SimilarityThreshold,
		sysLogger,
	)

	// 7. Agent pipeline
	agentCfg := agent.Config{
		TopK:                cfg.Agent.TopK,
		SimilarityThreshold: cfg.Agent.SimilarityThreshold,
		MaxSynthesisRetries: cfg.Agent.MaxSynthesisRetries,
		MaxCompletionTokens: cfg.Agent.MaxCompletionTokens,
		GuardrailTimeout:    cfg.Agent.GuardrailTimeout,
		RetrievalTimeout:    cfg.Agent.RetrievalTimeout,
	}

	var guardrailClient agent.GuardrailClient
	var retrievalClient agent.RetrievalClient
	if cfg.Agent.CollaboratorMode == "http" {
		guardrailClient = collaborator.NewGuardrailHTTPClient(cfg.Agent.GuardrailServiceURL, cfg.Agent.GuardrailTimeout)
		retrievalClient = collaborator.NewRetrievalHTTPClient(cfg.Agent.RetrievalServiceURL, cfg.Agent.RetrievalTimeout)
		log.Printf("[INFO] Collaborator mode: HTTP (guardrail=%s retrieval=%s)",
			cfg.Agent.GuardrailServiceURL, cfg.Agent.RetrievalServiceURL)
	} else {
		guardrailClient = service.NewEmbeddedGuardrailClient(guardrailService)
		retrievalClient = service.NewEmbeddedRetrievalClient(retrievalService)
		log.Printf("[INFO] Collaborator mode: embedded")
	}

	orchestrator := agent.NewOrchestrator(guardrailClient, retrievalClient, llmProvider, agentCfg, agentLogger)

	// 8. Domain services
	publisherService := service.NewPublisherService(cfg.Ingest.UploadedTopicName, pubSub)
	textChunker := chunker.New(cfg.Ingest.ChunkSizeWords, cfg.Ingest.ChunkOverlapWords)

	queryService := service.NewQueryService(orchestrator, natsPub, sysLogger)
	documentService := service.NewDocumentService(
		documentRepo,
		chunkRepo,
		publisherService,
		natsPub,
		cfg.Ingest.StorageDir,
		sysLogger,
	)
	indexerService := service.NewIndexerService(
		pubSub,
		cfg.Ingest.UploadedTopicName,
		documentRepo,
		chunkRepo,
		embeddingProvider,
		cfg.Ai.EmbeddingModel,
		textChunker,
		natsPub,
		sysLogger,
	)

	var auditService service.IAuditService
	if natsSub != nil {
		auditService = service.NewAuditService(natsSub, agentLogger)
	}

	// 9. Controllers
	return &Container{
		QueryController:     controller.NewQueryController(queryService),
		GuardrailController: controller.NewGuardrailController(guardrailService),
		RetrievalController: controller.NewRetrievalController(retrievalService),
		DocumentController:  controller.NewDocumentController(documentService),

		IndexerService: indexerService,
		AuditService:   auditService,

		EventPublisher: natsPub,
		SysLogger:      sysLogger,
		AgentLogger:    agentLogger,
	}
}
