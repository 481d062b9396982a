package bootstrap

import (
	"context"
	"fmt"

	"urban-assistant-be/internal/config"
	"urban-assistant-be/internal/controller"
	"urban-assistant-be/internal/pkg/logger"
	"urban-assistant-be/internal/repository/implementation"
	"urban-assistant-be/internal/service"
	"urban-assistant-be/pkg/ai/aggregator"
	"urban-assistant-be/pkg/ai/pipeline"
	"urban-assistant-be/pkg/ai/router"
	"urban-assistant-be/pkg/ai/selection"
	"urban-assistant-be/pkg/ai/tools"
	"urban-assistant-be/pkg/cache"
	"urban-assistant-be/pkg/embedding"
	"urban-assistant-be/pkg/llm"
	"urban-assistant-be/pkg/llm/factory"
	pktNats "urban-assistant-be/pkg/nats"
	"urban-assistant-be/pkg/rag/search"
	"urban-assistant-be/pkg/urbanapi"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	Logger *logger.ZapLogger

	// Controllers
	QuestionController controller.IQuestionController
	AdminController    controller.IAdminController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config) (*Container, error) {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	c := &Container{Logger: sysLogger}

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermillLogger,
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	// 3. Model Endpoints
	selectorLLM, err := newModel(cfg.LLM, cfg.LLM.Selector)
	if err != nil {
		return nil, fmt.Errorf("selector model: %w", err)
	}
	answerLLM, err := newModel(cfg.LLM, cfg.LLM.Answer)
	if err != nil {
		return nil, fmt.Errorf("answer model: %w", err)
	}
	sysLogger.Info("Bootstrap", "Model endpoints ready", map[string]interface{}{
		"selector": cfg.LLM.Selector.Provider + "/" + cfg.LLM.Selector.Model,
		"answer":   cfg.LLM.Answer.Provider + "/" + cfg.LLM.Answer.Model,
	})

	sampling := []llm.Option{
		llm.WithTemperature(cfg.LLM.Temperature),
		llm.WithTopP(cfg.LLM.TopP),
		llm.WithMaxTokens(cfg.LLM.TokenLimit),
	}

	selector := selection.NewSelector(selectorLLM, sysLogger, sampling...)

	var pipelineVerifier, functionVerifier *selection.Verifier
	if cfg.Pipeline.VerifyPipeline || cfg.Pipeline.VerifyFunctions {
		verifierLLM, err := newModel(cfg.LLM, cfg.LLM.Verifier)
		if err != nil {
			return nil, fmt.Errorf("verifier model: %w", err)
		}
		if cfg.Pipeline.VerifyPipeline {
			pipelineVerifier = selection.NewPipelineVerifier(verifierLLM, sysLogger, sampling...)
		}
		if cfg.Pipeline.VerifyFunctions {
			functionVerifier = selection.NewFunctionVerifier(verifierLLM, sysLogger, sampling...)
		}
	}

	// 4. Urban statistics API
	responseCache, closeCache := newCache(cfg, sysLogger)
	c.closers = append(c.closers, closeCache)
	urbanClient := urbanapi.NewClient(cfg.UrbanAPI.BaseURL, cfg.UrbanAPI.Timeout, responseCache, cfg.UrbanAPI.CacheTTL)

	accessibilityTools := tools.AccessibilityTools()
	registry, err := urbanapi.NewRegistry(urbanapi.SummaryTableFuncs(urbanClient), accessibilityTools)
	if err != nil {
		return nil, err
	}

	// 5. Strategy document retrieval
	embedder, err := embedding.NewProvider(
		cfg.RAG.EmbeddingProvider,
		cfg.RAG.EmbeddingURL,
		cfg.RAG.EmbeddingModel,
		cfg.RAG.EmbeddingAPIKey,
		cfg.LLM.Timeout,
	)
	if err != nil {
		return nil, fmt.Errorf("embedding provider: %w", err)
	}
	retriever := search.NewVectorRetriever(embedder, implementation.NewDocumentChunkRepository(db))

	// 6. Pipelines
	accessibility := pipeline.NewAccessibilityPipeline(pipeline.AccessibilityDeps{
		Tools:    accessibilityTools,
		Selector: selector,
		Verifier: functionVerifier,
		Aggregator: aggregator.NewAggregator(registry, sysLogger, aggregator.Config{
			Parallel:     cfg.Pipeline.ParallelFetch,
			MaxParallel:  cfg.Pipeline.MaxParallel,
			FetchTimeout: cfg.UrbanAPI.Timeout,
		}),
		Answerer:   answerLLM,
		Logger:     sysLogger,
		AnswerOpts: sampling,
	})
	strategy := pipeline.NewStrategyPipeline(retriever, answerLLM, sysLogger, cfg.RAG.Collection, cfg.RAG.ChunkNum, sampling...)
	dispatcher := router.NewRouter(selector, pipelineVerifier, accessibility, strategy, sysLogger)

	// 7. Events
	var external service.EventPublisher
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL, sysLogger)
	if err != nil {
		sysLogger.Warn("Bootstrap", "Failed to connect to NATS Publisher", map[string]interface{}{"error": err.Error()})
	} else {
		external = natsPub
		c.closers = append(c.closers, natsPub.Close)
	}

	questionLogs := implementation.NewQuestionLogRepository(db)
	publisherService := service.NewPublisherService(cfg.App.AuditTopic, pubSub, external, sysLogger)
	c.ConsumerService = service.NewConsumerService(pubSub, cfg.App.AuditTopic, questionLogs, sysLogger)

	// 8. Controllers
	questionService := service.NewQuestionService(dispatcher, publisherService, sysLogger, sysLogger)
	c.QuestionController = controller.NewQuestionController(questionService)
	c.AdminController = controller.NewAdminController(service.NewLogService(sysLogger, questionLogs))

	return c, nil
}

// Close releases bus connections and flushes the logger
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}

func newModel(cfg config.LLMConfig, endpoint config.ModelEndpoint) (llm.LLMProvider, error) {
	return factory.NewLLMProvider(factory.Spec{
		Provider:   endpoint.Provider,
		BaseURL:    endpoint.BaseURL,
		Model:      endpoint.Model,
		APIKey:     endpoint.APIKey,
		Timeout:    cfg.Timeout,
		MaxRetries: cfg.MaxRetries,
	})
}

func newCache(cfg *config.Config, log logger.ILogger) (cache.Cache, func()) {
	memory := func() (cache.Cache, func()) {
		return cache.NewMemoryCache(cfg.UrbanAPI.CacheTTL, 2*cfg.UrbanAPI.CacheTTL), func() {}
	}

	switch cfg.UrbanAPI.CacheBackend {
	case "redis":
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Warn("Bootstrap", "Failed to parse Redis URL, using direct Addr", map[string]interface{}{"error": err.Error()})
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb := redis.NewClient(opt)
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Warn("Bootstrap", "Failed to connect to Redis, using in-process cache", map[string]interface{}{"error": err.Error()})
			_ = rdb.Close()
			return memory()
		}
		return cache.NewRedisCache(rdb, "urbanapi:"), func() { _ = rdb.Close() }
	case "none":
		return cache.Noop{}, func() {}
	default:
		return memory()
	}
}
