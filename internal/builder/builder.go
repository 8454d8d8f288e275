package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ShalunBdk/AI-FAQ-Bot/internal/anonymizer"
	"github.com/ShalunBdk/AI-FAQ-Bot/internal/api"
	askapi "github.com/ShalunBdk/AI-FAQ-Bot/internal/api/ask"
	"github.com/ShalunBdk/AI-FAQ-Bot/internal/config"
	"github.com/ShalunBdk/AI-FAQ-Bot/internal/generation"
	"github.com/ShalunBdk/AI-FAQ-Bot/internal/integration/llm"
	"github.com/ShalunBdk/AI-FAQ-Bot/internal/integration/morph"
	"github.com/ShalunBdk/AI-FAQ-Bot/internal/integration/vector"
	"github.com/ShalunBdk/AI-FAQ-Bot/internal/pkg/export"
	"github.com/ShalunBdk/AI-FAQ-Bot/internal/repository"
	"github.com/ShalunBdk/AI-FAQ-Bot/internal/search"
	"github.com/ShalunBdk/AI-FAQ-Bot/internal/settings"
	"github.com/ShalunBdk/AI-FAQ-Bot/internal/usecase/answer"
	"go.uber.org/zap"
)

func Build() (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	// Setup database connection
	db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}

	// Run database migrations
	logger.Info("Running database migrations")
	if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	// Initialize repositories
	faqRepo := repository.NewFAQPostgres(db)
	settingsRepo := repository.NewSettingsPostgres(db)
	logRepo := repository.NewLogPostgres(db)
	logger.Info("Repositories initialized")

	// Initialize external service connectors (with mock support)
	var vectorConnector search.VectorSearcher
	var llmConnector generation.CompletionService

	if cfg.EnableMocks {
		logger.Info("Using mock connectors for external services")
		vectorConnector = vector.NewMockConnector(logger)
		llmConnector = llm.NewMockConnector(logger)
	} else {
		logger.Info("Using real connectors for external services")
		vectorConnector = vector.NewConnector(cfg.VectorConnectorCfg, logger)
		llmConnector = llm.NewConnector(cfg.LLMConnectorCfg, logger)
	}

	// Morphological normalization is optional: without the service the
	// search tiers run on raw lower-cased tokens.
	var lemmatizer search.Lemmatizer = search.NoopLemmatizer{}
	if cfg.MorphConnectorCfg.Enabled {
		logger.Info("Morphological service enabled")
		lemmatizer = morph.NewConnector(cfg.MorphConnectorCfg, logger)
	}
	normalizer := search.NewNormalizer(lemmatizer)

	// Initialize pipeline components
	engine := search.NewEngine(faqRepo, vectorConnector, normalizer, logger)
	piiEngine := anonymizer.New()
	generator := generation.NewGenerator(llmConnector, piiEngine, logger)
	settingsStore := settings.NewCachedStore(settingsRepo, cfg.SettingsCacheTTL)
	logger.Info("Pipeline components initialized")

	// Initialize use cases
	baseGenConfig := generation.Config{
		Model:         cfg.LLMConnectorCfg.Model,
		MaxRetries:    cfg.LLMConnectorCfg.Retry.Attempts,
		RetryDelay:    cfg.LLMConnectorCfg.Retry.Delay,
		RetryMaxDelay: cfg.LLMConnectorCfg.Retry.MaxDelay,
	}
	answerUC := answer.NewUsecase(settingsStore, engine, generator, logRepo, baseGenConfig, logger)
	logger.Info("Use cases initialized")

	// Setup API handlers
	askHandler := askapi.NewHandler(answerUC, export.NewFactory())
	logger.Info("API handlers initialized")

	// Setup router
	router := api.SetupRouter(askHandler, logger)
	logger.Info("HTTP router configured")

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		db:     db,
		logger: logger,
	}, nil
}
