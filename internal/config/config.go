package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	pkgRetry "github.com/ShalunBdk/AI-FAQ-Bot/internal/pkg/retry"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR" envDefault:":8080"`

	// Database configuration
	DatabaseURL         string        `env:"DATABASE_URL,notEmpty"`
	DBMaxConns          int           `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns          int           `env:"DB_MIN_CONNS" envDefault:"5"`
	DBMaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBMaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBHealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`

	// External service configurations
	VectorConnectorCfg VectorConnectorConfig `envPrefix:"VECTOR_"`
	LLMConnectorCfg    LLMConnectorConfig    `envPrefix:"LLM_"`
	MorphConnectorCfg  MorphConnectorConfig  `envPrefix:"MORPH_"`

	// Settings cache configuration
	SettingsCacheTTL time.Duration `env:"SETTINGS_CACHE_TTL" envDefault:"30s"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Environment (set from flag, not from env var)
	Environment string
}

// VectorConnectorConfig configures the similarity service client.
// The service is queried by raw text; an unreachable service only degrades
// the semantic tier, so no retry block is configured here.
type VectorConnectorConfig struct {
	HTTPClientConfig
	QueryEndpoint string `env:"QUERY_ENDPOINT" envDefault:"/query"`
}

// LLMConnectorConfig configures the OpenAI-compatible generation service client.
type LLMConnectorConfig struct {
	HTTPClientConfig
	CompleteEndpoint string               `env:"COMPLETE_ENDPOINT" envDefault:"/chat/completions"`
	Model            string               `env:"MODEL" envDefault:"openai/gpt-4o-mini"`
	Retry            pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

// MorphConnectorConfig configures the morphological (lemmatization) service
// client. The service is optional: with Enabled=false the search tiers run
// on raw lower-cased tokens.
type MorphConnectorConfig struct {
	HTTPClientConfig
	Enabled           bool   `env:"ENABLED" envDefault:"false"`
	LemmatizeEndpoint string `env:"LEMMATIZE_ENDPOINT" envDefault:"/lemmatize"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"30s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"30s"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL"`
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errors []string

	if cfg.DBMaxConns < 1 || cfg.DBMaxConns > 200 {
		errors = append(errors, fmt.Sprintf("DB_MAX_CONNS must be between 1 and 200, got %d", cfg.DBMaxConns))
	}

	if cfg.DBMinConns < 0 || cfg.DBMinConns > cfg.DBMaxConns {
		errors = append(errors, fmt.Sprintf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS(%d), got %d", cfg.DBMaxConns, cfg.DBMinConns))
	}

	// External service URLs are mandatory unless mocks are enabled.
	if !cfg.EnableMocks {
		if cfg.VectorConnectorCfg.Url == "" {
			errors = append(errors, "VECTOR_SERVICE_URL must be set when mocks are disabled")
		}
		if cfg.LLMConnectorCfg.Url == "" {
			errors = append(errors, "LLM_SERVICE_URL must be set when mocks are disabled")
		}
	}
	if cfg.MorphConnectorCfg.Enabled && cfg.MorphConnectorCfg.Url == "" {
		errors = append(errors, "MORPH_SERVICE_URL must be set when MORPH_ENABLED=true")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
