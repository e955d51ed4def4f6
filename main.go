package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"vidsum/pkg/cli"
	"vidsum/pkg/config"
	"vidsum/pkg/gateway"
	"vidsum/pkg/history"
	"vidsum/pkg/logging"
	"vidsum/pkg/notify"
	"vidsum/pkg/storage"
)

// apiKeyEnv maps each provider to the variable holding its key.
var apiKeyEnv = map[string]string{
	"gemini":    "GEMINI_API_KEY",
	"openai":    "OPENAI_API_KEY",
	"anthropic": "ANTHROPIC_API_KEY",
}

func main() {
	// Load config.yml
	cfg, err := config.LoadConfig("config.yml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Load .env for secrets
	_ = godotenv.Load()

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Development)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	location := cfg.Storage.Path
	if strings.EqualFold(cfg.Storage.Backend, "redis") {
		location = os.Getenv("REDIS_URL")
		if location == "" {
			logger.Fatal("Missing required environment variable: REDIS_URL")
		}
	}

	backend, err := storage.Open(cfg.Storage.Backend, location, logger)
	if err != nil {
		logger.Fatal("failed to open storage", zap.String("backend", cfg.Storage.Backend), zap.Error(err))
	}
	defer backend.Close()
	logger.Debug("storage ready", zap.String("backend", cfg.Storage.Backend))

	notices := notify.NewQueue()
	store := history.NewLocalStore(backend, cfg.Storage.Prefix, logger, notices)

	provider := strings.ToLower(cfg.Gateway.Provider)
	if provider == "" {
		provider = "gemini"
	}

	app := &cli.App{
		Store:   store,
		Notices: notices,
		Logger:  logger,
		Addr:    cfg.Server.Addr,
		NewGateway: func() (gateway.Summarizer, error) {
			envName, ok := apiKeyEnv[provider]
			if !ok {
				return nil, fmt.Errorf("unsupported summarization provider: %s", provider)
			}
			apiKey := os.Getenv(envName)
			if apiKey == "" {
				return nil, fmt.Errorf("missing required environment variable: %s", envName)
			}

			p, err := gateway.NewProvider(provider, apiKey, gateway.Options{
				Model:   cfg.Gateway.Model,
				BaseURL: cfg.Gateway.BaseURL,
				Timeout: time.Duration(cfg.Gateway.TimeoutSeconds) * time.Second,
			})
			if err != nil {
				return nil, err
			}
			logger.Info("summarization provider ready", zap.String("provider", p.Name()))
			return gateway.New(p, logger), nil
		},
	}

	if err := cli.Execute(app, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		backend.Close()
		logger.Sync()
		os.Exit(1)
	}
}
