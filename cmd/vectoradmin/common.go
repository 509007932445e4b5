package main

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vantaworks/vectoradmin/internal/config"
	"github.com/vantaworks/vectoradmin/internal/db/weaviate"
	"github.com/vantaworks/vectoradmin/internal/domain/schema"
	logpkg "github.com/vantaworks/vectoradmin/internal/logger"
)

// app bundles the pieces every subcommand needs: config, logger and a
// connected cluster store.
type app struct {
	cfg    config.Config
	logger *zap.Logger
	store  *weaviate.Store
}

func newApp() (*app, error) {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	store, err := weaviate.NewStore(weaviate.Config{
		Endpoint:     cfg.Cluster.Endpoint(),
		APIKey:       cfg.Cluster.APIKey,
		ExtraHeaders: providerHeaders(cfg.Keys),
		Timeout:      time.Duration(cfg.Cluster.TimeoutSec) * time.Second,
	})
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("create cluster store: %w", err)
	}

	return &app{cfg: cfg, logger: logger, store: store}, nil
}

func (a *app) close() {
	a.store.Close()
	_ = a.logger.Sync()
}

// providerHeaders maps configured provider keys onto the request headers the
// cluster's vectorizer modules read.
func providerHeaders(keys config.ProviderKeys) map[string]string {
	return map[string]string{
		"X-Openai-Api-Key":      keys.OpenAI,
		"X-Cohere-Api-Key":      keys.Cohere,
		"X-Jinaai-Api-Key":      keys.JinaAI,
		"X-Huggingface-Api-Key": keys.HuggingFace,
	}
}

// providerKeys maps configured provider keys onto vectorizers for the
// credential check on collection creation.
func providerKeys(keys config.ProviderKeys) map[schema.Vectorizer]string {
	return map[schema.Vectorizer]string{
		schema.Text2VecOpenAI:      keys.OpenAI,
		schema.Text2VecCohere:      keys.Cohere,
		schema.Text2VecJinaAI:      keys.JinaAI,
		schema.Text2VecHuggingFace: keys.HuggingFace,
	}
}
