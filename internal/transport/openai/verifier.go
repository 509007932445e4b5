// Package openai verifies provider API keys against the OpenAI-compatible API.
package openai

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/vantaworks/vectoradmin/internal/domain"
	"github.com/vantaworks/vectoradmin/internal/domain/schema"
)

// Verifier probes API keys before a collection is bound to a provider.
// Only OpenAI-compatible vectorizers are probed; keys for other providers
// pass through unverified.
type Verifier struct {
	baseURL string
	logger  *zap.Logger
}

// Config holds the verifier settings.
type Config struct {
	BaseURL string
	Logger  *zap.Logger
}

// NewVerifier creates a key verifier. BaseURL is optional and defaults to
// the public OpenAI endpoint.
func NewVerifier(cfg *Config) *Verifier {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Verifier{baseURL: cfg.BaseURL, logger: logger}
}

// Verify probes the key with a models listing, the cheapest authenticated
// endpoint. Vectorizers without an OpenAI-compatible API are accepted as-is.
func (v *Verifier) Verify(ctx context.Context, vectorizer schema.Vectorizer, key string) error {
	if vectorizer != schema.Text2VecOpenAI {
		return nil
	}

	clientCfg := openai.DefaultConfig(key)
	if v.baseURL != "" {
		clientCfg.BaseURL = v.baseURL
	}
	client := openai.NewClientWithConfig(clientCfg)

	if _, err := client.ListModels(ctx); err != nil {
		v.logger.Warn("api key verification failed",
			zap.String("vectorizer", vectorizer.ModuleToken()),
			zap.Error(err))
		return parseAPIError(vectorizer, err)
	}
	return nil
}

// parseAPIError maps provider responses onto domain sentinels: an explicit
// auth rejection means the key is unusable, everything else is transport.
func parseAPIError(vectorizer schema.Vectorizer, err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.HTTPStatusCode == 401 || apiErr.HTTPStatusCode == 403 {
			return fmt.Errorf("provider rejected key: %s: %w", apiErr.Message,
				domain.NewMissingCredential(vectorizer.ModuleToken(), vectorizer.RequiredCredential()))
		}
		return fmt.Errorf("provider API error %d: %s: %w",
			apiErr.HTTPStatusCode, apiErr.Message, domain.ErrTransport)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if reqErr.HTTPStatusCode == 401 || reqErr.HTTPStatusCode == 403 {
			return fmt.Errorf("provider rejected key: %w",
				domain.NewMissingCredential(vectorizer.ModuleToken(), vectorizer.RequiredCredential()))
		}
		return fmt.Errorf("provider API error %d: %w",
			reqErr.HTTPStatusCode, domain.ErrTransport)
	}

	return fmt.Errorf("key verification failed: %w", domain.ErrTransport)
}
