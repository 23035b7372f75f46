package provider

import (
	"context"
	"fmt"

	"embedproxy/internal/config"
	"embedproxy/internal/embedding"
	perrors "embedproxy/pkg/errors"

	"go.uber.org/zap"
)

// New builds the provider selected by conf.Type.
func New(ctx context.Context, conf config.BackendConfig, log *zap.SugaredLogger) (embedding.EmbeddingProvider, error) {
	switch conf.Type {
	case config.BackendOllama:
		return NewOllamaEmbeddingProvider(conf.URL, conf.Model, conf.Timeout, log), nil
	case config.BackendOpenAI:
		return NewOpenAIEmbeddingProvider(conf.URL, conf.APIKey, conf.Model, conf.Timeout, log), nil
	case config.BackendGemini:
		return NewGeminiEmbeddingProvider(ctx, conf.APIKey, conf.URL, conf.Model, conf.Timeout, log)
	default:
		return nil, fmt.Errorf("%w: %q", perrors.ErrUnknownBackend, conf.Type)
	}
}
