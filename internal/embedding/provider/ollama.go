package provider

import (
	"context"
	"net/http"
	"time"

	"embedproxy/internal/embedding"
	perrors "embedproxy/pkg/errors"

	"go.uber.org/zap"
)

type OllamaEmbeddingProvider struct {
	apiURL string
	model  string
	client *http.Client
	log    *zap.SugaredLogger
}

func NewOllamaEmbeddingProvider(apiURL, model string, timeout time.Duration, log *zap.SugaredLogger) embedding.EmbeddingProvider {
	return &OllamaEmbeddingProvider{
		apiURL: apiURL,
		model:  model,
		client: &http.Client{Timeout: timeout},
		log:    log.With("backend", "ollama", "model", model),
	}
}

func (e *OllamaEmbeddingProvider) Embed(ctx context.Context, text string) ([]float64, error) {
	req := &OllamaEmbeddingRequest{
		Model:  e.model,
		Prompt: text,
	}

	var resp OllamaEmbeddingResponse
	if err := postJSON(ctx, e.client, e.log, e.apiURL, nil, req, &resp); err != nil {
		return nil, err
	}

	// Ollama answers an empty prompt with an empty vector.
	if len(resp.Embedding) == 0 {
		return nil, perrors.ErrMissingEmbedding
	}
	return resp.Embedding, nil
}
