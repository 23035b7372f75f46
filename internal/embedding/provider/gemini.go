package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"embedproxy/internal/embedding"
	perrors "embedproxy/pkg/errors"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// GeminiEmbeddingProvider embeds through the Gemini API.
type GeminiEmbeddingProvider struct {
	client *genai.Client
	model  string
	log    *zap.SugaredLogger
}

// NewGeminiEmbeddingProvider falls back to GEMINI_API_KEY and GOOGLE_API_KEY
// when apiKey is empty. baseURL is optional.
func NewGeminiEmbeddingProvider(ctx context.Context, apiKey, baseURL, model string, timeout time.Duration, log *zap.SugaredLogger) (embedding.EmbeddingProvider, error) {
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		apiKey = os.Getenv("GOOGLE_API_KEY")
	}
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY not found")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  &http.Client{Timeout: timeout},
		HTTPOptions: genai.HTTPOptions{BaseURL: baseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &GeminiEmbeddingProvider{
		client: client,
		model:  model,
		log:    log.With("backend", "gemini", "model", model),
	}, nil
}

func (e *GeminiEmbeddingProvider) Embed(ctx context.Context, text string) ([]float64, error) {
	result, err := e.client.Models.EmbedContent(ctx, e.model, genai.Text(text), nil)
	if err != nil {
		e.log.Errorw("error communicating with gemini", "error", err)
		return nil, fmt.Errorf("%w: %v", perrors.ErrBackendUnavailable, err)
	}

	if len(result.Embeddings) == 0 || result.Embeddings[0] == nil || len(result.Embeddings[0].Values) == 0 {
		return nil, perrors.ErrMissingEmbedding
	}
	return toFloat64(result.Embeddings[0].Values), nil
}

func toFloat64(values []float32) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out
}
