package provider

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"embedproxy/internal/embedding"
	perrors "embedproxy/pkg/errors"

	"go.uber.org/zap"
)

// OpenAIEmbeddingProvider talks to any OpenAI-compatible /v1/embeddings
// endpoint (vLLM, LocalAI, DashScope compatible mode, ...).
type OpenAIEmbeddingProvider struct {
	apiKey string
	apiURL string
	model  string
	client *http.Client
	log    *zap.SugaredLogger
}

func NewOpenAIEmbeddingProvider(apiURL, apiKey, model string, timeout time.Duration, log *zap.SugaredLogger) embedding.EmbeddingProvider {
	return &OpenAIEmbeddingProvider{
		apiKey: apiKey,
		apiURL: apiURL,
		model:  model,
		client: &http.Client{Timeout: timeout},
		log:    log.With("backend", "openai", "model", model),
	}
}

func (e *OpenAIEmbeddingProvider) buildRequest(input string) *OpenAIEmbeddingRequest {
	return &OpenAIEmbeddingRequest{
		Model:          e.model,
		Input:          input,
		EncodingFormat: "float",
	}
}

func (e *OpenAIEmbeddingProvider) Embed(ctx context.Context, text string) ([]float64, error) {
	headers := map[string]string{}
	if e.apiKey != "" {
		headers["Authorization"] = fmt.Sprintf("Bearer %s", e.apiKey)
	}

	var resp OpenAIEmbeddingResponse
	if err := postJSON(ctx, e.client, e.log, e.apiURL, headers, e.buildRequest(text), &resp); err != nil {
		return nil, err
	}

	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, perrors.ErrMissingEmbedding
	}
	return resp.Data[0].Embedding, nil
}
