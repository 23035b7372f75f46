package gateway

import (
	"context"
	"fmt"

	"embedproxy/internal/embedding"
	"embedproxy/pkg/logger"

	"github.com/twmb/murmur3"
	"go.uber.org/zap"
)

const (
	objectList      = "list"
	objectEmbedding = "embedding"
)

// Tokenizer decodes token-id inputs and measures prompt size.
type Tokenizer interface {
	Decode(ids []int) (string, error)
	Count(text string) (int, error)
}

// Gateway translates OpenAI embedding requests into per-text backend calls.
type Gateway struct {
	provider  embedding.EmbeddingProvider
	tokenizer Tokenizer
	model     string
	log       *zap.SugaredLogger
}

// New creates a gateway that advertises model in its responses.
func New(provider embedding.EmbeddingProvider, tokenizer Tokenizer, model string, log *zap.SugaredLogger) *Gateway {
	return &Gateway{
		provider:  provider,
		tokenizer: tokenizer,
		model:     model,
		log:       log,
	}
}

// CreateEmbeddings embeds every input unit in order, one backend call at a
// time. A unit whose backend call fails is logged and left out; the indices
// of the remaining entries are their positions in the returned data.
// Validation and decoding finish before the first backend call.
func (g *Gateway) CreateEmbeddings(ctx context.Context, req *EmbeddingRequest) (*EmbeddingResponse, error) {
	log := logger.FromContext(ctx, g.log)

	units, err := ParseInput(req.Input)
	if err != nil {
		log.Errorw("rejecting request input", "error", err)
		return nil, err
	}
	log.Infow("request received", "units", len(units), "requested_model", req.Model)

	texts, promptTokens, err := g.resolve(units)
	if err != nil {
		return nil, err
	}

	data := make([]EmbeddingData, 0, len(units))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		log.Infow("backend call dispatched", "unit", i, "prompt_len", len(text), "prompt_hash", murmur3.Sum32([]byte(text)))
		log.Debugw("backend prompt", "unit", i, "prompt", text)

		vec, err := g.provider.Embed(ctx, text)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			log.Errorw("dropping unit after backend failure", "unit", i, "error", err)
			continue
		}

		data = append(data, EmbeddingData{
			Object:    objectEmbedding,
			Embedding: vec,
			Index:     len(data),
		})
	}

	log.Infow("response assembled",
		"units", len(units),
		"embedded", len(data),
		"dropped", len(units)-len(data),
		"prompt_tokens", promptTokens,
	)

	return &EmbeddingResponse{
		Object: objectList,
		Data:   data,
		Model:  g.model,
		Usage: Usage{
			PromptTokens: promptTokens,
			TotalTokens:  promptTokens,
		},
	}, nil
}

// resolve turns units into backend prompts and totals their token counts.
// Token-id units count as supplied; text units are encoded to be counted.
func (g *Gateway) resolve(units []TextUnit) ([]string, int, error) {
	texts := make([]string, len(units))
	tokens := 0
	for i, u := range units {
		if u.Tokenized() {
			text, err := g.tokenizer.Decode(u.Tokens)
			if err != nil {
				return nil, 0, fmt.Errorf("decode unit %d: %w", i, err)
			}
			texts[i] = text
			tokens += len(u.Tokens)
			continue
		}

		n, err := g.tokenizer.Count(u.Text)
		if err != nil {
			return nil, 0, fmt.Errorf("count unit %d: %w", i, err)
		}
		texts[i] = u.Text
		tokens += n
	}
	return texts, tokens, nil
}
