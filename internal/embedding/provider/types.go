package provider

// OllamaEmbeddingRequest is the body of POST /api/embeddings.
type OllamaEmbeddingRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

// OllamaEmbeddingResponse keeps only the field the proxy forwards.
type OllamaEmbeddingResponse struct {
	Embedding []float64 `json:"embedding"`
}

type OpenAIEmbeddingRequest struct {
	Model          string `json:"model"`
	Input          string `json:"input"`
	EncodingFormat string `json:"encoding_format,omitempty"`
}

type OpenAIEmbeddingResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
}
