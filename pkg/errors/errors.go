package errors

import "errors"

var (
	// Request errors
	ErrMissingInput       = errors.New("missing 'input' in request")
	ErrInvalidInputType   = errors.New("invalid input type")
	ErrInvalidRequestBody = errors.New("invalid request body")

	// Backend errors
	ErrBackendUnavailable = errors.New("embedding backend unavailable")
	ErrBackendStatus      = errors.New("embedding backend returned non-200 status")
	ErrMissingEmbedding   = errors.New("embedding backend response has no embedding")

	// Tokenizer errors
	ErrTokenizerNotReady = errors.New("tokenizer not initialized")

	// Config errors
	ErrUnknownBackend = errors.New("unknown backend type")
	ErrInvalidConfig  = errors.New("invalid config")
)
