package server

const (
	msgMissingInput = "Missing 'input' in request"
	msgInvalidInput = "Invalid input type. Expected string, array of integers, or array of strings/arrays."
	msgInvalidBody  = "Invalid request body"
	msgNotFound     = "Not found"
	msgInternal     = "An unexpected error occurred"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}
