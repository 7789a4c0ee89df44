package dto

// ErrorResponse carries a machine-readable error string.
type ErrorResponse struct {
	Error string `json:"error"`
}
