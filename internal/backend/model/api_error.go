package model

// APIError is the error body returned by the backend.
type APIError struct {
	Status  int      `json:"status"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}
