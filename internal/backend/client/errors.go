package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"github.com/Avi18971911/softscanner-admin/internal/backend/model"
	"net/http"
)

var (
	ErrNotFound       = errors.New("resource not found")
	ErrDecodeResponse = errors.New("unable to decode response")
)

// StatusError is returned when the backend answers with a 4xx or 5xx status.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
	Errors     []string
}

func newStatusError(method string, path string, statusCode int, body []byte) *StatusError {
	se := &StatusError{
		Method:     method,
		Path:       path,
		StatusCode: statusCode,
		Message:    http.StatusText(statusCode),
	}
	var apiErr model.APIError
	if len(body) > 0 && json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
		se.Message = apiErr.Message
		se.Errors = apiErr.Errors
	}
	return se
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s returned %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}
