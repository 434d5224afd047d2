package fake_backend

import (
	"encoding/json"
	"github.com/Avi18971911/softscanner-admin/internal/backend/model"
	"github.com/sirupsen/logrus"
	"net/http"
)

func httpError(w http.ResponseWriter, message string, statusCode int, logger *logrus.Logger) {
	writeJSON(w, statusCode, model.APIError{Status: statusCode, Message: message}, logger)
}

func writeJSON(w http.ResponseWriter, statusCode int, body interface{}, logger *logrus.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Errorf("Failed to encode response: %v", err)
	}
}
