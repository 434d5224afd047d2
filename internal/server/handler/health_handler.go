package handler

import (
	"encoding/json"
	"go.uber.org/zap"
	"net/http"
)

type healthResponse struct {
	Status string `json:"status"`
}

func HealthHandler(logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(healthResponse{Status: "ok"}); err != nil {
			logger.Error("Error encountered when encoding health response", zap.Error(err))
		}
	}
}
