package handler

import (
	"net/http"
	"time"
)

type Health struct {
	environment string
}

func NewHealth(environment string) *Health {
	return &Health{environment: environment}
}

func (h *Health) Check(w http.ResponseWriter, _ *http.Request) {
	responseAsJSON(w, struct {
		Status      string `json:"status"`
		Environment string `json:"environment"`
		Timestamp   string `json:"timestamp"`
	}{
		Status:      "ok",
		Environment: h.environment,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}
