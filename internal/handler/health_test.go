package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth_Check(t *testing.T) {
	handler := NewHealth("development")

	result := sendTestRequest(http.MethodGet, nil, handler.Check)
	assert.Equal(t, http.StatusOK, result.StatusCode)

	resp := struct {
		Status      string `json:"status"`
		Environment string `json:"environment"`
		Timestamp   string `json:"timestamp"`
	}{}
	require.NoError(t, json.NewDecoder(result.Body).Decode(&resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "development", resp.Environment)
	_, err := time.Parse(time.RFC3339, resp.Timestamp)
	assert.NoError(t, err, "timestamp is RFC3339")
	require.NoError(t, result.Body.Close())
}
