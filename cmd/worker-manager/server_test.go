package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"adoption-workers/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_Health(t *testing.T) {
	srv := httptest.NewServer(newServerMux(nil))
	t.Cleanup(srv.Close)

	res, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestServer_Ready(t *testing.T) {
	tests := []struct {
		name       string
		checks     map[string]readinessCheck
		wantStatus int
		wantBody   string
	}{
		{
			name: "all dependencies up",
			checks: map[string]readinessCheck{
				"postgres": func(context.Context) error { return nil },
				"redis":    func(context.Context) error { return nil },
			},
			wantStatus: http.StatusOK,
			wantBody:   "ready",
		},
		{
			name: "one dependency down",
			checks: map[string]readinessCheck{
				"postgres": func(context.Context) error { return nil },
				"redis":    func(context.Context) error { return errors.New("connection refused") },
			},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   "not_ready",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(newServerMux(tt.checks))
			t.Cleanup(srv.Close)

			res, err := http.Get(srv.URL + "/ready")
			require.NoError(t, err)
			defer res.Body.Close()

			var body struct {
				Status string            `json:"status"`
				Checks map[string]string `json:"checks"`
			}
			require.NoError(t, json.NewDecoder(res.Body).Decode(&body))

			assert.Equal(t, tt.wantStatus, res.StatusCode)
			assert.Equal(t, tt.wantBody, body.Status)
			assert.Len(t, body.Checks, len(tt.checks))
		})
	}
}

func TestServer_Metrics(t *testing.T) {
	srv := httptest.NewServer(newServerMux(nil))
	t.Cleanup(srv.Close)

	res, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestRetryWithBackoff(t *testing.T) {
	attempts := 0
	err := retryWithBackoff(func() error {
		attempts++
		if attempts < 3 {
			return errors.New("not yet")
		}
		return nil
	}, 5, time.Millisecond, logger.NewTestLogger(t), "flaky dependency")

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)

	err = retryWithBackoff(func() error { return errors.New("down") }, 2, time.Millisecond, logger.NewTestLogger(t), "dead dependency")
	assert.ErrorContains(t, err, "dead dependency failed after 2 attempts")
}

func TestLoadSchemas(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activity-registry.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"version": "1.0.0",
		"activities": [
			{"id": "adoption.ranking.rank", "taskType": "rank-interested-adopters", "implementationStatus": "implemented",
			 "inputSchema": {"type": "object", "required": ["animalId"]}}
		]
	}`), 0o644))

	v := loadSchemas(path, logger.NewTestLogger(t))
	assert.True(t, v.Has("rank-interested-adopters"))

	missing := loadSchemas(filepath.Join(t.TempDir(), "missing.json"), logger.NewTestLogger(t))
	assert.False(t, missing.Has("rank-interested-adopters"))
}

func TestLoadSchemas_ShippedRegistry(t *testing.T) {
	v := loadSchemas(filepath.Join("..", "..", "configs", "activity-registry.json"), logger.NewTestLogger(t))

	for _, taskType := range []string{"calculate-compatibility-score", "rank-interested-adopters", "recommend-animals"} {
		assert.True(t, v.Has(taskType), taskType)
	}

	result, err := v.ValidateJSON("calculate-compatibility-score", `{"animalId":"animal-1"}`)
	require.NoError(t, err)
	assert.False(t, result.Valid)

	result, err = v.ValidateJSON("recommend-animals", `{"adopterId":"adopter-1","species":"PARROT"}`)
	require.NoError(t, err)
	assert.False(t, result.Valid)
}
