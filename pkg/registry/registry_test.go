package registry

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRegistry(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "activity-registry.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadRegistry(t *testing.T) {
	path := writeRegistry(t, `{
		"version": "1.0.0",
		"activities": [
			{"id": "adoption.match.score", "taskType": "calculate-compatibility-score",
			 "implementationStatus": "implemented", "timeout": "10s", "retries": 3,
			 "inputSchema": {"type": "object", "required": ["adopterId"]}},
			{"id": "adoption.match.rank", "taskType": "rank-interested-adopters",
			 "implementationStatus": "planned"}
		]
	}`)

	reg, err := LoadRegistry(path)
	require.NoError(t, err)

	assert.Equal(t, "1.0.0", reg.Version)
	require.Len(t, reg.Activities, 2)

	a, ok := reg.ByTaskType("calculate-compatibility-score")
	require.True(t, ok)
	assert.Equal(t, 3, a.Retries)
	assert.Equal(t, 10*time.Second, a.TimeoutDuration(time.Minute))
	assert.Equal(t, "object", a.InputSchema["type"])

	_, ok = reg.ByTaskType("missing")
	assert.False(t, ok)

	impl := reg.Implemented()
	require.Len(t, impl, 1)
	assert.Equal(t, "adoption.match.score", impl[0].ID)
}

func TestLoadRegistry_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed", body: `{"activities": [`},
		{name: "missing task type", body: `{"activities": [{"id": "x"}]}`},
		{name: "duplicate task type", body: `{"activities": [{"taskType": "a"}, {"taskType": "a"}]}`},
		{name: "bad timeout", body: `{"activities": [{"taskType": "a", "timeout": "ten seconds"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadRegistry(writeRegistry(t, tt.body))
			assert.Error(t, err)
		})
	}

	_, err := LoadRegistry(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestActivity_TimeoutDurationFallback(t *testing.T) {
	assert.Equal(t, 5*time.Second, Activity{}.TimeoutDuration(5*time.Second))
	assert.Equal(t, 5*time.Second, Activity{Timeout: "bogus"}.TimeoutDuration(5*time.Second))
}
