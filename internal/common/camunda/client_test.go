package camunda

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"adoption-workers/internal/common/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(maxRetries int) *Client {
	return &Client{config: &ClientConfig{
		ConnectionTimeout: time.Second,
		RetryConfig: &RetryConfig{
			MaxRetries: maxRetries,
			BaseDelay:  time.Millisecond,
			MaxDelay:   2 * time.Millisecond,
		},
	}}
}

func TestExecuteWithRetry_RecoversFromTransientErrors(t *testing.T) {
	c := newTestClient(3)
	calls := 0

	err := c.ExecuteWithRetry(context.Background(), func(context.Context) error {
		calls++
		if calls < 3 {
			return stderrors.New("rpc error: code = Unavailable desc = connection refused")
		}
		return nil
	}, "complete job")

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestExecuteWithRetry_GivesUp(t *testing.T) {
	c := newTestClient(2)
	calls := 0

	err := c.ExecuteWithRetry(context.Background(), func(context.Context) error {
		calls++
		return stderrors.New("context deadline exceeded")
	}, "topology")

	require.Error(t, err)
	assert.Equal(t, 3, calls)
	stdErr, ok := errors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeEngineTimeout, stdErr.Code)
	assert.Contains(t, stdErr.Details, "after 2 retries")
}

func TestExecuteWithRetry_NonRetryableFailsFast(t *testing.T) {
	c := newTestClient(5)
	calls := 0

	err := c.ExecuteWithRetry(context.Background(), func(context.Context) error {
		calls++
		return stderrors.New("job with key 42 not found")
	}, "fail job")

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	stdErr, ok := errors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeInternal, stdErr.Code)
}

func TestExecuteWithRetry_ContextCancelled(t *testing.T) {
	c := newTestClient(5)
	c.config.RetryConfig.BaseDelay = time.Hour
	c.config.RetryConfig.MaxDelay = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.ExecuteWithRetry(ctx, func(context.Context) error {
		return stderrors.New("connection reset by peer")
	}, "activate")

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMapZeebeError(t *testing.T) {
	unavailable, _ := errors.AsStandardError(mapZeebeError(stderrors.New("rpc error: Unavailable"), "op", 0))
	assert.Equal(t, errors.ErrCodeEngineUnavailable, unavailable.Code)
	assert.True(t, unavailable.Retryable)

	timeout, _ := errors.AsStandardError(mapZeebeError(stderrors.New("i/o timeout"), "op", 0))
	assert.Equal(t, errors.ErrCodeEngineTimeout, timeout.Code)

	assert.True(t, isRetryableZeebeError(stderrors.New("RESOURCE_EXHAUSTED: backpressure")))
	assert.False(t, isRetryableZeebeError(stderrors.New("invalid argument")))
}
