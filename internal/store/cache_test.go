package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"adoption-workers/internal/common/logger"
	"adoption-workers/internal/common/metrics"
	"adoption-workers/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	mu       sync.Mutex
	calls    int
	profiles map[string]*models.AdopterProfile
	err      error
}

func (f *fakeSource) GetAdopterProfile(_ context.Context, adopterID string) (*models.AdopterProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.profiles[adopterID]
	if !ok {
		return nil, ErrAdopterNotFound
	}
	return p, nil
}

func setupMiniredis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return mr, rdb
}

func TestCachedProfiles_ReadThrough(t *testing.T) {
	mr, rdb := setupMiniredis(t)
	source := &fakeSource{profiles: map[string]*models.AdopterProfile{
		"adopter-1": {HousingType: models.Ptr(models.HousingHouse), HasYard: models.Ptr(true)},
	}}
	cache := NewCachedProfiles(source, rdb, 10*time.Minute, logger.NewTestLogger(t))

	misses := testutil.ToFloat64(metrics.ProfileCacheLookups.WithLabelValues("miss"))
	hits := testutil.ToFloat64(metrics.ProfileCacheLookups.WithLabelValues("hit"))

	first, err := cache.GetAdopterProfile(context.Background(), "adopter-1")
	require.NoError(t, err)
	second, err := cache.GetAdopterProfile(context.Background(), "adopter-1")
	require.NoError(t, err)

	assert.Equal(t, 1, source.calls)
	assert.Equal(t, first, second)
	assert.True(t, mr.Exists("adopter:profile:adopter-1"))
	assert.Equal(t, 10*time.Minute, mr.TTL("adopter:profile:adopter-1"))
	assert.Equal(t, misses+1, testutil.ToFloat64(metrics.ProfileCacheLookups.WithLabelValues("miss")))
	assert.Equal(t, hits+1, testutil.ToFloat64(metrics.ProfileCacheLookups.WithLabelValues("hit")))
}

func TestCachedProfiles_NotFoundIsNotCached(t *testing.T) {
	mr, rdb := setupMiniredis(t)
	source := &fakeSource{}
	cache := NewCachedProfiles(source, rdb, time.Minute, logger.NewTestLogger(t))

	_, err := cache.GetAdopterProfile(context.Background(), "ghost")

	assert.ErrorIs(t, err, ErrAdopterNotFound)
	assert.False(t, mr.Exists("adopter:profile:ghost"))
}

func TestCachedProfiles_CorruptEntryFallsBack(t *testing.T) {
	mr, rdb := setupMiniredis(t)
	require.NoError(t, mr.Set("adopter:profile:adopter-1", "{not json"))
	source := &fakeSource{profiles: map[string]*models.AdopterProfile{
		"adopter-1": {HasChildren: models.Ptr(false)},
	}}
	cache := NewCachedProfiles(source, rdb, time.Minute, logger.NewTestLogger(t))

	p, err := cache.GetAdopterProfile(context.Background(), "adopter-1")

	require.NoError(t, err)
	require.NotNil(t, p.HasChildren)
	assert.Equal(t, 1, source.calls)
}

func TestCachedProfiles_RedisDown(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	profile := &models.AdopterProfile{WalkFrequency: models.Ptr(models.WalkDaily)}
	source := &fakeSource{profiles: map[string]*models.AdopterProfile{"adopter-1": profile}}
	cache := NewCachedProfiles(source, rdb, time.Minute, logger.NewTestLogger(t))

	data, err := json.Marshal(profile)
	require.NoError(t, err)
	mock.ExpectGet("adopter:profile:adopter-1").SetErr(errors.New("connection refused"))
	mock.ExpectSet("adopter:profile:adopter-1", data, time.Minute).SetErr(errors.New("connection refused"))

	got, err := cache.GetAdopterProfile(context.Background(), "adopter-1")

	require.NoError(t, err)
	assert.Same(t, profile, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachedProfiles_SourceErrorPropagates(t *testing.T) {
	_, rdb := setupMiniredis(t)
	source := &fakeSource{err: errors.New("db down")}
	cache := NewCachedProfiles(source, rdb, time.Minute, logger.NewTestLogger(t))

	_, err := cache.GetAdopterProfile(context.Background(), "adopter-1")

	assert.EqualError(t, err, "db down")
}

func TestCachedProfiles_Invalidate(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	cache := NewCachedProfiles(&fakeSource{}, rdb, time.Minute, logger.NewTestLogger(t))

	mock.ExpectDel("adopter:profile:adopter-1").SetVal(1)

	require.NoError(t, cache.Invalidate(context.Background(), "adopter-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
