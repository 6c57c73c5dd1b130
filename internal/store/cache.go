package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"adoption-workers/internal/common/logger"
	"adoption-workers/internal/common/metrics"
	"adoption-workers/internal/models"

	"github.com/redis/go-redis/v9"
)

const profileCachePrefix = "adopter:profile:"

// ProfileSource loads adopter profiles from the system of record.
type ProfileSource interface {
	GetAdopterProfile(ctx context.Context, adopterID string) (*models.AdopterProfile, error)
}

// CachedProfiles is a read-through Redis cache in front of a ProfileSource.
// Redis failures degrade to the source and are never returned.
type CachedProfiles struct {
	source ProfileSource
	redis  redis.Cmdable
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedProfiles(source ProfileSource, rdb redis.Cmdable, ttl time.Duration, log logger.Logger) *CachedProfiles {
	return &CachedProfiles{
		source: source,
		redis:  rdb,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "profile-cache"}),
	}
}

func profileCacheKey(adopterID string) string {
	return profileCachePrefix + adopterID
}

func (c *CachedProfiles) GetAdopterProfile(ctx context.Context, adopterID string) (*models.AdopterProfile, error) {
	key := profileCacheKey(adopterID)

	val, err := c.redis.Get(ctx, key).Result()
	switch {
	case err == nil:
		var profile models.AdopterProfile
		if jsonErr := json.Unmarshal([]byte(val), &profile); jsonErr == nil {
			metrics.ProfileCacheLookups.WithLabelValues("hit").Inc()
			return &profile, nil
		}
		c.logger.Warn("discarding corrupt cached profile", map[string]interface{}{"adopterId": adopterID})
		metrics.ProfileCacheLookups.WithLabelValues("error").Inc()
	case errors.Is(err, redis.Nil):
		metrics.ProfileCacheLookups.WithLabelValues("miss").Inc()
	default:
		c.logger.Warn("profile cache read failed", map[string]interface{}{
			"adopterId": adopterID,
			"error":     err,
		})
		metrics.ProfileCacheLookups.WithLabelValues("error").Inc()
	}

	profile, err := c.source.GetAdopterProfile(ctx, adopterID)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(profile)
	if err != nil {
		return profile, nil
	}
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("profile cache write failed", map[string]interface{}{
			"adopterId": adopterID,
			"error":     err,
		})
	}
	return profile, nil
}

// Invalidate drops the cached profile after the adopter edits it.
func (c *CachedProfiles) Invalidate(ctx context.Context, adopterID string) error {
	return c.redis.Del(ctx, profileCacheKey(adopterID)).Err()
}
