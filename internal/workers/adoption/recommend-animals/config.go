// internal/workers/adoption/recommend-animals/config.go
package recommendanimals

import (
	"time"

	"adoption-workers/internal/common/config"
)

type Config struct {
	Timeout       time.Duration
	DefaultLimit  int
	MaxLimit      int
	CandidatePool int
}

func LoadConfig(cfg *config.Config) *Config {
	c := &Config{
		Timeout:       config.GetDuration(config.GetWorkerConfig(cfg, TaskType).Timeout),
		DefaultLimit:  cfg.Recommendation.DefaultLimit,
		MaxLimit:      cfg.Recommendation.MaxLimit,
		CandidatePool: cfg.Recommendation.CandidatePool,
	}
	if c.Timeout <= 0 {
		c.Timeout = 15 * time.Second
	}
	return c
}

// limit resolves the requested page size against the configured bounds.
func (c *Config) limit(requested int) int {
	if requested <= 0 {
		return c.DefaultLimit
	}
	if c.MaxLimit > 0 && requested > c.MaxLimit {
		return c.MaxLimit
	}
	return requested
}
