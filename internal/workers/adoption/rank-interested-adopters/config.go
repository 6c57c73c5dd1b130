// internal/workers/adoption/rank-interested-adopters/config.go
package rankinterestedadopters

import (
	"time"

	"adoption-workers/internal/common/config"
	"adoption-workers/internal/ranking"
)

type Config struct {
	Timeout            time.Duration
	MaxConcurrentLoads int
	Weights            ranking.Weights
}

func LoadConfig(cfg *config.Config) *Config {
	c := &Config{
		Timeout:            config.GetDuration(config.GetWorkerConfig(cfg, TaskType).Timeout),
		MaxConcurrentLoads: cfg.Ranking.MaxConcurrentLoads,
		Weights: ranking.Weights{
			Match:        cfg.Ranking.MatchWeight,
			Completeness: cfg.Ranking.CompletenessWeight,
			Conversation: cfg.Ranking.ConversationWeight,
		},
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.MaxConcurrentLoads <= 0 {
		c.MaxConcurrentLoads = 8
	}
	return c
}
