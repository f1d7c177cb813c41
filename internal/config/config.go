// Package config provides application configuration.
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all settings for the chat service. Values come from the
// environment with the CHAT_ prefix, e.g. CHAT_DB_URL.
type Config struct {
	Addr             string `envconfig:"ADDR" default:":8080"`
	DatabaseURL      string `envconfig:"DB_URL" required:"true"`
	RedisURL         string `envconfig:"REDIS_URL" required:"true"`
	JWTSecret        string `envconfig:"JWT_SECRET" required:"true"`
	QueueConcurrency int    `envconfig:"QUEUE_CONCURRENCY" default:"10"`
	QueueWeights     string `envconfig:"QUEUE_WEIGHTS" default:"default=1,chat=1"`
	HistoryPageSize  int    `envconfig:"HISTORY_PAGE_SIZE" default:"50"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("chat", &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.QueueConcurrency <= 0 {
		return nil, fmt.Errorf("config: CHAT_QUEUE_CONCURRENCY must be > 0")
	}
	if cfg.HistoryPageSize <= 0 {
		return nil, fmt.Errorf("config: CHAT_HISTORY_PAGE_SIZE must be > 0")
	}
	return &cfg, nil
}

// Queues parses QueueWeights ("critical=6,default=3") into the weight map
// consumed by the queue server.
func (c *Config) Queues() map[string]int {
	res := make(map[string]int)
	for _, part := range strings.Split(c.QueueWeights, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kv := strings.SplitN(part, "=", 2)
		name := strings.TrimSpace(kv[0])
		if name == "" {
			continue
		}
		w := 1
		if len(kv) == 2 {
			if i, err := strconv.Atoi(strings.TrimSpace(kv[1])); err == nil && i > 0 {
				w = i
			}
		}
		res[name] = w
	}
	if len(res) == 0 {
		res["default"] = 1
	}
	return res
}
