package config

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,     default=3000"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// APIBaseURL is the origin of the time-tracking API every call is
	// proxied to.
	APIBaseURL string        `env:"API_BASE_URL, default=http://localhost:4000"`
	APITimeout time.Duration `env:"API_TIMEOUT,  default=8s"`

	// SessionDBPath is the sqlite file holding browser sessions.
	SessionDBPath string `env:"SESSION_DB_PATH, default=./sessions.db"`
}

// Load reads configuration from environment variables.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
