package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"extrato"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"extrato"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Auth struct {
		JWTSecret string        `envconfig:"JWT_SECRET"`
		TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"24h"`

		// BootstrapUserID, when set, makes the API log a fresh token for
		// that user at startup. There is no user registry; identities are
		// provisioned out of band.
		BootstrapUserID string `envconfig:"BOOTSTRAP_USER_ID"`
	}

	TUI struct {
		// WorkspaceID selects the workspace the TUI operates on. The TUI
		// talks to the database directly and skips the API's auth layer.
		WorkspaceID int64 `envconfig:"WORKSPACE_ID" default:"1"`
	}

	Category struct {
		// PatternCacheTTL bounds how stale a cached pattern set can get
		// between explicit invalidations.
		PatternCacheTTL time.Duration `envconfig:"PATTERN_CACHE_TTL" default:"5s"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
