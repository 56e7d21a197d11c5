package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string `env:"SERVER_PORT, default=8080"`
	LogLevel   string `env:"LOG_LEVEL,   default=info"`
	LogPretty  bool   `env:"LOG_PRETTY,  default=false"`

	// MySQLDSN is tried first; MySQLFallbackDSN is used only when the
	// primary credentials are rejected with an access-denied error.
	MySQLDSN         string `env:"MYSQL_DSN,          default=root:@tcp(localhost:3306)/client_data?charset=utf8mb4&parseTime=True&loc=Local"`
	MySQLFallbackDSN string `env:"MYSQL_FALLBACK_DSN, default=usird:usrid@tcp(localhost:3306)/client_data?charset=utf8mb4&parseTime=True&loc=Local"`

	RedisAddr string `env:"REDIS_ADDR, default=localhost:6379"`
	RedisDB   int    `env:"REDIS_DB,   default=0"`
	RedisPass string `env:"REDIS_PASSWORD"`

	SessionSecret string `env:"SESSION_SECRET, default=change-me"`
}

// Load builds Config from the environment.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}
