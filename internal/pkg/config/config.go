// Package config loads runtime configuration from environment variables.
package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth    AuthConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	Sethwan SethwanConfig
}

type AuthConfig struct {
	JWTSecret        string        `env:"JWT_SECRET,         default=dnexpress-dev-secret"`
	JWTRefreshSecret string        `env:"JWT_REFRESH_SECRET, default=dnexpress-dev-refresh-secret"`
	AccessTokenTTL   time.Duration `env:"ACCESS_TOKEN_TTL,   default=24h"`
	RefreshTokenTTL  time.Duration `env:"REFRESH_TOKEN_TTL,  default=168h"`
	BcryptCost       int           `env:"BCRYPT_COST,        default=10"`
}

// MongoConfig points at the optional snapshot persistence backend. Leave URI
// empty to run fully in-memory.
type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DB, default=dnexpress"`
}

// RedisConfig points at the optional status-notification broker. Leave Addr
// empty to log notifications instead of publishing them.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

type SethwanConfig struct {
	APIURL string `env:"SETHWAN_API_URL, default=https://api.sethwan.com/v1"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

// Production reports whether the service runs with the production profile.
func (c *Config) Production() bool {
	return c.Env == "production"
}
