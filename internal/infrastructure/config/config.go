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

	JWT       JWTConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Bootstrap BootstrapConfig
}

type JWTConfig struct {
	Secret     string        `env:"JWT_SECRET"`
	AccessTTL  time.Duration `env:"JWT_ACCESS_TTL,  default=15m"`
	RefreshTTL time.Duration `env:"JWT_REFRESH_TTL, default=168h"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=clinilab_auth"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type RateLimitConfig struct {
	LoginAttempts int           `env:"LOGIN_RATE_LIMIT,  default=10"`
	Window        time.Duration `env:"LOGIN_RATE_WINDOW, default=1m"`
}

// BootstrapConfig seeds a first admin account when the store is empty, so a
// fresh deployment is reachable. Ignored once any account exists.
type BootstrapConfig struct {
	AdminUsername string `env:"ADMIN_BOOTSTRAP_USERNAME"`
	AdminPassword string `env:"ADMIN_BOOTSTRAP_PASSWORD"`
}

// Load reads configuration from environment variables using go-envconfig.
// JWT_SECRET is the one setting with no sane default.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("load config: JWT_SECRET is required")
	}
	return &cfg, nil
}
