package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Gateway GatewayConfig
	Redis   RedisConfig
	Mongo   MongoConfig
}

// GatewayConfig points the dashboard at the remote data gateway.
type GatewayConfig struct {
	URL          string        `env:"GATEWAY_URL"`
	Timeout      time.Duration `env:"GATEWAY_TIMEOUT, default=15s"`
	PollInterval time.Duration `env:"POLL_INTERVAL,   default=5s"`
}

// RedisConfig configures the session store backend.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// MongoConfig configures the reference gateway's durable store. Unused by
// the dashboard binary.
type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=jobdesk"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
