// Package config loads the proxy configuration from environment variables.
package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"go.trai.ch/zerr"
)

const (
	CacheBackendNone   = "none"
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
	CacheBackendS3     = "s3"
)

var ErrInvalidConfig = zerr.New("invalid configuration")

type Config struct {
	Handler        string `env:"_HANDLER"`
	Region         string `env:"AWS_REGION"`
	LogDevelopment bool   `env:"LOG_DEVELOPMENT" envDefault:"true"`
	ListenAddr     string `env:"LISTEN_ADDR" envDefault:":8080"`

	PokeApi PokeApiConfig
	Cache   CacheConfig
}

type PokeApiConfig struct {
	BaseUrl string `env:"POKEAPI_BASE_URL" envDefault:"https://pokeapi.co/api/v2/"`
	// Zero keeps the transport default.
	Timeout time.Duration `env:"POKEAPI_TIMEOUT" envDefault:"0s"`
}

type CacheConfig struct {
	Backend   string        `env:"CACHE_BACKEND" envDefault:"memory"`
	Retention time.Duration `env:"CACHE_RETENTION" envDefault:"24h"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	BucketName string `env:"BUCKET_NAME"`
	Prefix     string `env:"CACHE_PREFIX" envDefault:"pokemon-cache/"`
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to parse environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case CacheBackendNone, CacheBackendMemory:
	case CacheBackendRedis:
		if c.Cache.RedisAddr == "" {
			return zerr.With(zerr.Wrap(ErrInvalidConfig, "REDIS_ADDR is required for the redis cache"), "backend", c.Cache.Backend)
		}
	case CacheBackendS3:
		if c.Cache.BucketName == "" {
			return zerr.With(zerr.Wrap(ErrInvalidConfig, "BUCKET_NAME is required for the s3 cache"), "backend", c.Cache.Backend)
		}
	default:
		return zerr.With(zerr.Wrap(ErrInvalidConfig, "unknown cache backend"), "backend", c.Cache.Backend)
	}
	if c.PokeApi.Timeout < 0 {
		return zerr.Wrap(ErrInvalidConfig, "POKEAPI_TIMEOUT must not be negative")
	}
	return nil
}
