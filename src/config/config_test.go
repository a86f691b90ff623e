package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	unsetEnv(t, "_HANDLER", "CACHE_BACKEND", "CACHE_RETENTION", "CACHE_PREFIX",
		"POKEAPI_BASE_URL", "POKEAPI_TIMEOUT", "LISTEN_ADDR", "LOG_DEVELOPMENT")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, CacheBackendMemory, cfg.Cache.Backend)
	assert.Equal(t, 24*time.Hour, cfg.Cache.Retention)
	assert.Equal(t, "pokemon-cache/", cfg.Cache.Prefix)
	assert.Equal(t, "https://pokeapi.co/api/v2/", cfg.PokeApi.BaseUrl)
	assert.Equal(t, time.Duration(0), cfg.PokeApi.Timeout)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.True(t, cfg.LogDevelopment)
}

// unsetEnv removes variables for the duration of the test.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("_HANDLER", "api")
	t.Setenv("POKEAPI_BASE_URL", "http://localhost:9000/api/v2/")
	t.Setenv("POKEAPI_TIMEOUT", "5s")
	t.Setenv("CACHE_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("LISTEN_ADDR", ":9090")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "api", cfg.Handler)
	assert.Equal(t, "http://localhost:9000/api/v2/", cfg.PokeApi.BaseUrl)
	assert.Equal(t, 5*time.Second, cfg.PokeApi.Timeout)
	assert.Equal(t, "localhost:6379", cfg.Cache.RedisAddr)
	assert.Equal(t, 2, cfg.Cache.RedisDB)
	assert.Equal(t, ":9090", cfg.ListenAddr)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		cache   CacheConfig
		wantErr bool
	}{
		{name: "none", cache: CacheConfig{Backend: CacheBackendNone}},
		{name: "memory", cache: CacheConfig{Backend: CacheBackendMemory}},
		{name: "redis without address", cache: CacheConfig{Backend: CacheBackendRedis}, wantErr: true},
		{name: "redis", cache: CacheConfig{Backend: CacheBackendRedis, RedisAddr: "localhost:6379"}},
		{name: "s3 without bucket", cache: CacheConfig{Backend: CacheBackendS3}, wantErr: true},
		{name: "s3", cache: CacheConfig{Backend: CacheBackendS3, BucketName: "bucket"}},
		{name: "unknown", cache: CacheConfig{Backend: "memcached"}, wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &Config{Cache: tc.cache}

			err := cfg.Validate()

			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
