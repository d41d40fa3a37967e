// Package config loads application settings from a yaml file with environment overrides.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime settings for the server.
type Config struct {
	// Addr is the listen address of the HTTP server (e.g. ":8080").
	Addr string

	// DatabaseDSN is the Postgres connection string.
	DatabaseDSN string

	// RunMigrations enables gorm AutoMigrate at startup.
	RunMigrations bool

	// RedisAddr is the optional Redis address. Empty disables the item cache.
	RedisAddr string

	// CacheTTL bounds how long cached item reads may be served.
	CacheTTL time.Duration

	// JWTSecret signs access tokens. Required.
	JWTSecret string

	// JWTExpiration is the access token lifetime.
	JWTExpiration time.Duration
}

// Load reads configs/config.yml (when present) and environment variables.
// Environment variables use the FLEAMARKET_ prefix, e.g. FLEAMARKET_JWT_SECRET.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.AddConfigPath("configs")

	v.SetDefault("addr", ":8080")
	v.SetDefault("run_migrations", true)
	v.SetDefault("cache_ttl", "5m")
	v.SetDefault("jwt_expiration", "1h")

	v.SetEnvPrefix("FLEAMARKET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Missing file is fine: environment variables alone are a valid setup.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Addr:          v.GetString("addr"),
		DatabaseDSN:   v.GetString("database_dsn"),
		RunMigrations: v.GetBool("run_migrations"),
		RedisAddr:     v.GetString("redis_addr"),
		CacheTTL:      v.GetDuration("cache_ttl"),
		JWTSecret:     v.GetString("jwt_secret"),
		JWTExpiration: v.GetDuration("jwt_expiration"),
	}

	if cfg.DatabaseDSN == "" {
		return nil, fmt.Errorf("database_dsn is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt_secret is required")
	}
	return cfg, nil
}
