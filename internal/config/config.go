package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName          string
	AppEnv           string
	AppPort          string
	DatabaseURL      string
	RedisURL         string
	JWTSecret        string
	SessionTTL       time.Duration
	CookieSecure     bool
	CORSOrigins      string
	AnalyticsTTL     time.Duration
	AuthRateLimit    int
	AuthRateInterval time.Duration
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// IsDevelopment reports whether the service runs in a local development environment.
func (c Config) IsDevelopment() bool {
	return strings.EqualFold(c.AppEnv, "development")
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("PRACTICE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Practice Platform API")
	v.SetDefault("app.env", "production")
	v.SetDefault("app.port", "8000")
	v.SetDefault("session.ttl", "720h")
	v.SetDefault("cors.origins", "http://localhost:3000")
	v.SetDefault("analytics.cache_ttl", "1m")
	v.SetDefault("auth.rate_limit", 20)
	v.SetDefault("auth.rate_interval", "1m")

	sessionTTL, err := parseDuration(v.GetString("session.ttl"), 30*24*time.Hour)
	if err != nil {
		return Config{}, fmt.Errorf("invalid session ttl: %w", err)
	}

	analyticsTTL, err := parseDuration(v.GetString("analytics.cache_ttl"), time.Minute)
	if err != nil {
		return Config{}, fmt.Errorf("invalid analytics cache ttl: %w", err)
	}

	rateInterval, err := parseDuration(v.GetString("auth.rate_interval"), time.Minute)
	if err != nil {
		return Config{}, fmt.Errorf("invalid auth rate interval: %w", err)
	}

	cfg := Config{
		AppName:          v.GetString("app.name"),
		AppEnv:           strings.ToLower(v.GetString("app.env")),
		AppPort:          v.GetString("app.port"),
		DatabaseURL:      v.GetString("database.url"),
		RedisURL:         v.GetString("redis.url"),
		JWTSecret:        v.GetString("jwt.secret"),
		SessionTTL:       sessionTTL,
		CORSOrigins:      v.GetString("cors.origins"),
		AnalyticsTTL:     analyticsTTL,
		AuthRateLimit:    v.GetInt("auth.rate_limit"),
		AuthRateInterval: rateInterval,
	}

	// Cookies are sent over plain http only while developing locally.
	cfg.CookieSecure = !cfg.IsDevelopment()
	if v.IsSet("cookie.secure") {
		cfg.CookieSecure = v.GetBool("cookie.secure")
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("database url must be provided")
	}

	if cfg.AuthRateLimit <= 0 {
		cfg.AuthRateLimit = 20
	}

	return cfg, nil
}

func parseDuration(value string, fallback time.Duration) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	return time.ParseDuration(value)
}
