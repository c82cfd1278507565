package main

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the storefront.
type Config struct {
	Port          string
	Env           string
	AllowedOrigin string
	// Redis for guest cart sessions; empty addr falls back to the
	// in-process store.
	RedisAddr     string
	RedisPassword string
	GuestCartTTL  time.Duration
	// Per-IP throttle on the auth endpoints.
	AuthRatePerMinute int
	AuthRateBurst     int
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() *Config {
	ttl := 7 * 24 * time.Hour
	if raw := os.Getenv("GUEST_CART_TTL"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			ttl = parsed
		}
	}

	return &Config{
		Port:              getEnv("PORT", "8080"),
		Env:               getEnv("APP_ENV", "development"),
		AllowedOrigin:     getEnv("ALLOWED_ORIGIN", "http://localhost:3000"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		GuestCartTTL:      ttl,
		AuthRatePerMinute: getEnvInt("AUTH_RATE_PER_MINUTE", 100),
		AuthRateBurst:     getEnvInt("AUTH_RATE_BURST", 50),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if raw := os.Getenv(key); raw != "" {
		if val, err := strconv.Atoi(raw); err == nil && val > 0 {
			return val
		}
	}
	return fallback
}
