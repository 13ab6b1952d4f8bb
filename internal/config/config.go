package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application settings loaded from the environment.
type Config struct {
	IsProduction      bool
	ProdOrigins       string
	HTTPAddr          string
	DBDSN             string
	RedisAddr         string // optional; empty means in-process locking
	JWTSecret         string
	JWTAccessTokenTTL time.Duration
	BcryptCost        int
	SweepInterval     time.Duration
}

// Load reads configuration from the environment, with an optional .env file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg := &Config{
		IsProduction: envString("APP_ENV", "dev") == "prod",
		ProdOrigins:  envString("PROD_ORIGINS", ""),
		HTTPAddr:     envString("HTTP_ADDR", ":8080"),
		RedisAddr:    envString("REDIS_ADDR", ""),
	}

	var err error
	if cfg.DBDSN, err = requireEnv("DB_DSN"); err != nil {
		return nil, err
	}
	if cfg.JWTSecret, err = requireEnv("JWT_SECRET"); err != nil {
		return nil, err
	}
	if cfg.JWTAccessTokenTTL, err = envDuration("JWT_ACCESS_TOKEN_TTL", 15*time.Minute); err != nil {
		return nil, err
	}
	if cfg.BcryptCost, err = envInt("BCRYPT_COST", 12); err != nil {
		return nil, err
	}
	// Sweep cadence only affects how stale stored statuses can get; reads
	// apply time-derived transitions themselves.
	if cfg.SweepInterval, err = envDuration("SWEEP_INTERVAL", time.Minute); err != nil {
		return nil, err
	}

	return cfg, nil
}

func envString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func requireEnv(key string) (string, error) {
	v := os.Getenv(key)
	if v == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return v, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := envString(key, "")
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func envInt(key string, fallback int) (int, error) {
	v := envString(key, "")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
