package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const (
	StoreMemory = "memory"
	StoreMongo  = "mongo"
)

type Config struct {
	HTTPAddr string

	// Account store
	Store               string
	MongoURL            string
	MongoDBName         string
	MongoConnectTimeout time.Duration

	BcryptCost int

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
	ShutdownTimeout  time.Duration
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env file not found, using system environment variables")
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		HTTPAddr:    getEnv("HTTP_ADDR", ":5000"),
		Store:       getEnv("ACCOUNT_STORE", StoreMemory),
		MongoURL:    os.Getenv("MONGO_URL"),
		MongoDBName: getEnv("MONGO_DB_NAME", "flask_db"),
	}

	switch cfg.Store {
	case StoreMemory:
	case StoreMongo:
		if cfg.MongoURL == "" {
			return nil, fmt.Errorf("missing required env var: MONGO_URL")
		}
	default:
		return nil, fmt.Errorf("invalid ACCOUNT_STORE %q: want %q or %q", cfg.Store, StoreMemory, StoreMongo)
	}

	cost, err := getInt("BCRYPT_COST", 12)
	if err != nil {
		return nil, err
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("BCRYPT_COST must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, cost)
	}
	cfg.BcryptCost = cost

	durations := []struct {
		key string
		def time.Duration
		dst *time.Duration
	}{
		{"MONGO_CONNECT_TIMEOUT", 10 * time.Second, &cfg.MongoConnectTimeout},
		{"HTTP_READ_TIMEOUT", 10 * time.Second, &cfg.HTTPReadTimeout},
		{"HTTP_WRITE_TIMEOUT", 30 * time.Second, &cfg.HTTPWriteTimeout},
		{"HTTP_IDLE_TIMEOUT", time.Minute, &cfg.HTTPIdleTimeout},
		{"SHUTDOWN_TIMEOUT", 15 * time.Second, &cfg.ShutdownTimeout},
	}
	for _, d := range durations {
		v, err := getDuration(d.key, d.def)
		if err != nil {
			return nil, err
		}
		*d.dst = v
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for %s: %q: %w", key, v, err)
	}
	return i, nil
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %q: %w", key, v, err)
	}
	return d, nil
}
