package internal

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Config is everything the server and the CLI read from the environment.
type Config struct {
	Listen string
	Key    string
	Debug  bool
	LogDir string

	StoreDriver   string
	StorePath     string
	MongoURI      string
	MainDB        string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	PostgresURL   string
	MySQLDSN      string

	SeedDemo  bool
	Latency   time.Duration
	AuthRate  float64
	AuthBurst int
}

// LoadConfig loads .env (if present) and reads the environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found, relying on environment variables")
	}

	cfg := &Config{
		Listen:        env("LISTEN", ":3001"),
		Key:           os.Getenv("KEY"),
		Debug:         os.Getenv("DEBUG") == "true",
		LogDir:        os.Getenv("LOG_DIR"),
		StoreDriver:   env("STORE_DRIVER", "file"),
		StorePath:     env("STORE_PATH", "docspot.json"),
		MongoURI:      os.Getenv("MONGO_URI"),
		MainDB:        env("MAIN_DB", "docspot"),
		RedisAddr:     env("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		PostgresURL:   os.Getenv("DATABASE_URL"),
		MySQLDSN:      os.Getenv("MYSQL_DSN"),
		SeedDemo:      env("SEED_DEMO", "true") == "true",
		AuthRate:      5,
		AuthBurst:     10,
	}

	var err error
	if v := os.Getenv("REDIS_DB"); v != "" {
		if cfg.RedisDB, err = strconv.Atoi(v); err != nil {
			return nil, fmt.Errorf("REDIS_DB: %w", err)
		}
	}
	if v := os.Getenv("SIMULATED_LATENCY"); v != "" {
		if cfg.Latency, err = time.ParseDuration(v); err != nil {
			return nil, fmt.Errorf("SIMULATED_LATENCY: %w", err)
		}
	}
	if v := os.Getenv("AUTH_RATE"); v != "" {
		if cfg.AuthRate, err = strconv.ParseFloat(v, 64); err != nil {
			return nil, fmt.Errorf("AUTH_RATE: %w", err)
		}
	}
	if v := os.Getenv("AUTH_BURST"); v != "" {
		if cfg.AuthBurst, err = strconv.Atoi(v); err != nil {
			return nil, fmt.Errorf("AUTH_BURST: %w", err)
		}
	}

	return cfg, nil
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
