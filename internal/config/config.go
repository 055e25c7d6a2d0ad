package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the process configuration, read from the environment
// with a best-effort .env overlay.
type Config struct {
	DataDir      string        // TASKMATE_DATA_DIR, default ~/.taskmate
	DatabasePath string        // TASKMATE_DB_PATH, default <DataDir>/taskmate.db
	ListenAddr   string        // TASKMATE_LISTEN_ADDR, default :8080
	JWTSecret    string        // TASKMATE_JWT_SECRET, required by serve
	JWTTTL       time.Duration // TASKMATE_JWT_TTL, default 24h
}

// Load reads configuration and fills defaults.
func Load() (Config, error) {
	_ = godotenv.Load(".env")

	cfg := Config{
		DataDir:      os.Getenv("TASKMATE_DATA_DIR"),
		DatabasePath: os.Getenv("TASKMATE_DB_PATH"),
		ListenAddr:   os.Getenv("TASKMATE_LISTEN_ADDR"),
		JWTSecret:    os.Getenv("TASKMATE_JWT_SECRET"),
		JWTTTL:       24 * time.Hour,
	}

	if cfg.DataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return Config{}, err
		}
		cfg.DataDir = filepath.Join(homeDir, ".taskmate")
	}
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = filepath.Join(cfg.DataDir, "taskmate.db")
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if ttl := os.Getenv("TASKMATE_JWT_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return Config{}, err
		}
		cfg.JWTTTL = d
	}

	return cfg, nil
}
