package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables read by flashdeck.
const (
	EnvHome    = "FLASHDECK_HOME"
	EnvStorage = "FLASHDECK_STORAGE"
)

// LoadDotEnv loads KEY=VALUE pairs from the given .env files into the process
// environment. Missing files are skipped and variables already set are kept.
func LoadDotEnv(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// BaseDir returns $FLASHDECK_HOME, or ~/.flashdeck when unset.
func BaseDir() (string, error) {
	if dir := strings.TrimSpace(os.Getenv(EnvHome)); dir != "" {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".flashdeck"), nil
}

// ApplyEnv overrides config values from the environment.
func ApplyEnv(cfg *Config) {
	if storage := strings.TrimSpace(os.Getenv(EnvStorage)); storage != "" {
		cfg.Storage = strings.ToLower(storage)
	}
}
