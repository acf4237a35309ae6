package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Load reads the YAML file at path, overlays secrets from the environment
// (and an optional .env file) and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	_ = godotenv.Load()
	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// applyEnv lets secrets live outside the YAML file.
func applyEnv(cfg *Config) {
	overlay(&cfg.Gemini.APIKey, "GEMINI_API_KEY")
	overlay(&cfg.Auth.Secret, "AUTH_SECRET")
	overlay(&cfg.Archive.DSN, "ARCHIVE_DSN")
	overlay(&cfg.Storage.AccessKeyID, "AWS_ACCESS_KEY_ID")
	overlay(&cfg.Storage.SecretAccessKey, "AWS_SECRET_ACCESS_KEY")
	overlay(&cfg.Storage.Region, "AWS_REGION")
}

func overlay(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
