package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the server configuration. Values come from the optional YAML
// file first, environment variables second.
type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Storage struct {
		Backend string `yaml:"backend"` // file or postgres
		FileDir string `yaml:"file_dir"`
	} `yaml:"storage"`
	NATS struct {
		Enabled bool   `yaml:"enabled"`
		URL     string `yaml:"url"`
	} `yaml:"nats"`
	Sleeper struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"sleeper"`
}

func defaultConfig() *Config {
	cfg := &Config{}
	cfg.Server.Port = "8080"
	cfg.Storage.Backend = "file"
	cfg.Storage.FileDir = "data"
	cfg.NATS.URL = "nats://localhost:4222"
	return cfg
}

func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg.Server.Port = getEnv("PORT", cfg.Server.Port)
	cfg.Storage.Backend = getEnv("STORAGE_BACKEND", cfg.Storage.Backend)
	cfg.Storage.FileDir = getEnv("STORAGE_DIR", cfg.Storage.FileDir)
	cfg.NATS.URL = getEnv("NATS_URL", cfg.NATS.URL)
	if v := os.Getenv("NATS_ENABLED"); v != "" {
		cfg.NATS.Enabled = v == "true" || v == "1"
	}
	cfg.Sleeper.BaseURL = getEnv("SLEEPER_BASE_URL", cfg.Sleeper.BaseURL)

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
