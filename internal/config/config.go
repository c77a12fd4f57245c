package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Port        int `yaml:"port"`
		MetricsPort int `yaml:"metrics_port"`
	} `yaml:"server"`
	Database struct {
		Driver string `yaml:"driver"`
		DSN    string `yaml:"dsn"`
	} `yaml:"database"`
	Catalog struct {
		Path string `yaml:"path"`
	} `yaml:"catalog"`
	WasteModel struct {
		Path string `yaml:"path"`
	} `yaml:"waste_model"`
	Auth struct {
		Secret        string `yaml:"secret"`
		TokenTTLHours int    `yaml:"token_ttl_hours"`
	} `yaml:"auth"`
	LogLevel string `yaml:"log_level"`
}

// Load reads and parses the yaml configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Auth.Secret == "" {
		cfg.Auth.Secret = os.Getenv("WASTENOT_AUTH_SECRET")
	}
	if cfg.Auth.Secret == "" {
		return nil, fmt.Errorf("auth secret must be set in config or WASTENOT_AUTH_SECRET")
	}

	return cfg, nil
}

func defaults() *Config {
	cfg := &Config{}
	cfg.Server.Port = 8080
	cfg.Server.MetricsPort = 9090
	cfg.Database.Driver = "sqlite3"
	cfg.Database.DSN = "wastenot.db"
	cfg.Catalog.Path = "database/nutrition_data.csv"
	cfg.WasteModel.Path = "configs/waste_model.json"
	cfg.Auth.TokenTTLHours = 24
	cfg.LogLevel = "info"
	return cfg
}
