// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type AgentConfig struct {
	// Secrets come from the environment, never from the file.
	OrgID    string `yaml:"-"`
	APIToken string `yaml:"-"`

	BaseURL         string `yaml:"base_url"`
	HTTPTimeoutSec  int    `yaml:"http_timeout_seconds"`
	PollTimeoutSec  int    `yaml:"poll_timeout_seconds"`
	PollIntervalSec int    `yaml:"poll_interval_seconds"`
}

type AuthConfig struct {
	APIKey string `yaml:"-"`
}

type Config struct {
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
	Agent  AgentConfig  `yaml:"agent"`

	Auth    AuthConfig    `yaml:"-"`
	Runtime RuntimeConfig `yaml:"-"`
}

// LoadConfig reads the optional YAML file, applies defaults and pulls the
// required secrets from the environment. Startup is refused when any of
// CODEGEN_ORG_ID, CODEGEN_API_TOKEN or APP_API_KEY is missing.
func LoadConfig(path string, dev bool) (*Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	case os.IsNotExist(err):
		// file is optional; defaults plus environment are enough
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	// defaults
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8000
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Agent.BaseURL == "" {
		cfg.Agent.BaseURL = "https://api.codegen.com/v1"
	}
	if cfg.Agent.HTTPTimeoutSec <= 0 {
		cfg.Agent.HTTPTimeoutSec = 30
	}
	if cfg.Agent.PollTimeoutSec <= 0 {
		cfg.Agent.PollTimeoutSec = 120
	}
	if cfg.Agent.PollIntervalSec <= 0 {
		cfg.Agent.PollIntervalSec = 3
	}

	cfg.Agent.OrgID = os.Getenv("CODEGEN_ORG_ID")
	cfg.Agent.APIToken = os.Getenv("CODEGEN_API_TOKEN")
	cfg.Auth.APIKey = os.Getenv("APP_API_KEY")

	// Minimal validation
	if cfg.Agent.OrgID == "" {
		return nil, errors.New("CODEGEN_ORG_ID is required")
	}
	if cfg.Agent.APIToken == "" {
		return nil, errors.New("CODEGEN_API_TOKEN is required")
	}
	if cfg.Auth.APIKey == "" {
		return nil, errors.New("APP_API_KEY is required")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}
