package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all configuration for the application
type Config struct {
	Registry RegistryConfig
	Form     FormConfig
}

// RegistryConfig holds the remote registry endpoints
type RegistryConfig struct {
	RegisterURL string        `env:"CHARFORM_REGISTER_URL" envDefault:"https://register-character-a42evidd3q-uc.a.run.app"`
	AssistURL   string        `env:"CHARFORM_ASSIST_URL" envDefault:"https://generate-character-from-image-a42evidd3q-uc.a.run.app"`
	Timeout     time.Duration `env:"CHARFORM_HTTP_TIMEOUT" envDefault:"30s"`
	Encoding    string        `env:"CHARFORM_ENCODING" envDefault:"multipart"`
}

// FormConfig holds editing session defaults
type FormConfig struct {
	UserID string `env:"CHARFORM_USER_ID" envDefault:"test"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validateURL("CHARFORM_REGISTER_URL", cfg.Registry.RegisterURL); err != nil {
		return nil, err
	}
	if err := validateURL("CHARFORM_ASSIST_URL", cfg.Registry.AssistURL); err != nil {
		return nil, err
	}
	if cfg.Registry.Timeout <= 0 {
		return nil, fmt.Errorf("CHARFORM_HTTP_TIMEOUT must be positive")
	}
	switch cfg.Registry.Encoding {
	case "multipart", "json":
	default:
		return nil, fmt.Errorf("CHARFORM_ENCODING must be multipart or json, got %q", cfg.Registry.Encoding)
	}
	if cfg.Form.UserID == "" {
		return nil, fmt.Errorf("CHARFORM_USER_ID is required")
	}

	return cfg, nil
}

func validateURL(key, value string) error {
	if value == "" {
		return fmt.Errorf("%s is required", key)
	}
	u, err := url.Parse(value)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("%s must be an absolute URL, got %q", key, value)
	}
	return nil
}
