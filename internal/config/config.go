// Package config reads the forwarder's configuration from the
// environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all forwarder configuration. Credential values are never
// configured here; only the secret identifier and the key names used to
// look the values up in the fetched bundle.
type Config struct {
	// Service is the service label stamped on every stream.
	Service string `env:"SERVICE_NAME" envDefault:"balancer-v3-backend"`

	// Environment is the deployment tag labeled as `environment`.
	// Required: label values must be non-empty.
	Environment string `env:"ENVIRONMENT"`

	// SecretARN identifies the credential bundle in Secrets Manager.
	// Its absence is reported per invocation, not at startup, so the
	// function still comes up and returns an explicit 500.
	SecretARN string `env:"SECRET_ARN"`

	// Key names locating each credential field in the fetched bundle.
	UserIDKey   string `env:"GRAFANA_CLOUD_USER_ID_KEY"`
	APIKeyKey   string `env:"GRAFANA_CLOUD_API_KEY_KEY"`
	EndpointKey string `env:"GRAFANA_CLOUD_LOKI_ENDPOINT_KEY"`

	// PushTimeout bounds the Loki POST so a stuck push cannot hang the
	// process for the host's whole invocation deadline.
	PushTimeout time.Duration `env:"PUSH_TIMEOUT" envDefault:"10s"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads configuration from the environment, preloading a .env file
// when one is present (local runs; the Lambda environment has none).
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Validate checks fields that must be right before handling any batch.
// All problems are reported together.
func (c Config) Validate() error {
	var errs []error
	if c.Environment == "" {
		errs = append(errs, errors.New("config: ENVIRONMENT must be set"))
	}
	if c.Service == "" {
		errs = append(errs, errors.New("config: SERVICE_NAME must not be empty"))
	}
	if c.PushTimeout <= 0 {
		errs = append(errs, fmt.Errorf("config: PUSH_TIMEOUT must be positive, got %v", c.PushTimeout))
	}
	return errors.Join(errs...)
}
