// ABOUTME: This file handles configuration management for parking-gateway
// ABOUTME: Loads environment variables and validates per-environment API settings

package config

import (
	"fmt"

	"parking-gateway/models"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the parking-gateway service.
type Config struct {
	// Service configuration
	ServiceName string `env:"SERVICE_NAME" envDefault:"parking-gateway"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	AdminAddr   string `env:"ADMIN_ADDR" envDefault:":8080"`

	// Path to the bundled per-environment client credentials file.
	SecretsFile string `env:"SECRETS_FILE" envDefault:"/etc/parking-gateway/secrets.json"`

	// Credential override store backend: memory, bolt or kubernetes.
	CredentialStore string `env:"CREDENTIAL_STORE" envDefault:"memory"`
	BoltPath        string `env:"BOLT_PATH" envDefault:"/var/lib/parking-gateway/overrides.db"`

	// Kubernetes configuration (credential overrides in a Secret)
	Kubernetes KubernetesConfig `envPrefix:"KUBERNETES_"`

	// Trace propagation
	TraceHeaderName string `env:"TRACE_HEADER_NAME" envDefault:"X-Trace-Id"`
	TraceID         string `env:"TRACE_ID"`

	// Per-environment API endpoints
	Production  EnvironmentConfig `envPrefix:"PRODUCTION_"`
	Staging     EnvironmentConfig `envPrefix:"STAGING_"`
	Development EnvironmentConfig `envPrefix:"DEVELOPMENT_"`
}

// KubernetesConfig locates the Secret used for credential overrides.
type KubernetesConfig struct {
	Namespace  string `env:"NAMESPACE" envDefault:"parking-gateway"`
	SecretName string `env:"SECRET_NAME" envDefault:"parking-gateway-credential-overrides"`
}

// EnvironmentConfig holds the endpoints of one target API environment.
type EnvironmentConfig struct {
	BaseURL  string `env:"BASE_URL"`
	TokenURL string `env:"TOKEN_URL"`
	Audience string `env:"AUDIENCE"`
}

var defaultEnvironments = map[models.Environment]EnvironmentConfig{
	models.EnvironmentProduction: {
		BaseURL:  "https://api.parkingops.net/v1",
		TokenURL: "https://auth.parkingops.net/oauth/token",
		Audience: "https://api.parkingops.net",
	},
	models.EnvironmentStaging: {
		BaseURL:  "https://api.staging.parkingops.net/v1",
		TokenURL: "https://auth.staging.parkingops.net/oauth/token",
		Audience: "https://api.staging.parkingops.net",
	},
	models.EnvironmentDevelopment: {
		BaseURL:  "https://api.dev.parkingops.net/v1",
		TokenURL: "https://auth.dev.parkingops.net/oauth/token",
		Audience: "https://api.dev.parkingops.net",
	},
}

// Load reads configuration from an optional .env file and the process
// environment, then applies defaults and validates.
func Load() (*Config, error) {
	// Missing .env is fine; real deployments inject environment variables.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	cfg.applyEnvironmentDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnvironmentDefaults() {
	fill := func(dst *EnvironmentConfig, env models.Environment) {
		defaults := defaultEnvironments[env]
		if dst.BaseURL == "" {
			dst.BaseURL = defaults.BaseURL
		}
		if dst.TokenURL == "" {
			dst.TokenURL = defaults.TokenURL
		}
		if dst.Audience == "" {
			dst.Audience = defaults.Audience
		}
	}

	fill(&c.Production, models.EnvironmentProduction)
	fill(&c.Staging, models.EnvironmentStaging)
	fill(&c.Development, models.EnvironmentDevelopment)
}

func (c *Config) validate() error {
	switch c.CredentialStore {
	case "memory", "bolt", "kubernetes":
	default:
		return fmt.Errorf("invalid CREDENTIAL_STORE %q: must be memory, bolt or kubernetes", c.CredentialStore)
	}

	if c.TraceHeaderName == "" {
		return fmt.Errorf("TRACE_HEADER_NAME must not be empty")
	}

	for _, env := range []models.Environment{
		models.EnvironmentProduction,
		models.EnvironmentStaging,
		models.EnvironmentDevelopment,
	} {
		ec, err := c.ForEnvironment(env)
		if err != nil {
			return err
		}
		if ec.BaseURL == "" || ec.TokenURL == "" {
			return fmt.Errorf("environment %s is missing BASE_URL or TOKEN_URL", env)
		}
	}

	return nil
}

// ForEnvironment returns the endpoint settings for one environment.
func (c *Config) ForEnvironment(env models.Environment) (EnvironmentConfig, error) {
	switch env {
	case models.EnvironmentProduction:
		return c.Production, nil
	case models.EnvironmentStaging:
		return c.Staging, nil
	case models.EnvironmentDevelopment:
		return c.Development, nil
	default:
		return EnvironmentConfig{}, fmt.Errorf("unknown environment: %s", env)
	}
}
