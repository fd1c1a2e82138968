package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"parking-gateway/config"
	"parking-gateway/repository"
)

// HealthCheckService reports startup readiness for the parking gateway.
type HealthCheckService struct {
	config                 *config.Config
	bundledSecretsCheck    func(path string) error
	overrideStoreCheck     func(cfg *config.Config) error
	environmentConfigCheck func(cfg *config.Config) error
}

// NewHealthCheckService creates a health check service with default checks.
func NewHealthCheckService(cfg *config.Config) *HealthCheckService {
	return &HealthCheckService{
		config:                 cfg,
		bundledSecretsCheck:    defaultBundledSecretsCheck,
		overrideStoreCheck:     defaultOverrideStoreCheck,
		environmentConfigCheck: defaultEnvironmentConfigCheck,
	}
}

// PerformHealthCheck runs all readiness checks and reports them.
func (hcs *HealthCheckService) PerformHealthCheck() map[string]interface{} {
	result := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   getServiceVersion(),
	}

	errs := []string{}

	if hcs.config == nil {
		result["status"] = "degraded"
		result["error_details"] = []string{"configuration not loaded"}
		return result
	}

	if err := hcs.bundledSecretsCheck(hcs.config.SecretsFile); err != nil {
		result["bundled_secrets_ok"] = false
		errs = append(errs, fmt.Sprintf("bundled_secrets: %v", err))
	} else {
		result["bundled_secrets_ok"] = true
	}

	if err := hcs.overrideStoreCheck(hcs.config); err != nil {
		result["override_store_ok"] = false
		errs = append(errs, fmt.Sprintf("override_store: %v", err))
	} else {
		result["override_store_ok"] = true
	}

	if err := hcs.environmentConfigCheck(hcs.config); err != nil {
		result["environments_ok"] = false
		errs = append(errs, fmt.Sprintf("environments: %v", err))
	} else {
		result["environments_ok"] = true
	}

	if len(errs) > 0 {
		result["status"] = "degraded"
		result["error_details"] = errs
	}

	return result
}

// Default check implementations

func defaultBundledSecretsCheck(path string) error {
	_, err := repository.LoadBundledCredentials(path)
	return err
}

func defaultOverrideStoreCheck(cfg *config.Config) error {
	switch cfg.CredentialStore {
	case "memory", "kubernetes":
		return nil
	case "bolt":
		if cfg.BoltPath == "" {
			return fmt.Errorf("BOLT_PATH not configured")
		}
		return nil
	default:
		return fmt.Errorf("unknown credential store %q", cfg.CredentialStore)
	}
}

func defaultEnvironmentConfigCheck(cfg *config.Config) error {
	for _, envCfg := range []config.EnvironmentConfig{cfg.Production, cfg.Staging, cfg.Development} {
		if envCfg.BaseURL == "" || envCfg.TokenURL == "" {
			return fmt.Errorf("environment missing base or token URL")
		}
	}
	return nil
}

func getServiceVersion() string {
	version := os.Getenv("SERVICE_VERSION")
	if version == "" {
		version = "unknown"
	}
	return version
}

// performHealthCheckWithOutput runs the checks and prints JSON for the
// -health-check command line flag.
func performHealthCheckWithOutput() {
	cfg, err := config.Load()
	var healthService *HealthCheckService
	if err != nil {
		healthService = NewHealthCheckService(nil)
	} else {
		healthService = NewHealthCheckService(cfg)
	}

	result := healthService.PerformHealthCheck()

	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Printf(`{"status": "error", "error": "failed to marshal health check result: %v"}`, err)
		os.Exit(1)
	}

	fmt.Println(string(output))

	if status, ok := result["status"]; ok && status != "healthy" {
		os.Exit(1)
	}
}
