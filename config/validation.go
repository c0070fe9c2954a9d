package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the loaded configuration is usable in the
// current environment. Development and Test tolerate missing credentials so
// the unit-test suite can run without a running stack.
func ValidateConfig(cfg *Config) error {
	env := GetEnvironment()

	var errors []string

	if cfg.ServerPort == "" {
		errors = append(errors, "server port is not set")
	}
	if cfg.DBHost == "" {
		errors = append(errors, "database host is not set")
	}
	if cfg.DBName == "" {
		errors = append(errors, "database name is not set")
	}

	switch env {
	case CI:
		if cfg.DBPassword == "" {
			errors = append(errors, "TEST_DB_PASSWORD environment variable is required in CI environment")
		}
		if cfg.JWTSecret == "" {
			errors = append(errors, "TEST_JWT_SECRET environment variable is required in CI environment")
		}
	case Production:
		if cfg.DBPassword == "" {
			errors = append(errors, "db_password secret is required")
		}
		if cfg.JWTSecret == "" {
			errors = append(errors, "jwt_secret secret is required")
		}
		if cfg.RedisPassword == "" {
			errors = append(errors, "redis_password secret is required")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}
