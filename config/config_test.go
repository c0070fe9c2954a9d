package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvironment(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "")
	assert.Equal(t, Development, GetEnvironment())

	t.Setenv("ENV", "test")
	assert.Equal(t, Test, GetEnvironment())

	t.Setenv("ENV", "production")
	assert.Equal(t, Production, GetEnvironment())

	// CI detection wins over ENV
	t.Setenv("CI", "true")
	assert.Equal(t, CI, GetEnvironment())
}

func TestLoadDevConfigDefaults(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_NAME", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "snapzoska", cfg.DBName)
	assert.Equal(t, "disable", cfg.DBSSLMode)
}

func TestLoadDevConfigEnvOverrides(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("JWT_SECRET", "devsecret")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, "devsecret", cfg.JWTSecret)
}

func TestLoadCIConfigRequiresPassword(t *testing.T) {
	t.Setenv("CI", "true")
	t.Setenv("TEST_DB_PASSWORD", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TEST_DB_PASSWORD")
}

func TestLoadCIConfig(t *testing.T) {
	t.Setenv("CI", "true")
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("DB_HOST", "postgres")
	t.Setenv("DB_NAME", "snapzoska_test")
	t.Setenv("TEST_DB_PASSWORD", "cipass")
	t.Setenv("TEST_JWT_SECRET", "cisecret")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "cipass", cfg.DBPassword)
	assert.Equal(t, "cisecret", cfg.JWTSecret)
}

func TestReadSecret(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "jwt_secret"), []byte("supersecret\n"), 0o600))
	t.Setenv("SECRETS_DIR", dir)

	assert.Equal(t, "supersecret", readSecret("jwt_secret"))
	assert.Equal(t, "", readSecret("missing"))
}

func TestValidateConfig(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "")

	cfg := &Config{
		ServerPort: "8080",
		DBHost:     "localhost",
		DBName:     "snapzoska",
	}
	assert.NoError(t, ValidateConfig(cfg))

	cfg.ServerPort = ""
	err := ValidateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server port is not set")
}

func TestValidationError(t *testing.T) {
	err := ValidationError{Field: "db_password", Message: "is required"}
	assert.Equal(t, "db_password: is required", err.Error())
}
