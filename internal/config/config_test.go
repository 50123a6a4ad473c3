package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rayslava/camt053/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("CAMT053_CSV_DELIMITER=;\n"), 0600))
	t.Setenv("CAMT053_CSV_DELIMITER", "")
	require.NoError(t, os.Unsetenv("CAMT053_CSV_DELIMITER"))

	logger := logging.NewMockLogger()
	path, err := LoadEnv(logger)
	require.NoError(t, err)
	assert.Equal(t, ".env", path)
	assert.Equal(t, ";", os.Getenv("CAMT053_CSV_DELIMITER"))

	config, err := InitializeConfig()
	require.NoError(t, err)
	assert.Equal(t, ";", config.CSV.Delimiter)
}

func TestLoadEnv_NoFile(t *testing.T) {
	isolate(t)
	logger := logging.NewMockLogger()

	path, err := LoadEnv(logger)
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.True(t, logger.HasEntry("DEBUG", "No .env file found, using environment variables"))
}

func TestGetEnv(t *testing.T) {
	t.Setenv("CAMT053_TEST_VALUE", "x")
	assert.Equal(t, "x", GetEnv("CAMT053_TEST_VALUE", "fallback"))
	assert.Equal(t, "fallback", GetEnv("CAMT053_TEST_UNSET_VALUE", "fallback"))
}
