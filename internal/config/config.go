// Package config loads application settings with viper and optional .env
// files with godotenv.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rayslava/camt053/internal/logging"

	"github.com/joho/godotenv"
)

// LoadEnv loads the first .env file found in the working directory or its
// parent into the process environment. Variables already set are kept.
// It returns the path that was loaded, or "" when there was none.
func LoadEnv(logger logging.Logger) (string, error) {
	for _, candidate := range []string{".env", filepath.Join("..", ".env")} {
		if _, err := os.Stat(candidate); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(candidate); err != nil {
			return "", err
		}
		logger.Debug("Loaded environment variables", logging.F(logging.FieldFile, candidate))
		return candidate, nil
	}
	logger.Debug("No .env file found, using environment variables")
	return "", nil
}

// GetEnv retrieves an environment variable with a fallback value if not set
func GetEnv(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	return value
}
