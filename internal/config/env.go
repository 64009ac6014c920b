package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// LoadEnvFiles loads KEY=VALUE pairs from each existing file in paths.
// Variables already present in the process environment are never
// overwritten, so the real environment wins over any file and earlier
// files win over later ones. Missing files are skipped.
func LoadEnvFiles(paths ...string) ([]string, error) {
	var loaded []string
	for _, path := range paths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return loaded, fmt.Errorf("failed to stat env file: %w", err)
		}
		if err := godotenv.Load(path); err != nil {
			return loaded, fmt.Errorf("failed to load env file %s: %w", path, err)
		}
		loaded = append(loaded, path)
	}
	return loaded, nil
}

// APIKeyFromEnv returns the trimmed API key from the environment.
func APIKeyFromEnv() string {
	return strings.TrimSpace(os.Getenv(EnvAPIKey))
}

// SetAPIKey exports key into the process environment so that child
// lookups (and the SDK's own defaults) see the same value.
func SetAPIKey(key string) error {
	return os.Setenv(EnvAPIKey, key)
}
