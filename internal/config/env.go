package config

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// loadEnvFiles loads .env and .env.local from the config file's directory
// before the config body is expanded. Variables already set in the process
// environment win over file values.
func loadEnvFiles(configPath string) {
	dir := filepath.Dir(configPath)
	for _, name := range []string{".env", ".env.local"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			slog.Warn("failed to load env file", "file", path, "error", err)
		}
	}
}
