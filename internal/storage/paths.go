// Package storage persists analysis results, engine options, and
// cumulative search statistics in a local BadgerDB.
package storage

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "static-eval"

// DefaultDir returns the platform data directory for the engine,
// creating it if needed.
//   - macOS: ~/Library/Application Support/static-eval/db
//   - Linux: $XDG_DATA_HOME/static-eval/db or ~/.local/share/static-eval/db
//   - Windows: %APPDATA%/static-eval/db
func DefaultDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		baseDir = filepath.Join(homeDir, "Library", "Application Support")

	case "windows":
		baseDir = os.Getenv("APPDATA")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(homeDir, "AppData", "Roaming")
		}

	default:
		baseDir = os.Getenv("XDG_DATA_HOME")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(homeDir, ".local", "share")
		}
	}

	dbDir := filepath.Join(baseDir, appName, "db")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return "", err
	}
	return dbDir, nil
}
