package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// HomeEnv overrides the aqscreen home directory.
const HomeEnv = "AQSCREEN_HOME"

// GetHome returns the aqscreen home directory
// Priority order:
//  1. AQSCREEN_HOME environment variable (if set)
//  2. ~/.aqscreen
//
// The directory is created if it doesn't exist
func GetHome() (string, error) {
	home := os.Getenv(HomeEnv)
	if home == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("get user home directory: %w", err)
		}
		home = filepath.Join(userHome, ".aqscreen")
	}

	if err := os.MkdirAll(home, 0755); err != nil {
		return "", fmt.Errorf("create aqscreen home directory: %w", err)
	}
	return home, nil
}
