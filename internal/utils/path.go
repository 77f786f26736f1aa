package utils

import (
	"fmt"
	"os"
	"path"
)

// GetConfigDir returns the path to the solvr configuration directory:
// <UserConfigDir>/.solvr, unless overridden by SOLVR_CONFIG_HOME.
func GetConfigDir() (string, error) {
	if home := os.Getenv("SOLVR_CONFIG_HOME"); home != "" {
		return home, nil
	}
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return path.Join(cfg, ".solvr"), nil
}
