package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/climbdata/climbex/pkg/config"
	"gopkg.in/yaml.v3"
)

// ConfigDir returns the directory for the user-level config file,
// ~/.config/climbex on Unix-like systems.
func ConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "climbex"), nil
}

// DefaultConfigPath returns the full path to the default config file.
func DefaultConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "climbex.yaml"), nil
}

// ConfigFileExists reports whether the default config file is present.
func ConfigFileExists() (bool, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

const configHeader = `# climbex configuration file
# This file was auto-generated. Edit as needed.
#
# Configuration precedence (highest to lowest):
#   1. CLI flags (--output, --compression, etc.)
#   2. Environment variables (CLIMBEX_*)
#   3. This config file
#   4. Built-in defaults
#
# For all settings, see: go doc github.com/climbdata/climbex/pkg/config

`

// GenerateDefaultConfig writes a documented default config file to the
// default location. Does NOT overwrite an existing file. Returns the
// path where the config was created.
func GenerateDefaultConfig() (string, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("config file already exists at %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	body, err := yaml.Marshal(config.New())
	if err != nil {
		return "", fmt.Errorf("failed to marshal default config: %w", err)
	}

	data := append([]byte(configHeader), body...)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return path, nil
}
