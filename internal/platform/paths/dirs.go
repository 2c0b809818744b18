// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package paths resolves where the application keeps its files.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// EnvAppHome overrides the application home directory.
	EnvAppHome = "VERGE_HOME"

	appDirName      = "clash-verge"
	vergeConfigFile = "verge.yaml"
)

// AppHomeDir returns $VERGE_HOME when set, otherwise <user config dir>/clash-verge.
func AppHomeDir() (string, error) {
	if home := strings.TrimSpace(os.Getenv(EnvAppHome)); home != "" {
		abs, err := filepath.Abs(home)
		if err != nil {
			return "", fmt.Errorf("resolve %s: %w", EnvAppHome, err)
		}
		return abs, nil
	}

	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, appDirName), nil
}

// VergePath returns the location of verge.yaml inside the application home.
func VergePath() (string, error) {
	home, err := AppHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, vergeConfigFile), nil
}

// EnsureAppHomeDir creates the application home directory if needed and returns it.
func EnsureAppHomeDir() (string, error) {
	home, err := AppHomeDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(home, 0o750); err != nil {
		return "", fmt.Errorf("create app home: %w", err)
	}
	return home, nil
}
