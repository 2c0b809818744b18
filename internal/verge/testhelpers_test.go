// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package verge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// fullConfig returns a document with every field, including every theme field, set.
func fullConfig() Config {
	return Config{
		Language:           Ptr("zh"),
		ThemeMode:          Ptr("dark"),
		ThemeBlur:          Ptr(true),
		TrafficGraph:       Ptr(false),
		EnableTunMode:      Ptr(true),
		EnableAutoLaunch:   Ptr(false),
		EnableSilentStart:  Ptr(true),
		EnableSystemProxy:  Ptr(true),
		EnableProxyGuard:   Ptr(false),
		SystemProxyBypass:  Ptr("localhost;127.*;10.*"),
		ProxyGuardDuration: Ptr(uint64(30)),
		ThemeSetting: &Theme{
			PrimaryColor:   Ptr("#5b5c9d"),
			SecondaryColor: Ptr("#9c27b0"),
			PrimaryText:    Ptr("#637381"),
			SecondaryText:  Ptr("#909399"),
			InfoColor:      Ptr("#0288d1"),
			ErrorColor:     Ptr("#d32f2f"),
			WarningColor:   Ptr("#ed6c02"),
			SuccessColor:   Ptr("#2e7d32"),
			FontFamily:     Ptr(`"Roboto", sans-serif`),
			CSSInjection:   Ptr(".layout { opacity: 0.9; }\n"),
		},
	}
}

func settingsPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "verge.yaml")
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func assertConfig(t *testing.T, want, got Config) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}
