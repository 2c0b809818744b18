// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Command vergectl inspects and edits verge.yaml from the shell.
package main

import (
	"os"

	xglog "github.com/ManuGH/verge/internal/log"
	"github.com/ManuGH/verge/internal/version"
)

func main() {
	xglog.Configure(xglog.Config{
		Level:   "warn",
		Output:  os.Stderr,
		Service: "vergectl",
		Version: version.Version,
	})

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
