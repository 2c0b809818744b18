// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package verge

import "errors"

var (
	// ErrUnknownField classifies strict parse failures caused by keys outside the schema.
	// Use errors.Is(err, ErrUnknownField) instead of string matching.
	ErrUnknownField = errors.New("unknown settings field")

	// ErrClosed is returned by Watch after Close.
	ErrClosed = errors.New("settings watcher closed")

	errEmptyDocument = errors.New("settings file holds no document")
)
