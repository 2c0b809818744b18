// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package verge owns the persisted user settings document (verge.yaml).
//
// Every field of Config is optional: a nil field means "no override" and
// defers to the built-in default of whichever component consumes it.
// Patches use the same shape; only present fields are applied. The nested
// theme block is replaced as a whole, never merged field by field.
package verge
