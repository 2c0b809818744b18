// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package verge

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	xglog "github.com/ManuGH/verge/internal/log"
	"github.com/ManuGH/verge/internal/metrics"
	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"
)

// Header is the banner written above the document on every save.
const Header = "# The Config for Clash Verge App\n\n"

const filePerm = 0o644

// Load reads the settings file at path. A missing, unreadable or malformed
// file yields the empty document; the failure is logged and never returned,
// so settings can not block startup.
func Load(path string) Config {
	cfg, err := readFile(path, false)
	if err == nil || errors.Is(err, errEmptyDocument) {
		return cfg
	}

	reason := fallbackReason(err)
	metrics.IncConfigLoadFallback(reason)

	logger := xglog.WithComponent("verge")
	evt := logger.Warn()
	if reason == "missing" {
		evt = logger.Info()
	}
	evt.Err(err).
		Str(xglog.FieldEvent, "verge.load_fallback").
		Str(xglog.FieldPath, path).
		Str(xglog.FieldReason, reason).
		Msg("using default settings")
	return Config{}
}

// LoadStrict reads the settings file at path and reports every problem,
// including keys that are not part of the schema.
func LoadStrict(path string) (Config, error) {
	cfg, err := readFile(path, true)
	if errors.Is(err, errEmptyDocument) {
		return Config{}, nil
	}
	return cfg, err
}

// readFile reports errEmptyDocument when the file holds no YAML document
// (empty or comments only), so callers can tell it apart from "all unset".
func readFile(path string, strict bool) (Config, error) {
	// #nosec G304 -- the settings path comes from the directory resolver or the operator
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("read settings: %w", err)
	}
	return decode(data, strict)
}

// Decode parses a settings document. Unknown keys are ignored unless strict
// is set, in which case they fail with ErrUnknownField. Empty input decodes
// to the all-unset document.
func Decode(data []byte, strict bool) (Config, error) {
	cfg, err := decode(data, strict)
	if errors.Is(err, errEmptyDocument) {
		return Config{}, nil
	}
	return cfg, err
}

func decode(data []byte, strict bool) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(strict)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return Config{}, errEmptyDocument
		}
		if strict && isUnknownFieldErr(err) {
			return Config{}, fmt.Errorf("%w: %v", ErrUnknownField, err)
		}
		return Config{}, fmt.Errorf("parse settings: %w", err)
	}
	if strict {
		if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
			return Config{}, errors.New("parse settings: multiple documents or trailing content")
		}
	}
	return cfg, nil
}

// Encode renders cfg as YAML behind header. Unset fields are omitted rather
// than written as null.
func Encode(cfg Config, header string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(header)

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("encode settings: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes cfg to path behind header, replacing any previous content
// atomically. The parent directory must already exist.
func Save(path string, cfg Config, header string) error {
	data, err := Encode(cfg, header)
	if err != nil {
		return err
	}

	// Keep the temp file next to the target so a missing directory fails
	// here instead of at rename time.
	pendingFile, err := renameio.NewPendingFile(path,
		renameio.WithTempDir(filepath.Dir(path)),
		renameio.WithPermissions(filePerm),
		renameio.WithExistingPermissions(),
	)
	if err != nil {
		return fmt.Errorf("create pending settings file: %w", err)
	}
	defer func() {
		if err := pendingFile.Cleanup(); err != nil {
			logger := xglog.WithComponent("verge")
			logger.Debug().Err(err).Msg("cleanup pending settings file")
		}
	}()

	if _, err := pendingFile.Write(data); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace settings file: %w", err)
	}
	return nil
}

func fallbackReason(err error) string {
	var pathErr *fs.PathError
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "missing"
	case errors.As(err, &pathErr):
		return "unreadable"
	default:
		return "malformed"
	}
}

func isUnknownFieldErr(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "field") && strings.Contains(msg, "not found")
}
