// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package verge

import (
	"strings"
	"sync"
	"time"

	xglog "github.com/ManuGH/verge/internal/log"
	"github.com/ManuGH/verge/internal/metrics"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Verge owns the settings document for the lifetime of the process.
// Construct one with New and hand the pointer to every collaborator.
type Verge struct {
	mu     sync.Mutex
	path   string
	header string
	config Config
	logger zerolog.Logger

	// Change notifications
	listenersMu sync.RWMutex
	listeners   []chan<- Config

	// File watching (see watch.go)
	watchMu  sync.Mutex
	watcher  *fsnotify.Watcher
	debounce time.Duration
	closed   bool
}

// Option customises a Verge at construction.
type Option func(*Verge)

// WithHeader overrides the banner written above the document.
func WithHeader(header string) Option {
	return func(v *Verge) { v.header = header }
}

// WithLogger replaces the component logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(v *Verge) { v.logger = logger }
}

// WithDebounce sets how long the watcher waits for a burst of file events to settle.
func WithDebounce(d time.Duration) Option {
	return func(v *Verge) { v.debounce = d }
}

// New loads the settings document at path. It never fails: an absent or
// broken file starts the process with every field unset.
func New(path string, opts ...Option) *Verge {
	v := &Verge{
		path:     path,
		header:   Header,
		logger:   xglog.WithComponent("verge"),
		debounce: 500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(v)
	}
	v.config = Load(path)

	v.logger.Info().
		Str(xglog.FieldEvent, "verge.loaded").
		Str(xglog.FieldPath, path).
		Strs("keys", v.config.PresentKeys()).
		Msg("settings loaded")
	return v
}

// Path returns the settings file location.
func (v *Verge) Path() string { return v.path }

// Config returns a snapshot of the current document. Mutating the snapshot
// does not affect the owned copy.
func (v *Verge) Config() Config {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.config.Clone()
}

// PatchConfig applies the present fields of patch and writes the whole
// document back to disk. The in-memory document is updated before the write,
// so a save error leaves memory ahead of the file; repeating the same patch
// is safe.
func (v *Verge) PatchConfig(patch Config) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	old := v.config
	v.config = old.Merge(patch)

	start := time.Now()
	err := Save(v.path, v.config, v.header)
	metrics.ObserveConfigSave(time.Since(start))

	changed := Changed(old, v.config)
	if err != nil {
		metrics.IncConfigPatch("failure")
		v.logger.Error().
			Err(err).
			Str(xglog.FieldEvent, "verge.save_failed").
			Str(xglog.FieldPath, v.path).
			Str(xglog.FieldChanged, strings.Join(changed, ",")).
			Msg("settings patched in memory but not persisted")
		return err
	}

	metrics.IncConfigPatch("success")
	v.logger.Info().
		Str(xglog.FieldEvent, "verge.patched").
		Str(xglog.FieldChanged, strings.Join(changed, ",")).
		Msg("settings saved")

	v.notifyListeners(v.config)
	return nil
}

// Subscribe registers ch to receive the document after each successful
// patch or reload, in the order the changes were applied. Sends never block;
// a full channel misses the update.
// The caller owns ch and must not close it while the Verge is in use.
func (v *Verge) Subscribe(ch chan<- Config) {
	v.listenersMu.Lock()
	defer v.listenersMu.Unlock()
	v.listeners = append(v.listeners, ch)
}

// notifyListeners must be called with mu held so deliveries keep the order
// of the changes.
func (v *Verge) notifyListeners(cfg Config) {
	v.listenersMu.RLock()
	defer v.listenersMu.RUnlock()

	for _, ch := range v.listeners {
		select {
		case ch <- cfg.Clone():
		default:
			v.logger.Warn().
				Str(xglog.FieldEvent, "verge.listener_skip").
				Msg("skipped notifying listener (channel full)")
		}
	}
}
