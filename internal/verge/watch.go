// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package verge

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	xglog "github.com/ManuGH/verge/internal/log"
	"github.com/ManuGH/verge/internal/metrics"
	"github.com/fsnotify/fsnotify"
)

// Reload re-reads the settings file and adopts it if it parses. A file that
// is missing, malformed or holds no document at all keeps the current
// document, so a half-written external edit never wipes the user's settings.
// It reports whether the in-memory document changed.
func (v *Verge) Reload() (bool, error) {
	// Saves happen under mu, so reading under it too means the file can only
	// differ from memory because someone else wrote it.
	v.mu.Lock()
	defer v.mu.Unlock()

	cfg, err := readFile(v.path, false)
	if err != nil {
		metrics.IncConfigReload("rejected")
		v.logger.Warn().
			Err(err).
			Str(xglog.FieldEvent, "verge.reload_rejected").
			Str(xglog.FieldPath, v.path).
			Msg("keeping current settings")
		return false, err
	}

	changed := Changed(v.config, cfg)
	if len(changed) == 0 {
		metrics.IncConfigReload("unchanged")
		return false, nil
	}
	v.config = cfg

	metrics.IncConfigReload("applied")
	v.logger.Info().
		Str(xglog.FieldEvent, "verge.reloaded").
		Str(xglog.FieldChanged, strings.Join(changed, ",")).
		Msg("settings reloaded from disk")
	v.notifyListeners(cfg)
	return true, nil
}

// Watch starts following external edits of the settings file. The parent
// directory is watched rather than the file itself so that editors which
// replace the file (and our own atomic saves) keep being observed.
// Watching stops when ctx is done or Close is called.
func (v *Verge) Watch(ctx context.Context) error {
	v.watchMu.Lock()
	defer v.watchMu.Unlock()

	if v.closed {
		return ErrClosed
	}
	if v.watcher != nil {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	dir := filepath.Dir(v.path)
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch settings dir: %w", err)
	}
	v.watcher = watcher

	v.logger.Info().
		Str(xglog.FieldEvent, "verge.watcher_started").
		Str(xglog.FieldPath, v.path).
		Msg("watching settings file for changes")

	go v.watchLoop(ctx, watcher)
	return nil
}

// Close stops the watcher, if any. It is safe to call more than once.
func (v *Verge) Close() error {
	v.watchMu.Lock()
	defer v.watchMu.Unlock()

	v.closed = true
	if v.watcher == nil {
		return nil
	}
	err := v.watcher.Close()
	v.watcher = nil
	return err
}

func (v *Verge) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	target := filepath.Clean(v.path)

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			v.logger.Info().Str(xglog.FieldEvent, "verge.watcher_stopped").Msg("settings watcher stopped")
			_ = v.Close()
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			v.logger.Debug().
				Str(xglog.FieldEvent, "verge.file_changed").
				Str("op", event.Op.String()).
				Msg("settings file changed")

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(v.debounce, func() {
				if ctx.Err() != nil {
					return
				}
				_, _ = v.Reload()
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			v.logger.Error().
				Err(err).
				Str(xglog.FieldEvent, "verge.watcher_error").
				Msg("settings watcher error")
		}
	}
}
