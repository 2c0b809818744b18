// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Command daemon owns verge.yaml for the desktop UI: it keeps the settings
// document in memory, follows external edits and serves it over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/ManuGH/verge/internal/api"
	"github.com/ManuGH/verge/internal/config"
	xglog "github.com/ManuGH/verge/internal/log"
	"github.com/ManuGH/verge/internal/platform/paths"
	"github.com/ManuGH/verge/internal/verge"
	"github.com/ManuGH/verge/internal/version"
	"golang.org/x/sync/errgroup"
)

// options are the command-line flags; empty values defer to the environment.
type options struct {
	configPath  string
	listenAddr  string
	logLevel    string
	showVersion bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("daemon", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "path to verge.yaml (default: $VERGE_HOME/verge.yaml)")
	fs.StringVar(&opts.listenAddr, "listen", "", "HTTP listen address (overrides VERGE_LISTEN)")
	fs.StringVar(&opts.logLevel, "log-level", "", "log level (overrides LOG_LEVEL)")
	fs.BoolVar(&opts.showVersion, "version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	return opts, nil
}

// resolveConfigPath prefers an explicit path and otherwise creates the
// application home so the first save has somewhere to go.
func resolveConfigPath(explicit string) (string, error) {
	if p := strings.TrimSpace(explicit); p != "" {
		return filepath.Abs(p)
	}
	if _, err := paths.EnsureAppHomeDir(); err != nil {
		return "", err
	}
	return paths.VergePath()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if opts.showVersion {
		_, _ = fmt.Fprintln(stdout, version.String())
		return 0
	}

	xglog.Configure(xglog.Config{
		Level:   opts.logLevel,
		Version: version.Version,
	})
	logger := xglog.WithComponent("daemon")

	path, err := resolveConfigPath(opts.configPath)
	if err != nil {
		logger.Error().
			Err(err).
			Str(xglog.FieldEvent, "startup.path_failed").
			Msg("cannot resolve settings path")
		return 1
	}

	serverCfg := config.ParseServerConfig()
	if addr := strings.TrimSpace(opts.listenAddr); addr != "" {
		serverCfg.ListenAddr = addr
	}

	settings := verge.New(path)
	defer func() { _ = settings.Close() }()

	ln, err := net.Listen("tcp", serverCfg.ListenAddr)
	if err != nil {
		logger.Error().
			Err(err).
			Str(xglog.FieldEvent, "startup.listen_failed").
			Str("addr", serverCfg.ListenAddr).
			Msg("cannot bind API listener")
		return 1
	}

	if err := serve(ctx, settings, serverCfg, ln); err != nil {
		logger.Error().
			Err(err).
			Str(xglog.FieldEvent, "daemon.failed").
			Msg("daemon stopped with error")
		return 1
	}

	logger.Info().
		Str(xglog.FieldEvent, "daemon.stopped").
		Msg("daemon stopped")
	return 0
}

// serve runs the watcher and the HTTP server until ctx is cancelled or one of
// them fails, then shuts the server down within the configured timeout.
func serve(ctx context.Context, settings *verge.Verge, cfg config.ServerConfig, ln net.Listener) error {
	logger := xglog.WithComponent("daemon")

	srv := &http.Server{
		Handler: api.New(settings, api.Config{
			EnableMetrics: cfg.EnableMetrics,
			EnableLogging: true,
			RateLimitRPM:  cfg.RateLimitRPM,
		}).Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	if cfg.WatchFile {
		if err := settings.Watch(gctx); err != nil {
			logger.Warn().
				Err(err).
				Str(xglog.FieldEvent, "watch.disabled").
				Str(xglog.FieldPath, settings.Path()).
				Msg("external edits will not be picked up")
		}
	}

	g.Go(func() error {
		logger.Info().
			Str(xglog.FieldEvent, "api.listening").
			Str("addr", ln.Addr().String()).
			Str(xglog.FieldPath, settings.Path()).
			Msg("serving settings API")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info().
			Str(xglog.FieldEvent, "daemon.shutdown").
			Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http: %w", err)
		}
		return settings.Close()
	})

	return g.Wait()
}
