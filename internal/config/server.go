// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"strings"
	"time"
)

// ServerConfig holds the daemon's HTTP and watcher settings.
type ServerConfig struct {
	// ListenAddr is the address to listen on. The UI runs on the same host,
	// so the default binds loopback only.
	ListenAddr string

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// RateLimitRPM caps requests per client IP per minute; 0 disables it.
	RateLimitRPM int

	EnableMetrics bool
	WatchFile     bool
}

const (
	defaultListenAddr      = "127.0.0.1:33331"
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 10 * time.Second
	defaultIdleTimeout     = 120 * time.Second
	defaultShutdownTimeout = 5 * time.Second
	defaultRateLimitRPM    = 600
)

// ParseServerConfig reads server configuration from VERGE_* environment variables.
func ParseServerConfig() ServerConfig {
	listen := strings.TrimSpace(ParseString("VERGE_LISTEN", defaultListenAddr))
	if listen == "" {
		listen = defaultListenAddr
	}

	shutdownTimeout := ParseDuration("VERGE_SHUTDOWN_TIMEOUT", defaultShutdownTimeout)
	if shutdownTimeout < time.Second {
		shutdownTimeout = time.Second
	}

	rpm := ParseInt("VERGE_RATE_LIMIT_RPM", defaultRateLimitRPM)
	if rpm < 0 {
		rpm = 0
	}

	return ServerConfig{
		ListenAddr:      listen,
		ReadTimeout:     ParseDuration("VERGE_READ_TIMEOUT", defaultReadTimeout),
		WriteTimeout:    ParseDuration("VERGE_WRITE_TIMEOUT", defaultWriteTimeout),
		IdleTimeout:     ParseDuration("VERGE_IDLE_TIMEOUT", defaultIdleTimeout),
		ShutdownTimeout: shutdownTimeout,
		RateLimitRPM:    rpm,
		EnableMetrics:   ParseBool("VERGE_METRICS", true),
		WatchFile:       ParseBool("VERGE_WATCH", true),
	}
}
