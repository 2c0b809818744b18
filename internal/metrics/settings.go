// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package metrics holds the Prometheus collectors for the settings store.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	configPatchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "verge_config_patches_total",
		Help: "Settings patches applied, by save outcome",
	}, []string{"outcome"}) // outcome=success|failure

	configLoadFallbackTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "verge_config_load_fallback_total",
		Help: "Settings loads that fell back to the empty document",
	}, []string{"reason"}) // reason=missing|unreadable|malformed

	configReloadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "verge_config_reloads_total",
		Help: "Reloads of the settings file triggered by external edits",
	}, []string{"outcome"}) // outcome=applied|unchanged|rejected

	configSaveDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "verge_config_save_duration_seconds",
		Help:    "Time spent writing the settings file",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
	})
)

// IncConfigPatch counts a patch by save outcome.
func IncConfigPatch(outcome string) { configPatchesTotal.WithLabelValues(outcome).Inc() }

// IncConfigLoadFallback counts a load that yielded the empty document.
func IncConfigLoadFallback(reason string) { configLoadFallbackTotal.WithLabelValues(reason).Inc() }

// IncConfigReload counts a reload attempt by outcome.
func IncConfigReload(outcome string) { configReloadsTotal.WithLabelValues(outcome).Inc() }

// ObserveConfigSave records how long one save took.
func ObserveConfigSave(d time.Duration) { configSaveDuration.Observe(d.Seconds()) }
