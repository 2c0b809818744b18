// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package verge

// Config is the verge.yaml schema. Nil means unset.
type Config struct {
	// i18n locale code
	Language *string `yaml:"language,omitempty" json:"language,omitempty"`

	// "light" or "dark"
	ThemeMode *string `yaml:"theme_mode,omitempty" json:"theme_mode,omitempty"`

	ThemeBlur    *bool `yaml:"theme_blur,omitempty" json:"theme_blur,omitempty"`
	TrafficGraph *bool `yaml:"traffic_graph,omitempty" json:"traffic_graph,omitempty"`

	EnableTunMode     *bool `yaml:"enable_tun_mode,omitempty" json:"enable_tun_mode,omitempty"`
	EnableAutoLaunch  *bool `yaml:"enable_auto_launch,omitempty" json:"enable_auto_launch,omitempty"`
	EnableSilentStart *bool `yaml:"enable_silent_start,omitempty" json:"enable_silent_start,omitempty"`

	EnableSystemProxy *bool   `yaml:"enable_system_proxy,omitempty" json:"enable_system_proxy,omitempty"`
	EnableProxyGuard  *bool   `yaml:"enable_proxy_guard,omitempty" json:"enable_proxy_guard,omitempty"`
	SystemProxyBypass *string `yaml:"system_proxy_bypass,omitempty" json:"system_proxy_bypass,omitempty"`

	// Seconds between system proxy re-assertions.
	ProxyGuardDuration *uint64 `yaml:"proxy_guard_duration,omitempty" json:"proxy_guard_duration,omitempty"`

	ThemeSetting *Theme `yaml:"theme_setting,omitempty" json:"theme_setting,omitempty"`
}

// Theme overrides the UI palette. Values are opaque and applied verbatim.
type Theme struct {
	PrimaryColor   *string `yaml:"primary_color,omitempty" json:"primary_color,omitempty"`
	SecondaryColor *string `yaml:"secondary_color,omitempty" json:"secondary_color,omitempty"`
	PrimaryText    *string `yaml:"primary_text,omitempty" json:"primary_text,omitempty"`
	SecondaryText  *string `yaml:"secondary_text,omitempty" json:"secondary_text,omitempty"`

	InfoColor    *string `yaml:"info_color,omitempty" json:"info_color,omitempty"`
	ErrorColor   *string `yaml:"error_color,omitempty" json:"error_color,omitempty"`
	WarningColor *string `yaml:"warning_color,omitempty" json:"warning_color,omitempty"`
	SuccessColor *string `yaml:"success_color,omitempty" json:"success_color,omitempty"`

	FontFamily   *string `yaml:"font_family,omitempty" json:"font_family,omitempty"`
	CSSInjection *string `yaml:"css_injection,omitempty" json:"css_injection,omitempty"`
}

// Ptr returns a pointer to v. Handy for building patches.
func Ptr[T any](v T) *T { return &v }
