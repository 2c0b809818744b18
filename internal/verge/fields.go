// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package verge

// field describes one optional attribute of a record. Every operation that
// walks a record (merge, clone, compare) goes through these tables, so a new
// field only has to be registered once.
type field[R any] struct {
	key     string
	present func(r *R) bool
	assign  func(dst, src *R) // deep-copies src's value (or nil) into dst
	equal   func(a, b *R) bool
}

func scalar[R any, T comparable](key string, get func(*R) **T) field[R] {
	return field[R]{
		key:     key,
		present: func(r *R) bool { return *get(r) != nil },
		assign:  func(dst, src *R) { *get(dst) = clonePtr(*get(src)) },
		equal:   func(a, b *R) bool { return ptrEqual(*get(a), *get(b)) },
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func ptrEqual[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

var configFields = []field[Config]{
	scalar("language", func(c *Config) **string { return &c.Language }),
	scalar("theme_mode", func(c *Config) **string { return &c.ThemeMode }),
	scalar("theme_blur", func(c *Config) **bool { return &c.ThemeBlur }),
	scalar("traffic_graph", func(c *Config) **bool { return &c.TrafficGraph }),
	scalar("enable_tun_mode", func(c *Config) **bool { return &c.EnableTunMode }),
	scalar("enable_auto_launch", func(c *Config) **bool { return &c.EnableAutoLaunch }),
	scalar("enable_silent_start", func(c *Config) **bool { return &c.EnableSilentStart }),
	scalar("enable_system_proxy", func(c *Config) **bool { return &c.EnableSystemProxy }),
	scalar("enable_proxy_guard", func(c *Config) **bool { return &c.EnableProxyGuard }),
	scalar("system_proxy_bypass", func(c *Config) **string { return &c.SystemProxyBypass }),
	scalar("proxy_guard_duration", func(c *Config) **uint64 { return &c.ProxyGuardDuration }),
	{
		// Whole-block: a present theme replaces the stored one, sub-fields are not merged.
		key:     "theme_setting",
		present: func(c *Config) bool { return c.ThemeSetting != nil },
		assign:  func(dst, src *Config) { dst.ThemeSetting = src.ThemeSetting.Clone() },
		equal:   func(a, b *Config) bool { return a.ThemeSetting.Equal(b.ThemeSetting) },
	},
}

var themeFields = []field[Theme]{
	scalar("primary_color", func(t *Theme) **string { return &t.PrimaryColor }),
	scalar("secondary_color", func(t *Theme) **string { return &t.SecondaryColor }),
	scalar("primary_text", func(t *Theme) **string { return &t.PrimaryText }),
	scalar("secondary_text", func(t *Theme) **string { return &t.SecondaryText }),
	scalar("info_color", func(t *Theme) **string { return &t.InfoColor }),
	scalar("error_color", func(t *Theme) **string { return &t.ErrorColor }),
	scalar("warning_color", func(t *Theme) **string { return &t.WarningColor }),
	scalar("success_color", func(t *Theme) **string { return &t.SuccessColor }),
	scalar("font_family", func(t *Theme) **string { return &t.FontFamily }),
	scalar("css_injection", func(t *Theme) **string { return &t.CSSInjection }),
}

// Keys lists the top-level keys of the document in file order.
func Keys() []string {
	out := make([]string, len(configFields))
	for i, f := range configFields {
		out[i] = f.key
	}
	return out
}

// ThemeKeys lists the keys of the theme_setting block in file order.
func ThemeKeys() []string {
	out := make([]string, len(themeFields))
	for i, f := range themeFields {
		out[i] = f.key
	}
	return out
}
