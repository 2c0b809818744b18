// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package verge

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge_ThemeModeOnly(t *testing.T) {
	base := Config{ThemeMode: Ptr("dark"), TrafficGraph: Ptr(true)}
	got := base.Merge(Config{ThemeMode: Ptr("light")})

	assertConfig(t, Config{ThemeMode: Ptr("light"), TrafficGraph: Ptr(true)}, got)
}

func TestMerge_ThemeBlockReplacedWhole(t *testing.T) {
	base := Config{ThemeSetting: &Theme{PrimaryColor: Ptr("#fff")}}
	got := base.Merge(Config{ThemeSetting: &Theme{SecondaryColor: Ptr("#000")}})

	assertConfig(t, Config{ThemeSetting: &Theme{SecondaryColor: Ptr("#000")}}, got)
	assert.Nil(t, got.ThemeSetting.PrimaryColor, "primary_color must not survive a theme patch")
}

func TestMerge_EmptyThemeClearsOverrides(t *testing.T) {
	base := fullConfig()
	got := base.Merge(Config{ThemeSetting: &Theme{}})

	require.NotNil(t, got.ThemeSetting)
	assert.True(t, got.ThemeSetting.Equal(&Theme{}))
}

func TestMerge_PresencePerField(t *testing.T) {
	full := fullConfig()
	other := Config{
		Language:           Ptr("en"),
		ThemeMode:          Ptr("light"),
		ThemeBlur:          Ptr(false),
		TrafficGraph:       Ptr(true),
		EnableTunMode:      Ptr(false),
		EnableAutoLaunch:   Ptr(true),
		EnableSilentStart:  Ptr(false),
		EnableSystemProxy:  Ptr(false),
		EnableProxyGuard:   Ptr(true),
		SystemProxyBypass:  Ptr("<local>"),
		ProxyGuardDuration: Ptr(uint64(10)),
		ThemeSetting:       &Theme{FontFamily: Ptr("mono")},
	}

	// Each single-field patch must change exactly that field.
	for _, f := range configFields {
		t.Run(f.key, func(t *testing.T) {
			var patch Config
			f.assign(&patch, &other)
			require.Equal(t, []string{f.key}, patch.PresentKeys())

			got := full.Merge(patch)
			assert.Equal(t, []string{f.key}, Changed(full, got))
			assert.True(t, f.equal(&got, &other), "patched field takes the patch value")
		})
	}
}

func TestMerge_AbsentPatchIsNoop(t *testing.T) {
	full := fullConfig()
	assertConfig(t, full, full.Merge(Config{}))
	assertConfig(t, Config{}, Config{}.Merge(Config{}))
}

func TestMerge_Idempotent(t *testing.T) {
	base := Config{Language: Ptr("en"), EnableTunMode: Ptr(false)}
	patch := Config{
		EnableTunMode:      Ptr(true),
		ProxyGuardDuration: Ptr(uint64(5)),
		ThemeSetting:       &Theme{InfoColor: Ptr("#111")},
	}

	once := base.Merge(patch)
	twice := once.Merge(patch)
	assertConfig(t, once, twice)
}

func TestMerge_DoesNotAliasInputs(t *testing.T) {
	base := Config{Language: Ptr("en")}
	patch := Config{ThemeMode: Ptr("dark"), ThemeSetting: &Theme{PrimaryColor: Ptr("#fff")}}

	got := base.Merge(patch)
	*patch.ThemeMode = "light"
	*patch.ThemeSetting.PrimaryColor = "#000"
	*got.Language = "de"

	assert.Equal(t, "dark", *got.ThemeMode)
	assert.Equal(t, "#fff", *got.ThemeSetting.PrimaryColor)
	assert.Equal(t, "en", *base.Language)
}

func TestClone_Deep(t *testing.T) {
	orig := fullConfig()
	cp := orig.Clone()
	assertConfig(t, orig, cp)

	*cp.ThemeSetting.CSSInjection = "changed"
	*cp.ProxyGuardDuration = 99
	assert.NotEqual(t, *orig.ThemeSetting.CSSInjection, *cp.ThemeSetting.CSSInjection)
	assert.Equal(t, uint64(30), *orig.ProxyGuardDuration)
}

func TestChanged(t *testing.T) {
	old := Config{ThemeMode: Ptr("dark"), TrafficGraph: Ptr(true)}
	updated := Config{ThemeMode: Ptr("light"), TrafficGraph: Ptr(true), Language: Ptr("en")}

	assert.Equal(t, []string{"language", "theme_mode"}, Changed(old, updated))
	assert.Empty(t, Changed(old, old.Clone()))
}

func TestThemeEqual_NilVersusEmpty(t *testing.T) {
	var nilTheme *Theme
	assert.True(t, nilTheme.Equal(nil))
	assert.False(t, nilTheme.Equal(&Theme{}))
	assert.False(t, (&Theme{}).Equal(nil))
}

func TestIsZero(t *testing.T) {
	assert.True(t, Config{}.IsZero())
	assert.False(t, Config{TrafficGraph: Ptr(false)}.IsZero(), "explicit false is an override")
}

// Registering a struct field without a descriptor would silently drop it
// from merges and clones.
func TestFieldTables_CoverEveryStructField(t *testing.T) {
	assert.Equal(t, yamlKeys(reflect.TypeOf(Config{})), Keys())
	assert.Equal(t, yamlKeys(reflect.TypeOf(Theme{})), ThemeKeys())

	assert.True(t, fullConfig().Equal(fullConfig().Clone()))
	assert.Len(t, fullConfig().PresentKeys(), len(configFields))
}

func yamlKeys(typ reflect.Type) []string {
	keys := make([]string, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		tag := typ.Field(i).Tag.Get("yaml")
		name, _, _ := strings.Cut(tag, ",")
		keys = append(keys, name)
	}
	return keys
}
