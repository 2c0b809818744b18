// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ManuGH/verge/internal/verge"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, path string) (*verge.Verge, http.Handler) {
	t.Helper()
	v := verge.New(path)
	return v, New(v, Config{EnableMetrics: true}).Handler()
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestGetConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "verge.yaml")
	require.NoError(t, verge.Save(path, verge.Config{
		ThemeMode:    verge.Ptr("dark"),
		TrafficGraph: verge.Ptr(false),
	}, verge.Header))
	_, h := newTestServer(t, path)

	rec := do(t, h, http.MethodGet, "/api/verge", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"theme_mode":"dark","traffic_graph":false}`, rec.Body.String())
}

func TestPatchConfig_AppliesPresentFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "verge.yaml")
	require.NoError(t, verge.Save(path, verge.Config{
		ThemeMode:    verge.Ptr("dark"),
		TrafficGraph: verge.Ptr(true),
		ThemeSetting: &verge.Theme{PrimaryColor: verge.Ptr("#fff")},
	}, verge.Header))
	v, h := newTestServer(t, path)

	rec := do(t, h, http.MethodPatch, "/api/verge",
		`{"theme_mode":"light","language":null,"theme_setting":{"secondary_color":"#000"}}`)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	want := verge.Config{
		ThemeMode:    verge.Ptr("light"),
		TrafficGraph: verge.Ptr(true),
		ThemeSetting: &verge.Theme{SecondaryColor: verge.Ptr("#000")},
	}
	if diff := cmp.Diff(want, v.Config()); diff != "" {
		t.Errorf("memory (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, verge.Load(path)); diff != "" {
		t.Errorf("disk (-want +got):\n%s", diff)
	}
}

func TestPatchConfig_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty body", body: ""},
		{name: "not json", body: "theme_mode: light"},
		{name: "unknown key", body: `{"colour":"red"}`},
		{name: "unknown theme key", body: `{"theme_setting":{"glow":1}}`},
		{name: "wrong type", body: `{"theme_blur":"yes"}`},
		{name: "negative duration", body: `{"proxy_guard_duration":-1}`},
		{name: "trailing content", body: `{} {}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "verge.yaml")
			v, h := newTestServer(t, path)

			rec := do(t, h, http.MethodPatch, "/api/verge", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.True(t, v.Config().IsZero(), "rejected patch must not touch the document")
		})
	}
}

func TestPatchConfig_SaveFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "verge.yaml")
	v, h := newTestServer(t, path)

	rec := do(t, h, http.MethodPatch, "/api/verge", `{"enable_tun_mode":true}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "save_failed", body["error"])

	// The merge happened before the failed write.
	require.NotNil(t, v.Config().EnableTunMode)
	assert.True(t, *v.Config().EnableTunMode)
}

func TestHealthAndMetrics(t *testing.T) {
	_, h := newTestServer(t, filepath.Join(t.TempDir(), "verge.yaml"))

	rec := do(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	_ = do(t, h, http.MethodGet, "/api/verge", "")
	rec = do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "verge_http_request_duration_seconds")
}

func TestMethodNotAllowed(t *testing.T) {
	_, h := newTestServer(t, filepath.Join(t.TempDir(), "verge.yaml"))
	rec := do(t, h, http.MethodDelete, "/api/verge", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
