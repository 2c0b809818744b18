// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/ManuGH/verge/internal/log"
	"github.com/ManuGH/verge/internal/verge"
)

const maxPatchBytes = 1 << 20

func (s *Server) handleGetConfig(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.settings.Config())
}

// handlePatchConfig applies a JSON patch. Absent or null keys leave the
// stored value alone; theme_setting replaces the stored theme as a whole.
func (s *Server) handlePatchConfig(w http.ResponseWriter, r *http.Request) {
	patch, err := decodePatch(http.MaxBytesReader(w, r.Body, maxPatchBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_patch", err)
		return
	}

	if err := s.settings.PatchConfig(patch); err != nil {
		logger := log.WithComponentFromContext(r.Context(), "api")
		logger.Error().
			Err(err).
			Str(log.FieldEvent, "verge.patch_failed").
			Msg("settings patch was not persisted")
		writeError(w, http.StatusInternalServerError, "save_failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodePatch(body io.Reader) (verge.Config, error) {
	var patch verge.Config
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&patch); err != nil {
		if errors.Is(err, io.EOF) {
			return verge.Config{}, errors.New("empty body")
		}
		return verge.Config{}, fmt.Errorf("decode patch: %w", err)
	}
	if dec.More() {
		return verge.Config{}, errors.New("trailing content after patch")
	}
	return patch, nil
}
