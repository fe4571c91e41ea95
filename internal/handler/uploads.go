// Copyright (c) 2025-2026 Jaden Sa
// SPDX-License-Identifier: MIT

package handler

import (
	"log/slog"
	"net/http"

	"github.com/jadensa-bit/scanly/internal/imaging"
)

// Upload handles POST /api/uploads (multipart form, field "file").
// Success returns { url } for the caller to swap in for its optimistic
// local preview; any failure is a signal to revert that preview.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(imaging.MaxUploadBytes); err != nil {
		writeJSONError(w, http.StatusBadRequest, codeValidation, "Invalid upload")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, codeValidation, "Missing file field")
		return
	}
	defer func() { _ = file.Close() }()

	result, err := h.images.Process(file, header.Filename)
	if err != nil {
		slog.Warn("upload rejected", "filename", header.Filename, "error", err)
		writeJSONError(w, http.StatusUnprocessableEntity, codeValidation, "Could not process this image")
		return
	}

	writeJSONSuccess(w, map[string]any{
		"url":      result.URL,
		"thumbUrl": result.ThumbURL,
		"width":    result.Width,
		"height":   result.Height,
	})
}
