// Copyright (c) 2025-2026 Jaden Sa
// SPDX-License-Identifier: MIT

package handler

import (
	"encoding/json"
	"net/http"
)

// Error codes returned in JSON error bodies.
const (
	codeValidation    = "validation_error"
	codeLoginRequired = "login_required"
	codeNotFound      = "not_found"
	codeConfiguration = "configuration_error"
	codeTransient     = "transient_error"
	codeForbidden     = "forbidden"
)

// writeJSONError writes `{ ok: false, error, code }` with a status.
func writeJSONError(w http.ResponseWriter, statusCode int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"ok":    false,
		"code":  code,
		"error": message,
	})
}

// writeJSONSuccess writes `{ ok: true, ... }`.
func writeJSONSuccess(w http.ResponseWriter, data map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	if data == nil {
		data = make(map[string]any)
	}
	data["ok"] = true
	_ = json.NewEncoder(w).Encode(data)
}
