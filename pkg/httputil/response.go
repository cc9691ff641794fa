// Package httputil provides HTTP handler utilities for consistent
// error handling, JSON encoding, and request middleware.
package httputil

import (
	"encoding/json"
	"net/http"
)

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// WriteErrorCode writes the API's standard error envelope
// {"error": code} with the given status.
func WriteErrorCode(w http.ResponseWriter, status int, code string) {
	WriteJSON(w, status, map[string]string{"error": code}) //nolint:errcheck
}

// WriteErrorDetail writes the error envelope with one extra field,
// e.g. {"error":"stats_query_failed","detail":...}.
func WriteErrorDetail(w http.ResponseWriter, status int, code, key, value string) {
	WriteJSON(w, status, map[string]string{ //nolint:errcheck
		"error": code,
		key:     value,
	})
}
