package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/pkg/errors"
)

// maxSearchLimit caps the limit query parameter.
const maxSearchLimit = 100

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// parseLimit reads an optional positive result limit. ok is false when raw
// is empty; values above maxSearchLimit are clamped.
func parseLimit(raw string) (limit int, ok bool, err error) {
	if raw == "" {
		return 0, false, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, false, errors.Errorf("limit must be a positive integer, got %q", raw)
	}
	if n > maxSearchLimit {
		n = maxSearchLimit
	}
	return n, true, nil
}
