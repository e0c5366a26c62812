package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cyberguardian/academy/internal/game"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// writeGameError maps domain errors onto HTTP statuses: rejected
// operations are 409 (the request was well-formed but the state refuses
// it), anything else is a 500.
func writeGameError(w http.ResponseWriter, err error) {
	var invalid *game.InvalidOperationError
	if errors.As(err, &invalid) {
		writeError(w, http.StatusConflict, invalid.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, "internal error")
}

// decodeBody reads a JSON request body into v, rejecting unknown fields.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
