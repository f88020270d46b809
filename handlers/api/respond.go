// Package api holds the JSON response helpers shared by the HTTP handlers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"campusverify/engine"
	"campusverify/store"
)

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// WriteError writes a JSON error body with the given status.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]interface{}{
		"success": false,
		"error":   message,
	})
}

// WriteEngineError maps engine and store errors onto HTTP statuses:
// validation 400, missing 404, insufficient balance 402, anomaly policy
// 403, duplicates and repeats 409. Anything else is a 500.
func WriteEngineError(w http.ResponseWriter, err error) {
	var verr *engine.ValidationError
	var berr *engine.InsufficientBalanceError
	var aerr *engine.AnomalyBlockedError
	var cerr *engine.ConflictError

	switch {
	case errors.As(err, &verr):
		WriteError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, store.ErrNotFound):
		WriteError(w, http.StatusNotFound, "not found")
	case errors.As(err, &berr):
		WriteError(w, http.StatusPaymentRequired, berr.Error())
	case errors.As(err, &aerr):
		WriteError(w, http.StatusForbidden, aerr.Error())
	case errors.As(err, &cerr):
		WriteError(w, http.StatusConflict, cerr.Error())
	default:
		WriteError(w, http.StatusInternalServerError, "internal error")
	}
}
