package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/MikeSquared-Agency/Valumetric/internal/calcerr"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return false
	}
	return true
}

// writeError maps calculation input errors to 400 with their kind; anything
// else is logged and reported as a 500.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var ce *calcerr.Error
	if errors.As(err, &ce) {
		body := map[string]string{"error": err.Error(), "kind": ce.Kind.String()}
		if ce.Field != "" {
			body["field"] = ce.Field
		}
		writeJSON(w, http.StatusBadRequest, body)
		return
	}
	logger.Error("request failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}
