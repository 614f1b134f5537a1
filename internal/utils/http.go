package utils

import (
	"encoding/json"
	"net/http"

	"github.com/jmrodas/parkings-api/internal/logger"
)

// WriteJSON marshals v into the response with the given status code. Encoding
// failures are logged; at that point the header is already written so the
// client sees a truncated body.
func WriteJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log := logger.FromRequest(r)
		log.Error().Err(err).Msg("error encoding JSON response")
	}
}
