package utils

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

type M map[string]any

// RespondWithError writes {"message": msg, "error": detail}; detail is
// omitted when empty.
func RespondWithError(w http.ResponseWriter, code int, msg, detail string) {
	body := M{"message": msg}
	if detail != "" {
		body["error"] = detail
	}
	RespondWithJSON(w, code, body)
}

// Sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}
