package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/battleship/internal/service"
	"github.com/freeeve/battleship/pkg/battleship"
)

// maxBodyBytes caps decoded request bodies.
const maxBodyBytes = 64 << 10

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Error encoding response")
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// decodeJSON reads and decodes JSON from a request body.
func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes)).Decode(v)
}

// writeServiceError maps PlayService errors to HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidSize),
		errors.Is(err, service.ErrUnknownDifficulty),
		errors.Is(err, service.ErrUnknownShip),
		errors.Is(err, service.ErrInvalidOrient),
		errors.Is(err, service.ErrOutOfBounds):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotPlacing),
		errors.Is(err, service.ErrNotPlaying),
		errors.Is(err, service.ErrShipPlaced),
		errors.Is(err, service.ErrRepeatShot),
		errors.Is(err, battleship.ErrGameOver):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidPlacement):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		log.Error().Err(err).Msg("Unhandled service error")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
