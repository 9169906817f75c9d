package handler

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/battleship/internal/auth"
	"github.com/freeeve/battleship/internal/service"
	"github.com/freeeve/battleship/pkg/battleship"
)

// GameHandler serves the human-vs-AI game endpoints.
type GameHandler struct {
	svc    *service.PlayService
	jwtMgr *auth.JWTManager
}

// NewGameHandler creates a GameHandler.
func NewGameHandler(svc *service.PlayService, jwtMgr *auth.JWTManager) *GameHandler {
	return &GameHandler{svc: svc, jwtMgr: jwtMgr}
}

// createResponse carries the session token alongside the first snapshot.
type createResponse struct {
	Game      *service.Snapshot `json:"game"`
	Token     string            `json:"token"`
	ExpiresIn int               `json:"expires_in"` // seconds
}

// CreateGame handles POST /api/v1/games. It is the only unauthenticated
// game route; the token it returns unlocks the others.
func (h *GameHandler) CreateGame(w http.ResponseWriter, r *http.Request) {
	var req service.CreateInput
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	snap, err := h.svc.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	token, err := h.jwtMgr.GenerateSessionToken(snap.ID)
	if err != nil {
		log.Error().Err(err).Str("gameId", snap.ID).Msg("Failed to sign session token")
		writeError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}
	writeJSON(w, http.StatusCreated, createResponse{
		Game:      snap,
		Token:     token,
		ExpiresIn: int(h.jwtMgr.Expiry().Seconds()),
	})
}

// GetGame handles GET /api/v1/games/{id}
func (h *GameHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	id, ok := authorizedGame(w, r)
	if !ok {
		return
	}
	snap, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// PreviewPlacement handles POST /api/v1/games/{id}/placement/preview
func (h *GameHandler) PreviewPlacement(w http.ResponseWriter, r *http.Request) {
	id, ok := authorizedGame(w, r)
	if !ok {
		return
	}
	var req service.PlacementInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	preview, err := h.svc.PreviewPlacement(r.Context(), id, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, preview)
}

// PlaceShip handles POST /api/v1/games/{id}/ships
func (h *GameHandler) PlaceShip(w http.ResponseWriter, r *http.Request) {
	id, ok := authorizedGame(w, r)
	if !ok {
		return
	}
	var req service.PlacementInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	snap, err := h.svc.PlaceShip(r.Context(), id, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// Fire handles POST /api/v1/games/{id}/shots
func (h *GameHandler) Fire(w http.ResponseWriter, r *http.Request) {
	id, ok := authorizedGame(w, r)
	if !ok {
		return
	}
	var req battleship.Coord
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	res, err := h.svc.Fire(r.Context(), id, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// AbortGame handles DELETE /api/v1/games/{id}
func (h *GameHandler) AbortGame(w http.ResponseWriter, r *http.Request) {
	id, ok := authorizedGame(w, r)
	if !ok {
		return
	}
	if err := h.svc.Abort(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// authorizedGame returns the {id} path value if the caller's token was
// issued for it.
func authorizedGame(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("id")
	if id == "" || auth.GameIDFromContext(r.Context()) != id {
		writeError(w, http.StatusForbidden, "token does not grant access to this game")
		return "", false
	}
	return id, true
}
