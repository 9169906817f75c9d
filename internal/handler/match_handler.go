package handler

import (
	"net/http"
	"strconv"

	"github.com/freeeve/battleship/internal/model"
	"github.com/freeeve/battleship/internal/repository"
)

const (
	defaultMatchLimit = 20
	maxMatchLimit     = 100
)

// MatchHandler serves finished match history.
type MatchHandler struct {
	repo repository.MatchRepository
}

// NewMatchHandler creates a MatchHandler.
func NewMatchHandler(repo repository.MatchRepository) *MatchHandler {
	return &MatchHandler{repo: repo}
}

// ListMatches handles GET /api/v1/matches?limit=
func (h *MatchHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	limit := defaultMatchLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxMatchLimit)
	}
	matches, err := h.repo.ListRecent(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if matches == nil {
		matches = []model.Match{}
	}
	writeJSON(w, http.StatusOK, matches)
}

// GetMatch handles GET /api/v1/matches/{id}
func (h *MatchHandler) GetMatch(w http.ResponseWriter, r *http.Request) {
	m, err := h.repo.FindMatch(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if m == nil {
		writeError(w, http.StatusNotFound, "match not found")
		return
	}
	writeJSON(w, http.StatusOK, m)
}
