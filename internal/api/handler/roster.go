package handler

import (
	"net/http"

	"github.com/RenierDuminy/CTFDA-scoring/internal/api/response"
	"github.com/RenierDuminy/CTFDA-scoring/internal/services/roster"
)

// RosterHandler handles roster endpoints
type RosterHandler struct {
	roster *roster.Service
}

// NewRosterHandler creates a new roster handler
func NewRosterHandler(rosterService *roster.Service) *RosterHandler {
	return &RosterHandler{roster: rosterService}
}

// Get handles GET /api/v1/roster
func (h *RosterHandler) Get(w http.ResponseWriter, r *http.Request) {
	teams, err := h.roster.Teams(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Roster{Teams: teams})
}

// Refresh handles POST /api/v1/roster/refresh
func (h *RosterHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	teams, err := h.roster.Refresh(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Roster{Teams: teams})
}
