package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/RenierDuminy/CTFDA-scoring/internal/api/request"
	"github.com/RenierDuminy/CTFDA-scoring/internal/api/response"
	"github.com/RenierDuminy/CTFDA-scoring/internal/model"
	"github.com/RenierDuminy/CTFDA-scoring/internal/services/session"
)

// PointsHandler handles point log endpoints
type PointsHandler struct {
	manager *session.Manager
}

// NewPointsHandler creates a new points handler
func NewPointsHandler(manager *session.Manager) *PointsHandler {
	return &PointsHandler{manager: manager}
}

// List handles GET /api/v1/points
func (h *PointsHandler) List(w http.ResponseWriter, r *http.Request) {
	snap := h.manager.Snapshot()
	entries := make([]response.PointEntry, len(snap.PointLog))
	for i, e := range snap.PointLog {
		entries[i] = response.PointEntryFromModel(e)
	}
	response.JSON(w, http.StatusOK, entries)
}

// Create handles POST /api/v1/points
func (h *PointsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.AddPointRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	entry, err := h.manager.AppendPoint(model.TeamLetter(req.Team), req.Scorer, req.Assist)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.PointEntryFromModel(entry))
}

// Update handles PATCH /api/v1/points/{id}
func (h *PointsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req request.EditPointRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if err := h.manager.UpdatePoint(id, req.Scorer, req.Assist); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Delete handles DELETE /api/v1/points/{id}
func (h *PointsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	entry, err := h.manager.RemovePoint(id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PointEntryFromModel(entry))
}
