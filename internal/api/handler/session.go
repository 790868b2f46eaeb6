package handler

import (
	"encoding/json"
	"net/http"

	"github.com/RenierDuminy/CTFDA-scoring/internal/api/request"
	"github.com/RenierDuminy/CTFDA-scoring/internal/api/response"
	"github.com/RenierDuminy/CTFDA-scoring/internal/model"
	"github.com/RenierDuminy/CTFDA-scoring/internal/services/session"
	"github.com/RenierDuminy/CTFDA-scoring/internal/storage"
)

// SessionHandler handles session-level endpoints
type SessionHandler struct {
	manager *session.Manager
	gate    *session.Gate
	store   *storage.Store
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(manager *session.Manager, gate *session.Gate, store *storage.Store) *SessionHandler {
	return &SessionHandler{
		manager: manager,
		gate:    gate,
		store:   store,
	}
}

// Get handles GET /api/v1/session
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	snap := h.manager.Snapshot()
	response.JSON(w, http.StatusOK, response.SessionFromModel(snap, h.manager.Dirty()))
}

// Flush handles POST /api/v1/session/flush
func (h *SessionHandler) Flush(w http.ResponseWriter, r *http.Request) {
	if !h.manager.Flush(r.Context()) {
		WriteError(w, model.ErrStoreFull)
		return
	}
	response.JSON(w, http.StatusOK, response.FlushResult{Flushed: true})
}

// Reset handles POST /api/v1/session/reset
func (h *SessionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.manager.Reset(r.Context())
	snap := h.manager.Snapshot()
	response.JSON(w, http.StatusOK, response.SessionFromModel(snap, h.manager.Dirty()))
}

// GetRestore handles GET /api/v1/session/restore
func (h *SessionHandler) GetRestore(w http.ResponseWriter, r *http.Request) {
	pending := h.gate.Pending()
	if pending == nil {
		response.JSON(w, http.StatusOK, response.RestorePending{Pending: false})
		return
	}

	view := response.SessionFromModel(pending, false)
	response.JSON(w, http.StatusOK, response.RestorePending{Pending: true, Session: &view})
}

// DecideRestore handles POST /api/v1/session/restore
func (h *SessionHandler) DecideRestore(w http.ResponseWriter, r *http.Request) {
	var req request.RestoreDecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if err := h.gate.Resolve(req.Keep); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// SetTeams handles PATCH /api/v1/session/teams
func (h *SessionHandler) SetTeams(w http.ResponseWriter, r *http.Request) {
	var req request.SetTeamsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	h.manager.SetTeams(req.TeamAName, req.TeamBName, req.TeamARoster, req.TeamBRoster)
	snap := h.manager.Snapshot()
	response.JSON(w, http.StatusOK, response.SessionFromModel(snap, h.manager.Dirty()))
}

// SetPossession handles PATCH /api/v1/session/possession
func (h *SessionHandler) SetPossession(w http.ResponseWriter, r *http.Request) {
	var req request.SetPossessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	side := model.Side(req.Start)
	if side != model.SideM && side != model.SideF {
		WriteError(w, NewInvalidRequestError("start must be M or F"))
		return
	}

	h.manager.SetPossessionStart(side)
	snap := h.manager.Snapshot()
	response.JSON(w, http.StatusOK, response.SessionFromModel(snap, h.manager.Dirty()))
}

// SetClockLabel handles PATCH /api/v1/session/clock-label
func (h *SessionHandler) SetClockLabel(w http.ResponseWriter, r *http.Request) {
	var req request.SetClockLabelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	h.manager.SetClockLabel(req.Label)
	response.NoContent(w)
}

// Usage handles GET /api/v1/session/usage
func (h *SessionHandler) Usage(w http.ResponseWriter, r *http.Request) {
	info, err := h.store.Usage(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.UsageFromInfo(info))
}
