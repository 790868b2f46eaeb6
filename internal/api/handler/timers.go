package handler

import (
	"encoding/json"
	"net/http"

	"github.com/RenierDuminy/CTFDA-scoring/internal/api/request"
	"github.com/RenierDuminy/CTFDA-scoring/internal/api/response"
	"github.com/RenierDuminy/CTFDA-scoring/internal/services/timer"
)

// TimersHandler handles match and interval timer endpoints
type TimersHandler struct {
	match    *timer.Countdown
	interval *timer.Interval
}

// NewTimersHandler creates a new timers handler
func NewTimersHandler(match *timer.Countdown, interval *timer.Interval) *TimersHandler {
	return &TimersHandler{
		match:    match,
		interval: interval,
	}
}

// MatchStatus handles GET /api/v1/timers/match
func (h *TimersHandler) MatchStatus(w http.ResponseWriter, r *http.Request) {
	rem, running := h.match.Remaining()
	response.JSON(w, http.StatusOK, response.TimerStatusFrom(rem, running))
}

// MatchStart handles POST /api/v1/timers/match/start
func (h *TimersHandler) MatchStart(w http.ResponseWriter, r *http.Request) {
	h.match.Start(r.Context())
	rem, running := h.match.Remaining()
	response.JSON(w, http.StatusOK, response.TimerStatusFrom(rem, running))
}

// MatchStop handles POST /api/v1/timers/match/stop
func (h *TimersHandler) MatchStop(w http.ResponseWriter, r *http.Request) {
	h.match.Stop(r.Context())
	rem, running := h.match.Remaining()
	response.JSON(w, http.StatusOK, response.TimerStatusFrom(rem, running))
}

// MatchReset handles POST /api/v1/timers/match/reset
func (h *TimersHandler) MatchReset(w http.ResponseWriter, r *http.Request) {
	var req request.ResetTimerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// Empty body resets to the default duration
		req = request.ResetTimerRequest{}
	}

	h.match.Reset(r.Context(), req.Minutes)
	rem, running := h.match.Remaining()
	response.JSON(w, http.StatusOK, response.TimerStatusFrom(rem, running))
}

// IntervalStatus handles GET /api/v1/timers/interval
func (h *TimersHandler) IntervalStatus(w http.ResponseWriter, r *http.Request) {
	rem, running := h.interval.Remaining()
	response.JSON(w, http.StatusOK, response.TimerStatusFrom(rem, running))
}

// IntervalStart handles POST /api/v1/timers/interval/start
func (h *TimersHandler) IntervalStart(w http.ResponseWriter, r *http.Request) {
	h.interval.Start()
	rem, running := h.interval.Remaining()
	response.JSON(w, http.StatusOK, response.TimerStatusFrom(rem, running))
}

// IntervalStop handles POST /api/v1/timers/interval/stop
func (h *TimersHandler) IntervalStop(w http.ResponseWriter, r *http.Request) {
	h.interval.Stop()
	rem, running := h.interval.Remaining()
	response.JSON(w, http.StatusOK, response.TimerStatusFrom(rem, running))
}

// IntervalReset handles POST /api/v1/timers/interval/reset
func (h *TimersHandler) IntervalReset(w http.ResponseWriter, r *http.Request) {
	var req request.ResetTimerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		req = request.ResetTimerRequest{}
	}

	h.interval.Reset(req.Seconds)
	rem, running := h.interval.Remaining()
	response.JSON(w, http.StatusOK, response.TimerStatusFrom(rem, running))
}
