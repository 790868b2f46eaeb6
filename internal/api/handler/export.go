package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/RenierDuminy/CTFDA-scoring/internal/api/response"
	"github.com/RenierDuminy/CTFDA-scoring/internal/services/export"
	"github.com/RenierDuminy/CTFDA-scoring/internal/services/session"
)

// ExportHandler handles CSV download and log submission endpoints
type ExportHandler struct {
	manager   *session.Manager
	submitter *export.Submitter
}

// NewExportHandler creates a new export handler
func NewExportHandler(manager *session.Manager, submitter *export.Submitter) *ExportHandler {
	return &ExportHandler{
		manager:   manager,
		submitter: submitter,
	}
}

// DownloadCSV handles GET /api/v1/export/csv
func (h *ExportHandler) DownloadCSV(w http.ResponseWriter, r *http.Request) {
	snap := h.manager.Snapshot()

	data, err := export.WriteCSV(snap)
	if err != nil {
		WriteError(w, err)
		return
	}

	filename := export.Filename(snap.MatchID())
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// Submit handles POST /api/v1/export/submit
func (h *ExportHandler) Submit(w http.ResponseWriter, r *http.Request) {
	snap := h.manager.Snapshot()

	if err := h.submitter.Submit(r.Context(), snap); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SubmitResult{
		Submitted: true,
		GameID:    snap.MatchID(),
		Entries:   len(snap.PointLog),
	})
}
