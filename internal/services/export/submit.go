package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/RenierDuminy/CTFDA-scoring/internal/dependencies/clock"
	"github.com/RenierDuminy/CTFDA-scoring/internal/model"
)

// SubmitPayload is the body posted to the submission sink.
type SubmitPayload struct {
	GameID string             `json:"GameID"`
	Date   string             `json:"Date"`
	Logs   []model.PointEntry `json:"logs"`
}

// Submitter posts finished match logs to an external collection endpoint.
// Submission is best-effort: a failure is logged and reported to the caller
// but never blocks the local CSV export.
type Submitter struct {
	url        string
	httpClient *http.Client
	clock      clock.Clock
	logger     *slog.Logger
}

// NewSubmitter creates a submitter for the given sink URL. An empty URL is
// allowed; Submit then reports ErrSinkNotConfigured.
func NewSubmitter(url string, clk clock.Clock, logger *slog.Logger) *Submitter {
	return &Submitter{
		url: url,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		clock:  clk,
		logger: logger,
	}
}

// Configured reports whether a sink URL was provided.
func (s *Submitter) Configured() bool {
	return s.url != ""
}

// Submit posts the snapshot's point log to the sink.
func (s *Submitter) Submit(ctx context.Context, snap *model.Snapshot) error {
	if !s.Configured() {
		return model.ErrSinkNotConfigured
	}

	payload := SubmitPayload{
		GameID: snap.MatchID(),
		Date:   s.clock.Now().Format("2006-01-02"),
		Logs:   snap.PointLog,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build submission request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Warn("submission failed",
			slog.String("error", err.Error()))
		return fmt.Errorf("submit logs: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.logger.Warn("submission rejected",
			slog.Int("status", resp.StatusCode))
		return fmt.Errorf("submit logs: unexpected status %d", resp.StatusCode)
	}

	s.logger.Info("logs submitted",
		slog.String("game_id", payload.GameID),
		slog.Int("entries", len(payload.Logs)))
	return nil
}
