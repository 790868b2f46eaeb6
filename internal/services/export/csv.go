package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/RenierDuminy/CTFDA-scoring/internal/model"
)

const filenameStemLimit = 120

// WriteCSV renders the point log as a CSV document, one row per entry in
// log order. Output uses CRLF line endings so spreadsheet tools on every
// platform open it cleanly.
func WriteCSV(snap *model.Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.UseCRLF = true

	if err := w.Write([]string{"GameID", "Time", "Team", "Score", "Assist"}); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, entry := range snap.PointLog {
		row := []string{
			entry.MatchID,
			entry.RecordedAt,
			entry.Team,
			entry.Scorer,
			entry.Assist,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// Filename builds the download filename for a match, sanitizing characters
// that are unsafe on common filesystems and capping the stem length.
func Filename(matchID string) string {
	stem := sanitizeStem(matchID)
	if stem == "" {
		stem = "match"
	}
	return stem + ".csv"
}

func sanitizeStem(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r < 0x20 || r == 0x7f:
			b.WriteRune('_')
		case strings.ContainsRune(`/\:*?"<>|`, r):
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}
	stem := strings.TrimSpace(b.String())
	if len(stem) > filenameStemLimit {
		stem = stem[:filenameStemLimit]
	}
	return stem
}
