package roster

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Fetcher retrieves the team-to-players mapping from the roster source.
type Fetcher interface {
	FetchTeams(ctx context.Context) (map[string][]string, error)
}

// HTTPFetcher fetches rosters over HTTP. The source may answer with either
// a JSON object of team name to player list, or CSV whose first row holds
// the team names with player names down each column.
type HTTPFetcher struct {
	url        string
	httpClient *http.Client
}

// NewHTTPFetcher creates a fetcher for the given roster URL.
func NewHTTPFetcher(url string) *HTTPFetcher {
	return &HTTPFetcher{
		url: url,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

var _ Fetcher = (*HTTPFetcher)(nil)

// FetchTeams implements Fetcher.
func (f *HTTPFetcher) FetchTeams(ctx context.Context) (map[string][]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build roster request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch roster: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch roster: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read roster response: %w", err)
	}

	return ParseTeams(body)
}

// ParseTeams decodes a roster document in either supported shape.
func ParseTeams(data []byte) (map[string][]string, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty roster document")
	}

	if trimmed[0] == '{' {
		var teams map[string][]string
		if err := json.Unmarshal(trimmed, &teams); err != nil {
			return nil, fmt.Errorf("parse roster JSON: %w", err)
		}
		return teams, nil
	}

	return parseTeamsCSV(trimmed)
}

// parseTeamsCSV reads the columnar CSV shape: row 0 names the teams, later
// rows carry one player per column. Blank cells are skipped and malformed
// rows dropped rather than failing the whole document.
func parseTeamsCSV(data []byte) (map[string][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("parse roster CSV header: %w", err)
	}

	names := make([]string, len(header))
	teams := make(map[string][]string)
	for i, name := range header {
		name = strings.TrimSpace(name)
		names[i] = name
		if name != "" {
			teams[name] = []string{}
		}
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed row: drop it, keep the rest.
			continue
		}
		for col, cell := range row {
			if col >= len(names) || names[col] == "" {
				continue
			}
			player := strings.TrimSpace(cell)
			if player == "" {
				continue
			}
			teams[names[col]] = append(teams[names[col]], player)
		}
	}

	return teams, nil
}
