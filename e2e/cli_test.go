package e2e_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RenierDuminy/CTFDA-scoring/internal/api"
	"github.com/RenierDuminy/CTFDA-scoring/internal/factory"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(projectRoot, "bin", "scorekeeper-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/scorekeeper")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	app, err := factory.New(factory.Config{Logger: logger})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:        logger,
		Manager:       app.Manager,
		Gate:          app.Gate,
		Store:         app.Store,
		MatchTimer:    app.MatchTimer,
		IntervalTimer: app.IntervalTimer,
		RosterService: app.RosterService,
		Submitter:     app.Submitter,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	// Wait for server to be ready
	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/api/v1/health")

	return &testServer{
		addr: serverURL,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing
type pointEntry struct {
	ID     string `json:"id"`
	Team   string `json:"team"`
	Scorer string `json:"scorer"`
	Assist string `json:"assist"`
	Marker string `json:"marker"`
}

type sessionView struct {
	TeamAName  string       `json:"team_a_name"`
	TeamBName  string       `json:"team_b_name"`
	TeamAScore int          `json:"team_a_score"`
	TeamBScore int          `json:"team_b_score"`
	PointLog   []pointEntry `json:"point_log"`
	Dirty      bool         `json:"dirty"`
}

type timerStatus struct {
	Running bool   `json:"running"`
	Display string `json:"display"`
}

func TestCLIFullMatch(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}

	ts := startTestServer(t)
	defer ts.shutdown()
	cli := newCLIRunner(t, ts.addr)

	// Health check
	out, err := cli.run("health")
	require.NoError(t, err, out)
	assert.Contains(t, out, "ok")

	// Name the teams
	out, err = cli.run("session", "teams", "Chilli", "Vipers")
	require.NoError(t, err, out)

	var session sessionView
	require.NoError(t, json.Unmarshal([]byte(out), &session))
	assert.Equal(t, "Chilli", session.TeamAName)
	assert.Equal(t, "Vipers", session.TeamBName)

	// Record points
	out, err = cli.run("score", "add", "A", "Alice", "Bob")
	require.NoError(t, err, out)

	var entry pointEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entry))
	assert.Equal(t, "Chilli", entry.Team)
	assert.Equal(t, "M", entry.Marker)

	out, err = cli.run("score", "add", "B", "Carol", "Dana")
	require.NoError(t, err, out)

	// Scoreboard reflects the log
	out, err = cli.run("session", "get")
	require.NoError(t, err, out)
	require.NoError(t, json.Unmarshal([]byte(out), &session))
	assert.Equal(t, 1, session.TeamAScore)
	assert.Equal(t, 1, session.TeamBScore)
	assert.Len(t, session.PointLog, 2)

	// Delete the first point; totals rebuild
	out, err = cli.run("score", "delete", entry.ID)
	require.NoError(t, err, out)

	out, err = cli.run("session", "get")
	require.NoError(t, err, out)
	require.NoError(t, json.Unmarshal([]byte(out), &session))
	assert.Equal(t, 0, session.TeamAScore)
	assert.Equal(t, 1, session.TeamBScore)

	// Persist
	out, err = cli.run("session", "flush")
	require.NoError(t, err, out)
}

func TestCLITimers(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}

	ts := startTestServer(t)
	defer ts.shutdown()
	cli := newCLIRunner(t, ts.addr)

	out, err := cli.run("timer", "match", "status")
	require.NoError(t, err, out)

	var status timerStatus
	require.NoError(t, json.Unmarshal([]byte(out), &status))
	assert.False(t, status.Running)
	assert.Equal(t, "100:00", status.Display)

	out, err = cli.run("timer", "match", "start")
	require.NoError(t, err, out)
	require.NoError(t, json.Unmarshal([]byte(out), &status))
	assert.True(t, status.Running)

	out, err = cli.run("timer", "match", "stop")
	require.NoError(t, err, out)
	require.NoError(t, json.Unmarshal([]byte(out), &status))
	assert.False(t, status.Running)

	out, err = cli.run("timer", "interval", "reset", "60")
	require.NoError(t, err, out)
	require.NoError(t, json.Unmarshal([]byte(out), &status))
	assert.Equal(t, "01:00", status.Display)
}

func TestCLIInvalidInput(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}

	ts := startTestServer(t)
	defer ts.shutdown()
	cli := newCLIRunner(t, ts.addr)

	out, err := cli.run("score", "add", "C", "Alice", "Bob")
	assert.Error(t, err)
	assert.Contains(t, out, "team must be A or B")

	out, err = cli.run("score", "add", "A", "", "Bob")
	assert.Error(t, err)
	assert.Contains(t, out, "MISSING_SCORER")

	out, err = cli.run("score", "delete", "does-not-exist")
	assert.Error(t, err)
	assert.Contains(t, out, "POINT_NOT_FOUND")
}
