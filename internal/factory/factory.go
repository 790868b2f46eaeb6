package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/RenierDuminy/CTFDA-scoring/internal/dependencies/clock"
	"github.com/RenierDuminy/CTFDA-scoring/internal/dependencies/random"
	"github.com/RenierDuminy/CTFDA-scoring/internal/model"
	"github.com/RenierDuminy/CTFDA-scoring/internal/services/export"
	"github.com/RenierDuminy/CTFDA-scoring/internal/services/roster"
	"github.com/RenierDuminy/CTFDA-scoring/internal/services/scorelog"
	"github.com/RenierDuminy/CTFDA-scoring/internal/services/session"
	"github.com/RenierDuminy/CTFDA-scoring/internal/services/timer"
	"github.com/RenierDuminy/CTFDA-scoring/internal/storage"
	"github.com/RenierDuminy/CTFDA-scoring/internal/storage/memory"
	redisstorage "github.com/RenierDuminy/CTFDA-scoring/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// unconfiguredFetcher stands in when no roster URL is set; every fetch
// reports the source as unavailable so cached data still serves.
type unconfiguredFetcher struct{}

func (unconfiguredFetcher) FetchTeams(ctx context.Context) (map[string][]string, error) {
	return nil, model.ErrRosterUnavailable
}

// App contains all wired application components
type App struct {
	// Storage
	Backend storage.Backend
	Store   *storage.Store

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	ScorelogService *scorelog.Service
	Manager         *session.Manager
	Gate            *session.Gate
	MatchTimer      *timer.Countdown
	IntervalTimer   *timer.Interval
	RosterService   *roster.Service
	Submitter       *export.Submitter
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// StorageQuotaBytes caps the memory backend's footprint (0 = unlimited)
	StorageQuotaBytes int64
	// RosterURL is the roster source endpoint (optional)
	RosterURL string
	// SinkURL is the log submission endpoint (optional)
	SinkURL string
	// MatchDuration overrides the default match clock duration
	MatchDuration time.Duration
	// PointInterval overrides the default between-points countdown
	PointInterval time.Duration
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage backend based on type
	var backend storage.Backend
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		if cfg.StorageQuotaBytes > 0 {
			backend = memory.NewWithQuota(cfg.StorageQuotaBytes)
		} else {
			backend = memory.New()
		}
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisBackend, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		backend = redisBackend
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	matchDur := cfg.MatchDuration
	if matchDur == 0 {
		matchDur = timer.DefaultMatchDuration
	}
	pointInterval := cfg.PointInterval
	if pointInterval == 0 {
		pointInterval = timer.DefaultPointInterval
	}

	var fetcher roster.Fetcher
	if cfg.RosterURL != "" {
		fetcher = roster.NewHTTPFetcher(cfg.RosterURL)
	} else {
		fetcher = unconfiguredFetcher{}
	}

	return newWithDependencies(backend, clk, rnd, fetcher, cfg.SinkURL, matchDur, pointInterval, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	backend storage.Backend,
	clk clock.Clock,
	rnd random.Random,
	fetcher roster.Fetcher,
	sinkURL string,
	matchDur, pointInterval time.Duration,
	logger *slog.Logger,
) *App {
	store := storage.NewStore(backend, clk, logger)

	scorelogService := scorelog.New(clk, rnd)
	manager := session.NewManager(store, scorelogService, clk, logger)
	gate := session.NewGate()
	matchTimer := timer.NewCountdown(store, clk, matchDur, logger)
	intervalTimer := timer.NewInterval(clk, pointInterval)
	rosterService := roster.New(store, fetcher, clk, logger)
	submitter := export.NewSubmitter(sinkURL, clk, logger)

	return &App{
		Backend:         backend,
		Store:           store,
		Clock:           clk,
		Random:          rnd,
		ScorelogService: scorelogService,
		Manager:         manager,
		Gate:            gate,
		MatchTimer:      matchTimer,
		IntervalTimer:   intervalTimer,
		RosterService:   rosterService,
		Submitter:       submitter,
	}
}
