package roster

import (
	"context"
	"log/slog"

	"github.com/RenierDuminy/CTFDA-scoring/internal/dependencies/clock"
	"github.com/RenierDuminy/CTFDA-scoring/internal/model"
	"github.com/RenierDuminy/CTFDA-scoring/internal/storage"
)

// Service serves the team-to-players mapping, caching successful fetches
// for 24 hours and falling back to the cache when the source misbehaves.
// Fetch failures never corrupt local state.
type Service struct {
	store   *storage.Store
	fetcher Fetcher
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a roster service.
func New(store *storage.Store, fetcher Fetcher, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		store:   store,
		fetcher: fetcher,
		clock:   clk,
		logger:  logger,
	}
}

// Teams returns the roster mapping. A fresh cached copy short-circuits the
// network entirely; expiry is checked here on read, never swept.
func (s *Service) Teams(ctx context.Context) (map[string][]string, error) {
	if cached, ok := s.cached(ctx); ok {
		return cached.Teams, nil
	}
	return s.Refresh(ctx)
}

// Refresh always hits the source. On success the cache is replaced
// wholesale; on failure the last non-expired cached copy is served, and
// only when that is also gone does the caller get an empty mapping with
// ErrRosterUnavailable.
func (s *Service) Refresh(ctx context.Context) (map[string][]string, error) {
	teams, err := s.fetcher.FetchTeams(ctx)
	if err == nil {
		now := s.clock.Now()
		cache := model.Roster{
			Teams:     teams,
			FetchedAt: now,
			ExpiresAt: now.Add(model.RosterTTL),
		}
		if putErr := s.store.Put(ctx, storage.KeyRoster, cache); putErr != nil {
			s.logger.Warn("could not cache roster",
				slog.String("error", putErr.Error()))
		}
		return teams, nil
	}

	s.logger.Warn("roster fetch failed",
		slog.String("error", err.Error()))

	if cached, ok := s.cached(ctx); ok {
		return cached.Teams, nil
	}
	return map[string][]string{}, model.ErrRosterUnavailable
}

// Clear drops the cached roster; part of a full reset.
func (s *Service) Clear(ctx context.Context) error {
	return s.store.Remove(ctx, storage.KeyRoster)
}

func (s *Service) cached(ctx context.Context) (model.Roster, bool) {
	var cache model.Roster
	if err := s.store.Get(ctx, storage.KeyRoster, &cache); err != nil {
		return model.Roster{}, false
	}
	if cache.Expired(s.clock.Now()) {
		return model.Roster{}, false
	}
	return cache, true
}
