package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jobdesk/dashboard-system/internal/api/metrics"
	"github.com/jobdesk/dashboard-system/internal/core/domain"
	"github.com/jobdesk/dashboard-system/internal/core/ports"
)

const defaultPollInterval = 5 * time.Second

// SyncService keeps the snapshot current: one full fetch at startup, then a
// fixed-interval poll while at least one session is authenticated.
//
// A failed initial load blocks the dashboard for the life of the process;
// failed polls are logged and swallowed with the previous snapshot retained.
type SyncService struct {
	gateway  ports.GatewayClient
	store    *SnapshotStore
	sessions ports.SessionRegistry
	interval time.Duration
	log      zerolog.Logger

	mu      sync.Mutex
	loaded  bool
	loadErr error
}

func NewSyncService(gateway ports.GatewayClient, store *SnapshotStore, sessions ports.SessionRegistry, interval time.Duration, log zerolog.Logger) *SyncService {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &SyncService{
		gateway:  gateway,
		store:    store,
		sessions: sessions,
		interval: interval,
		log:      log,
	}
}

// Load performs the blocking initial fetch. The returned error, if any, is
// also surfaced by Ready until the process restarts.
func (s *SyncService) Load(ctx context.Context) error {
	snap, err := s.gateway.GetInitialData(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.loadErr = err
		s.log.Error().Err(err).Msg("initial data load failed")
		return fmt.Errorf("%w: %v", domain.ErrGatewayUnavailable, err)
	}
	s.store.Replace(*snap)
	s.loaded = true
	s.log.Info().Int("users", len(snap.Users)).Int("jobs", len(snap.Jobs)).Msg("initial data loaded")
	return nil
}

// Ready reports whether the dashboard may serve data.
func (s *SyncService) Ready() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return nil
	}
	if s.loadErr != nil {
		return fmt.Errorf("%w: %v", domain.ErrGatewayUnavailable, s.loadErr)
	}
	return domain.ErrGatewayUnavailable
}

// Snapshot returns a deep copy of the latest snapshot.
func (s *SyncService) Snapshot() domain.Snapshot {
	return s.store.Snapshot()
}

// Run drives the polling loop until ctx is cancelled. The ticker exists
// only while the session registry is non-empty: it is torn down the moment
// the last session ends and recreated when a new one begins.
func (s *SyncService) Run(ctx context.Context) {
	for {
		if !s.sessions.Active() {
			select {
			case <-ctx.Done():
				return
			case <-s.sessions.Wake():
			}
			continue
		}

		ticker := time.NewTicker(s.interval)
		for s.sessions.Active() {
			select {
			case <-ctx.Done():
				ticker.Stop()
				return
			case <-ticker.C:
			}
			if !s.sessions.Active() {
				break
			}
			s.poll(ctx)
		}
		ticker.Stop()
	}
}

// poll refreshes the snapshot. Failures keep the previous snapshot; there
// is no backoff and no user-facing error.
func (s *SyncService) poll(ctx context.Context) {
	snap, err := s.gateway.GetInitialData(ctx)
	if err != nil {
		metrics.PollsTotal.WithLabelValues("error").Inc()
		s.log.Warn().Err(err).Msg("poll failed, keeping previous snapshot")
		return
	}

	s.mu.Lock()
	if !s.loaded {
		// The dashboard stays blocked after a failed initial load even if a
		// later poll would succeed, mirroring the fatal-for-session contract.
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	s.store.Replace(*snap)
	metrics.PollsTotal.WithLabelValues("success").Inc()
	s.log.Debug().Int("jobs", len(snap.Jobs)).Msg("snapshot refreshed")
}
