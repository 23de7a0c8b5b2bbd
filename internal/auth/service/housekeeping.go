package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/amitmore-007/Recipe-Generator/internal/auth/store"
)

// DefaultLoginAttemptRetention keeps thirty days of login audit rows.
const DefaultLoginAttemptRetention = 30 * 24 * time.Hour

// HousekeepingService periodically prunes login attempts older than the
// retention period to prevent unbounded growth of the audit table.
type HousekeepingService struct {
	Store     store.Store
	Logger    *slog.Logger
	Interval  time.Duration
	Retention time.Duration

	// Now defaults to time.Now.
	Now func() time.Time

	// Internal channels for lifecycle management
	stopCh    chan struct{}
	doneCh    chan struct{}
	startOnce sync.Once
	stopOnce  sync.Once
	started   bool
}

// NewHousekeepingService creates a new housekeeping service. Non-positive
// interval or retention fall back to one hour and DefaultLoginAttemptRetention.
func NewHousekeepingService(store store.Store, logger *slog.Logger, interval, retention time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}
	if retention <= 0 {
		retention = DefaultLoginAttemptRetention
	}

	return &HousekeepingService{
		Store:     store,
		Logger:    logger,
		Interval:  interval,
		Retention: retention,
		Now:       time.Now,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Start begins the background worker that periodically runs cleanup.
// This is non-blocking and should be called after the database is ready.
// Call Stop() to gracefully shutdown the worker.
func (s *HousekeepingService) Start() {
	s.startOnce.Do(func() {
		s.started = true
		go s.run()
	})
	s.Logger.Info("housekeeping service started",
		"interval", s.Interval,
		"retention", s.Retention,
	)
}

// Stop gracefully shuts down the background worker.
// Blocks until the worker has finished any in-progress cleanup. Stop without
// a prior Start is a no-op.
func (s *HousekeepingService) Stop() {
	s.stopOnce.Do(func() {
		s.startOnce.Do(func() {})
		if !s.started {
			return
		}
		close(s.stopCh)
		<-s.doneCh
		s.Logger.Info("housekeeping service stopped")
	})
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-s.stopCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run cleanup immediately on startup
	s.RunOnce(ctx)

	for {
		select {
		case <-ticker.C:
			s.RunOnce(ctx)
		case <-s.stopCh:
			return
		}
	}
}

// RunOnce deletes login attempts older than the retention period and returns
// how many rows went. Errors are logged, not returned; the next tick retries.
func (s *HousekeepingService) RunOnce(ctx context.Context) int64 {
	cutoff := s.Now().Add(-s.Retention)

	deleted, err := s.Store.LoginAttempts().DeleteLoginAttemptsBefore(ctx, cutoff)
	if err != nil {
		s.Logger.Error("failed to prune login attempts", "error", err)
		return 0
	}

	s.Logger.Info("housekeeping cleanup completed",
		"login_attempts_deleted", deleted,
		"cutoff", cutoff,
	)
	return deleted
}
