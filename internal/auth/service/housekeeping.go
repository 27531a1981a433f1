package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/tenantry/internal/auth/store"
)

// HousekeepingService periodically purges expired refresh tokens and expired
// unaccepted invitations so neither table grows without bound.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration
	Now      func() time.Time

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a housekeeping service. A non-positive
// interval defaults to one hour.
func NewHousekeepingService(st store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}

	return &HousekeepingService{
		Store:    st,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start runs a cleanup immediately and then once per Interval until Stop.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop blocks until an in-flight cleanup has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.Cleanup(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Cleanup(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// CleanupResult counts the rows removed by one Cleanup pass.
type CleanupResult struct {
	RefreshTokens int64
	Invitations   int64
}

// Cleanup deletes expired rows. A failure in one table does not stop the
// other.
func (s *HousekeepingService) Cleanup(ctx context.Context) CleanupResult {
	now := nowUTC(s.Now)
	var res CleanupResult

	n, err := s.Store.RefreshTokens().DeleteExpiredRefreshTokens(ctx, now)
	if err != nil {
		s.Logger.Error("failed to delete expired refresh tokens", "error", err)
	} else {
		res.RefreshTokens = n
	}

	n, err = s.Store.Invitations().DeleteExpiredInvitations(ctx, now)
	if err != nil {
		s.Logger.Error("failed to delete expired invitations", "error", err)
	} else {
		res.Invitations = n
	}

	s.Logger.Info("housekeeping cleanup completed",
		"refresh_tokens", res.RefreshTokens,
		"invitations", res.Invitations,
	)
	return res
}
