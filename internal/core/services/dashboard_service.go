package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/meharaz2020/fair-dashboard/internal/core/charts"
	"github.com/meharaz2020/fair-dashboard/internal/core/domain"
	apperrors "github.com/meharaz2020/fair-dashboard/internal/core/errors"
	"github.com/meharaz2020/fair-dashboard/internal/core/ports"
)

// DashboardService fetches fair data, reshapes it into chart descriptors and
// publishes the result. Every refresh recomputes everything from scratch.
type DashboardService struct {
	repo        ports.FairRepository
	broadcaster ports.EventBroadcaster
	interval    time.Duration
	logger      *slog.Logger

	// mu guards the most recent results; concurrent refreshes are allowed and
	// whichever stores last wins.
	mu          sync.RWMutex
	latest      *domain.Snapshot
	intervals   []domain.IntervalCount
	intervalsAt time.Time
}

var _ ports.DashboardService = (*DashboardService)(nil)

// NewDashboardService creates a new dashboard service. broadcaster may be nil
// when nothing listens for published events.
func NewDashboardService(
	repo ports.FairRepository,
	broadcaster ports.EventBroadcaster,
	interval time.Duration,
	logger *slog.Logger,
) *DashboardService {
	return &DashboardService{
		repo:        repo,
		broadcaster: broadcaster,
		interval:    interval,
		logger:      logger.With("component", "dashboard_service"),
	}
}

// Refresh handles the periodic tick: fetch, reshape, build, publish.
func (s *DashboardService) Refresh(ctx context.Context) (*domain.Snapshot, error) {
	// 1. Fetch
	summary, err := s.repo.LatestSummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch summary: %w", err)
	}

	intervals, err := s.repo.IntervalCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch intervals: %w", err)
	}

	// 2. Reshape and build
	now := time.Now()
	snapshot := &domain.Snapshot{
		Table:       domain.ToAttributeValuePairs(summary, domain.SummaryColumns),
		Pies:        charts.BuildPies(summary),
		RefreshedAt: now.UTC(),
	}

	s.mu.Lock()
	s.latest = snapshot
	s.intervals = intervals
	s.intervalsAt = now
	s.mu.Unlock()

	// 3. Publish
	s.publish(domain.Event{Type: domain.EventSnapshotUpdated, Payload: snapshot})

	return snapshot, nil
}

// TimeSeries handles a mode selection and builds the chart for that mode.
func (s *DashboardService) TimeSeries(ctx context.Context, mode domain.Mode) (*domain.ChartSpec, error) {
	if !mode.IsValid() {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidMode, mode)
	}

	intervals, err := s.Intervals(ctx)
	if err != nil {
		return nil, err
	}

	spec, err := charts.BuildTimeSeries(mode, intervals)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// Intervals returns the interval counts from the last fetch if it happened
// within one refresh period, otherwise it queries the database again.
func (s *DashboardService) Intervals(ctx context.Context) ([]domain.IntervalCount, error) {
	s.mu.RLock()
	intervals, fetchedAt := s.intervals, s.intervalsAt
	s.mu.RUnlock()

	if !fetchedAt.IsZero() && time.Since(fetchedAt) < s.interval {
		return intervals, nil
	}

	intervals, err := s.repo.IntervalCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch intervals: %w", err)
	}

	s.mu.Lock()
	s.intervals = intervals
	s.intervalsAt = time.Now()
	s.mu.Unlock()

	return intervals, nil
}

// Latest returns the most recently published snapshot.
func (s *DashboardService) Latest() (*domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.latest == nil {
		return nil, apperrors.ErrSnapshotUnavailable
	}
	return s.latest, nil
}

// Run refreshes once immediately and then on every tick until ctx is done.
func (s *DashboardService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("dashboard refresh loop started", "interval", s.interval.String())
	s.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("dashboard refresh loop stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick runs one refresh. A failure only fails this tick; there is no retry.
func (s *DashboardService) tick(ctx context.Context) {
	start := time.Now()

	snapshot, err := s.Refresh(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		s.logger.Error("dashboard refresh failed", "error", err)
		s.publish(domain.Event{
			Type: domain.EventRefreshFailed,
			Payload: domain.RefreshFailure{
				Message:  "Dashboard refresh failed",
				FailedAt: time.Now().UTC().Format(time.RFC3339),
			},
		})
		return
	}

	s.logger.Debug("dashboard refreshed",
		"duration_ms", time.Since(start).Milliseconds(),
		"attributes", len(snapshot.Table),
	)
}

func (s *DashboardService) publish(event domain.Event) {
	if s.broadcaster == nil {
		return
	}
	if err := s.broadcaster.Broadcast(event); err != nil {
		s.logger.Warn("failed to publish dashboard event",
			"event_type", event.Type,
			"error", err,
		)
	}
}
