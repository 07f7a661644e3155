package ports

import (
	"context"

	"github.com/meharaz2020/fair-dashboard/internal/core/domain"
)

// DashboardService defines the refresh orchestrator used by the HTTP and CLI adapters.
type DashboardService interface {
	// Refresh fetches fresh data, rebuilds the table and pies, and publishes them.
	Refresh(ctx context.Context) (*domain.Snapshot, error)
	// TimeSeries builds the time-series chart for the given mode.
	TimeSeries(ctx context.Context, mode domain.Mode) (*domain.ChartSpec, error)
	// Intervals returns interval counts no older than one refresh period.
	Intervals(ctx context.Context) ([]domain.IntervalCount, error)
	// Latest returns the most recently published snapshot.
	Latest() (*domain.Snapshot, error)
	// Run drives periodic refreshes until ctx is cancelled.
	Run(ctx context.Context)
}

// EventBroadcaster defines the port for publishing real-time events to the UI.
type EventBroadcaster interface {
	Broadcast(event domain.Event) error
}
