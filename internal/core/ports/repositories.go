package ports

import (
	"context"

	"github.com/meharaz2020/fair-dashboard/internal/core/domain"
)

// FairRepository defines the read-only data access port over the fair database.
type FairRepository interface {
	// Fetch executes a fixed read-only query and returns column-labeled rows.
	Fetch(ctx context.Context, query string) (*domain.Table, error)
	// LatestSummary returns the current summary row.
	LatestSummary(ctx context.Context) (domain.SummaryRow, error)
	// IntervalCounts returns every interval count ordered by start time.
	IntervalCounts(ctx context.Context) ([]domain.IntervalCount, error)
	// Ping checks that the database is reachable.
	Ping(ctx context.Context) error
}
