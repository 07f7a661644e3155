package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/meharaz2020/fair-dashboard/internal/core/domain"
	apperrors "github.com/meharaz2020/fair-dashboard/internal/core/errors"
	"github.com/meharaz2020/fair-dashboard/internal/core/ports"
)

const (
	summaryQuery = `
SELECT total_registered,
       visitors,
       applied_to_job,
       application,
       unique_applicant,
       total_companies_jobs_apply,
       direct_payment_for_job_apply,
       paid_by_applicants,
       became_pro_user_today,
       amount_from_today_pro_users,
       pro_job_seeker_count,
       total_amount_collected
FROM public.fair_summary_data
LIMIT 1
`

	intervalQuery = `
SELECT intervalstart, opidcount
FROM public.opidintervalcounts
ORDER BY intervalstart
`
)

// FairRepository reads the fair tables. Each call uses its own connection.
type FairRepository struct {
	connector *Connector
}

var _ ports.FairRepository = (*FairRepository)(nil)

func NewFairRepository(connector *Connector) *FairRepository {
	return &FairRepository{connector: connector}
}

// Fetch runs a read-only query and returns its rows labeled by column name.
func (r *FairRepository) Fetch(ctx context.Context, query string) (*domain.Table, error) {
	var table *domain.Table

	err := r.connector.WithReadOnlyTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()

		fields := rows.FieldDescriptions()
		columns := make([]string, len(fields))
		for i, f := range fields {
			columns[i] = strings.TrimSpace(f.Name)
		}

		result := &domain.Table{Columns: columns, Rows: []domain.Row{}}
		for rows.Next() {
			values, err := rows.Values()
			if err != nil {
				return err
			}

			row := make(domain.Row, len(columns))
			for i, name := range columns {
				row[name] = normalizeValue(values[i])
			}
			result.Rows = append(result.Rows, row)
		}
		if err := rows.Err(); err != nil {
			return err
		}

		table = result
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrQueryFailed, err)
	}

	return table, nil
}

// LatestSummary returns the current fair counters.
func (r *FairRepository) LatestSummary(ctx context.Context) (domain.SummaryRow, error) {
	table, err := r.Fetch(ctx, summaryQuery)
	if err != nil {
		return domain.SummaryRow{}, err
	}
	return domain.NewSummaryRow(table)
}

// IntervalCounts returns the five-minute counts in ascending time order.
func (r *FairRepository) IntervalCounts(ctx context.Context) ([]domain.IntervalCount, error) {
	table, err := r.Fetch(ctx, intervalQuery)
	if err != nil {
		return nil, err
	}
	return domain.NewIntervalCounts(table)
}

// Ping checks that a connection can be opened.
func (r *FairRepository) Ping(ctx context.Context) error {
	return r.connector.WithConnection(ctx, func(ctx context.Context, conn *pgx.Conn) error {
		return conn.Ping(ctx)
	})
}

// normalizeValue converts driver-specific values into plain Go values.
func normalizeValue(v any) any {
	switch val := v.(type) {
	case pgtype.Numeric:
		if !val.Valid {
			return nil
		}
		f, err := val.Float64Value()
		if err != nil || !f.Valid {
			return nil
		}
		return f.Float64
	case []byte:
		return string(val)
	default:
		return v
	}
}
