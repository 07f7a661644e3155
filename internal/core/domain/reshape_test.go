package domain_test

import (
	"testing"
	"time"

	"github.com/meharaz2020/fair-dashboard/internal/core/domain"
	apperrors "github.com/meharaz2020/fair-dashboard/internal/core/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullSummaryTable() *domain.Table {
	row := domain.Row{}
	for i, name := range domain.SummaryColumns {
		row[name] = int64((i + 1) * 10)
	}
	return &domain.Table{Columns: domain.SummaryColumns, Rows: []domain.Row{row}}
}

func TestToAttributeValuePairs(t *testing.T) {
	t.Run("all counters present keep declared order", func(t *testing.T) {
		row, err := domain.NewSummaryRow(fullSummaryTable())
		require.NoError(t, err)

		pairs := domain.ToAttributeValuePairs(row, domain.SummaryColumns)

		require.Len(t, pairs, 12)
		for i, name := range domain.SummaryColumns {
			assert.Equal(t, name, pairs[i].Attribute)
		}
		assert.Equal(t, "10", pairs[0].Value)
		assert.Equal(t, "120", pairs[11].Value)
	})

	t.Run("null counter becomes empty string", func(t *testing.T) {
		table := fullSummaryTable()
		table.Rows[0][domain.ColVisitors] = nil

		row, err := domain.NewSummaryRow(table)
		require.NoError(t, err)

		pairs := domain.ToAttributeValuePairs(row, domain.SummaryColumns)

		require.Len(t, pairs, 12)
		assert.Equal(t, domain.ColVisitors, pairs[1].Attribute)
		assert.Equal(t, "", pairs[1].Value)
		assert.Equal(t, "10", pairs[0].Value)
	})

	t.Run("missing column becomes empty string", func(t *testing.T) {
		table := fullSummaryTable()
		delete(table.Rows[0], domain.ColTotalAmountCollected)

		row, err := domain.NewSummaryRow(table)
		require.NoError(t, err)

		pairs := domain.ToAttributeValuePairs(row, domain.SummaryColumns)
		assert.Equal(t, "", pairs[11].Value)
	})

	t.Run("empty table yields sentinels", func(t *testing.T) {
		row, err := domain.NewSummaryRow(&domain.Table{})
		require.NoError(t, err)

		pairs := domain.ToAttributeValuePairs(row, domain.SummaryColumns)
		require.Len(t, pairs, 12)
		for _, p := range pairs {
			assert.Empty(t, p.Value)
		}
	})

	t.Run("repeated input is stable", func(t *testing.T) {
		row, err := domain.NewSummaryRow(fullSummaryTable())
		require.NoError(t, err)

		first := domain.ToAttributeValuePairs(row, domain.SummaryColumns)
		second := domain.ToAttributeValuePairs(row, domain.SummaryColumns)
		assert.Equal(t, first, second)
	})
}

func TestNewSummaryRow(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"int32", int32(7), "7"},
		{"float", 12.5, "12.5"},
		{"numeric string", " 1500.75 ", "1500.75"},
		{"empty string", "", ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := &domain.Table{Rows: []domain.Row{{domain.ColTotalAmountCollected: tt.value}}}
			row, err := domain.NewSummaryRow(table)
			require.NoError(t, err)
			assert.Equal(t, tt.want, row.Get(domain.ColTotalAmountCollected).String())
		})
	}

	t.Run("uses the last row", func(t *testing.T) {
		table := &domain.Table{Rows: []domain.Row{
			{domain.ColVisitors: int64(1)},
			{domain.ColVisitors: int64(2)},
		}}
		row, err := domain.NewSummaryRow(table)
		require.NoError(t, err)
		assert.Equal(t, float64(2), row.Get(domain.ColVisitors).Float())
	})

	t.Run("unsupported type", func(t *testing.T) {
		table := &domain.Table{Rows: []domain.Row{{domain.ColVisitors: []int{1}}}}
		_, err := domain.NewSummaryRow(table)
		assert.ErrorIs(t, err, apperrors.ErrUnsupportedValue)
	})

	t.Run("non-numeric string", func(t *testing.T) {
		table := &domain.Table{Rows: []domain.Row{{domain.ColVisitors: "many"}}}
		_, err := domain.NewSummaryRow(table)
		assert.ErrorIs(t, err, apperrors.ErrUnsupportedValue)
	})
}

func at(s string) time.Time {
	t, err := time.Parse("2006-01-02T15:04", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestToHourlyBuckets(t *testing.T) {
	t.Run("groups and sums by hour", func(t *testing.T) {
		intervals := []domain.IntervalCount{
			{Start: at("2025-02-01T09:02"), Count: 3},
			{Start: at("2025-02-01T09:07"), Count: 5},
			{Start: at("2025-02-01T10:01"), Count: 2},
		}

		buckets := domain.ToHourlyBuckets(intervals)

		assert.Equal(t, []domain.HourlyBucket{
			{Hour: 9, Count: 8},
			{Hour: 10, Count: 2},
		}, buckets)
	})

	t.Run("orders by ascending hour regardless of input order", func(t *testing.T) {
		intervals := []domain.IntervalCount{
			{Start: at("2025-02-01T23:55"), Count: 1},
			{Start: at("2025-02-01T00:05"), Count: 4},
			{Start: at("2025-02-01T12:30"), Count: 6},
			{Start: at("2025-02-01T00:10"), Count: 1},
		}

		buckets := domain.ToHourlyBuckets(intervals)

		require.Len(t, buckets, 3)
		assert.Equal(t, domain.HourlyBucket{Hour: 0, Count: 5}, buckets[0])
		assert.Equal(t, domain.HourlyBucket{Hour: 12, Count: 6}, buckets[1])
		assert.Equal(t, domain.HourlyBucket{Hour: 23, Count: 1}, buckets[2])
	})

	t.Run("same hour on different days shares a bucket", func(t *testing.T) {
		intervals := []domain.IntervalCount{
			{Start: at("2025-02-01T09:00"), Count: 2},
			{Start: at("2025-02-02T09:30"), Count: 3},
		}

		assert.Equal(t, []domain.HourlyBucket{{Hour: 9, Count: 5}}, domain.ToHourlyBuckets(intervals))
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		buckets := domain.ToHourlyBuckets(nil)
		assert.NotNil(t, buckets)
		assert.Empty(t, buckets)
	})
}

func TestNewIntervalCounts(t *testing.T) {
	t.Run("sorts by start and tolerates nulls", func(t *testing.T) {
		table := &domain.Table{
			Columns: []string{domain.ColIntervalStart, domain.ColOPIDCount},
			Rows: []domain.Row{
				{domain.ColIntervalStart: at("2025-02-01T09:05"), domain.ColOPIDCount: int32(5)},
				{domain.ColIntervalStart: at("2025-02-01T09:00"), domain.ColOPIDCount: int64(3)},
				{domain.ColIntervalStart: nil, domain.ColOPIDCount: int64(99)},
				{domain.ColIntervalStart: at("2025-02-01T09:10"), domain.ColOPIDCount: nil},
			},
		}

		intervals, err := domain.NewIntervalCounts(table)

		require.NoError(t, err)
		assert.Equal(t, []domain.IntervalCount{
			{Start: at("2025-02-01T09:00"), Count: 3},
			{Start: at("2025-02-01T09:05"), Count: 5},
			{Start: at("2025-02-01T09:10"), Count: 0},
		}, intervals)
	})

	t.Run("empty table", func(t *testing.T) {
		intervals, err := domain.NewIntervalCounts(nil)
		require.NoError(t, err)
		assert.Empty(t, intervals)
	})

	t.Run("bad timestamp type", func(t *testing.T) {
		table := &domain.Table{Rows: []domain.Row{
			{domain.ColIntervalStart: "yesterday", domain.ColOPIDCount: int64(1)},
		}}
		_, err := domain.NewIntervalCounts(table)
		assert.ErrorIs(t, err, apperrors.ErrUnsupportedValue)
	})
}

func TestMode_IsValid(t *testing.T) {
	tests := []struct {
		name string
		mode domain.Mode
		want bool
	}{
		{"5min is valid", domain.ModeFiveMinute, true},
		{"hourly is valid", domain.ModeHourly, true},
		{"empty is invalid", domain.Mode(""), false},
		{"daily is invalid", domain.Mode("daily"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.mode.IsValid())
		})
	}
}
