package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/meharaz2020/fair-dashboard/internal/core/errors"
)

// NewSummaryRow converts the last row of a summary fetch into a SummaryRow.
// An empty table yields a row where every counter is NULL.
func NewSummaryRow(table *Table) (SummaryRow, error) {
	row := SummaryRow{counters: make(map[string]Counter, len(SummaryColumns))}
	if table.Len() == 0 {
		return row, nil
	}

	last := table.Rows[len(table.Rows)-1]
	for _, name := range SummaryColumns {
		raw, ok := last[name]
		if !ok {
			continue
		}
		c, err := toCounter(raw)
		if err != nil {
			return SummaryRow{}, fmt.Errorf("column %s: %w", name, err)
		}
		row.counters[name] = c
	}

	return row, nil
}

// ToAttributeValuePairs emits one (name, value) pair per name, in the given order.
// NULL or missing counters become the empty string.
func ToAttributeValuePairs(row SummaryRow, names []string) []AttributeValue {
	pairs := make([]AttributeValue, 0, len(names))
	for _, name := range names {
		pairs = append(pairs, AttributeValue{
			Attribute: name,
			Value:     row.Get(name).String(),
		})
	}
	return pairs
}

// NewIntervalCounts converts an interval fetch into IntervalCounts ordered by start.
// Rows without a timestamp are skipped; a NULL count is treated as zero.
func NewIntervalCounts(table *Table) ([]IntervalCount, error) {
	intervals := make([]IntervalCount, 0, table.Len())
	if table.Len() == 0 {
		return intervals, nil
	}

	for i, row := range table.Rows {
		start, ok := row[ColIntervalStart].(time.Time)
		if !ok {
			if row[ColIntervalStart] == nil {
				continue
			}
			return nil, fmt.Errorf("row %d column %s: %w (%T)",
				i, ColIntervalStart, apperrors.ErrUnsupportedValue, row[ColIntervalStart])
		}

		c, err := toCounter(row[ColOPIDCount])
		if err != nil {
			return nil, fmt.Errorf("row %d column %s: %w", i, ColOPIDCount, err)
		}

		intervals = append(intervals, IntervalCount{
			Start: start,
			Count: int64(c.Float()),
		})
	}

	sort.SliceStable(intervals, func(i, j int) bool {
		return intervals[i].Start.Before(intervals[j].Start)
	})

	return intervals, nil
}

// ToHourlyBuckets groups intervals by hour of day and sums their counts.
// Buckets are ordered by ascending hour; no input means no buckets.
func ToHourlyBuckets(intervals []IntervalCount) []HourlyBucket {
	var sums [24]int64
	var seen [24]bool

	for _, iv := range intervals {
		h := iv.Start.Hour()
		sums[h] += iv.Count
		seen[h] = true
	}

	buckets := make([]HourlyBucket, 0, 24)
	for h := 0; h < 24; h++ {
		if seen[h] {
			buckets = append(buckets, HourlyBucket{Hour: h, Count: sums[h]})
		}
	}
	return buckets
}

func toCounter(v any) (Counter, error) {
	switch n := v.(type) {
	case nil:
		return Counter{}, nil
	case int:
		return NewCounter(float64(n)), nil
	case int8:
		return NewCounter(float64(n)), nil
	case int16:
		return NewCounter(float64(n)), nil
	case int32:
		return NewCounter(float64(n)), nil
	case int64:
		return NewCounter(float64(n)), nil
	case uint32:
		return NewCounter(float64(n)), nil
	case uint64:
		return NewCounter(float64(n)), nil
	case float32:
		return NewCounter(float64(n)), nil
	case float64:
		return NewCounter(n), nil
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return Counter{}, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Counter{}, fmt.Errorf("%w: %q", apperrors.ErrUnsupportedValue, n)
		}
		return NewCounter(f), nil
	default:
		return Counter{}, fmt.Errorf("%w: %T", apperrors.ErrUnsupportedValue, v)
	}
}
