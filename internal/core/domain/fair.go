package domain

import (
	"strconv"
	"time"
)

// Summary column names, in display order.
const (
	ColTotalRegistered          = "total_registered"
	ColVisitors                 = "visitors"
	ColAppliedToJob             = "applied_to_job"
	ColApplication              = "application"
	ColUniqueApplicant          = "unique_applicant"
	ColTotalCompaniesJobsApply  = "total_companies_jobs_apply"
	ColDirectPaymentForJobApply = "direct_payment_for_job_apply"
	ColPaidByApplicants         = "paid_by_applicants"
	ColBecameProUserToday       = "became_pro_user_today"
	ColAmountFromTodayProUsers  = "amount_from_today_pro_users"
	ColProJobSeekerCount        = "pro_job_seeker_count"
	ColTotalAmountCollected     = "total_amount_collected"
)

// Interval table column names.
const (
	ColIntervalStart = "intervalstart"
	ColOPIDCount     = "opidcount"
)

// SummaryColumns is the fixed, ordered list of the twelve fair counters.
var SummaryColumns = []string{
	ColTotalRegistered,
	ColVisitors,
	ColAppliedToJob,
	ColApplication,
	ColUniqueApplicant,
	ColTotalCompaniesJobsApply,
	ColDirectPaymentForJobApply,
	ColPaidByApplicants,
	ColBecameProUserToday,
	ColAmountFromTodayProUsers,
	ColProJobSeekerCount,
	ColTotalAmountCollected,
}

// Row is a single column-labeled result row.
type Row map[string]any

// Table is the tabular result of a fetch: column names in select order plus rows.
type Table struct {
	Columns []string
	Rows    []Row
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Counter is a nullable numeric counter read from the summary table.
type Counter struct {
	Value float64
	Valid bool
}

// NewCounter returns a valid counter holding v.
func NewCounter(v float64) Counter {
	return Counter{Value: v, Valid: true}
}

// String formats the counter for display. NULL becomes the empty string.
func (c Counter) String() string {
	if !c.Valid {
		return ""
	}
	return strconv.FormatFloat(c.Value, 'f', -1, 64)
}

// Float returns the counter value, or 0 when NULL.
func (c Counter) Float() float64 {
	if !c.Valid {
		return 0
	}
	return c.Value
}

// SummaryRow is the current fair summary: one counter per summary column.
type SummaryRow struct {
	counters map[string]Counter
}

// NewSummaryRowFromCounters builds a summary row from already-typed counters.
func NewSummaryRowFromCounters(counters map[string]Counter) SummaryRow {
	copied := make(map[string]Counter, len(counters))
	for name, c := range counters {
		copied[name] = c
	}
	return SummaryRow{counters: copied}
}

// Get returns the named counter. Unknown or absent names yield a NULL counter.
func (r SummaryRow) Get(name string) Counter {
	return r.counters[name]
}

// AttributeValue is one line of the summary table shown on the dashboard.
type AttributeValue struct {
	Attribute string `json:"Attribute"`
	Value     string `json:"Value"`
}

// IntervalCount is the number of OPID events observed in a five-minute bucket.
type IntervalCount struct {
	Start time.Time `json:"start"`
	Count int64     `json:"count"`
}

// HourlyBucket is the sum of interval counts for one hour of the day.
type HourlyBucket struct {
	Hour  int   `json:"hour"`
	Count int64 `json:"count"`
}

// Snapshot is the state published to the UI on every periodic refresh.
type Snapshot struct {
	Table       []AttributeValue `json:"table"`
	Pies        []ChartSpec      `json:"pies"`
	RefreshedAt time.Time        `json:"refreshedAt"`
}
