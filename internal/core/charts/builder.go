// Package charts turns reshaped fair data into declarative chart descriptors.
package charts

import (
	"fmt"
	"strconv"

	"github.com/meharaz2020/fair-dashboard/internal/core/domain"
	apperrors "github.com/meharaz2020/fair-dashboard/internal/core/errors"
)

const (
	// DonutHole is the hole proportion of every pie chart.
	DonutHole = 0.3
	// PieHeight is the pixel height of the pie charts.
	PieHeight = 400

	// NoDataTitle is shown instead of an empty hourly chart.
	NoDataTitle = "No Data Available"

	// IntervalLabelLayout formats the x labels of the five-minute chart.
	IntervalLabelLayout = "2006-01-02 15:04"
)

// Palette is the two-color scheme shared by the pies and series.
var Palette = []string{"#4F5D75", "#2B3B4B"}

// PieDefinition pairs two summary counters under a fixed title.
type PieDefinition struct {
	ID      string
	Title   string
	Columns [2]string
	Labels  [2]string
}

// Pies are the three fixed comparisons shown under the summary table.
var Pies = []PieDefinition{
	{
		ID:      "pie-chart-1",
		Title:   "Total Registered vs Visitors",
		Columns: [2]string{domain.ColTotalRegistered, domain.ColVisitors},
		Labels:  [2]string{"Total Registered", "Visitors"},
	},
	{
		ID:      "pie-chart-2",
		Title:   "Applied to Job vs Application",
		Columns: [2]string{domain.ColAppliedToJob, domain.ColApplication},
		Labels:  [2]string{"Applied to Job", "Application"},
	},
	{
		ID:      "pie-chart-3",
		Title:   "Unique Applicants vs Pro Job Seeker Count",
		Columns: [2]string{domain.ColUniqueApplicant, domain.ColProJobSeekerCount},
		Labels:  [2]string{"Unique Applicant", "Pro Job Seeker Count"},
	},
}

// TimeSeriesID is the descriptor id of the selectable time-series chart.
const TimeSeriesID = "time-series-chart"

// BuildPie builds one donut chart from the current summary row.
func BuildPie(def PieDefinition, row domain.SummaryRow) domain.ChartSpec {
	return domain.ChartSpec{
		ID:         def.ID,
		Kind:       domain.ChartPie,
		Title:      def.Title,
		Labels:     []string{def.Labels[0], def.Labels[1]},
		Values:     []float64{row.Get(def.Columns[0]).Float(), row.Get(def.Columns[1]).Float()},
		Colors:     append([]string(nil), Palette...),
		Hole:       DonutHole,
		ShowLegend: true,
		Height:     PieHeight,
	}
}

// BuildPies builds the three fixed pie charts in display order.
func BuildPies(row domain.SummaryRow) []domain.ChartSpec {
	specs := make([]domain.ChartSpec, 0, len(Pies))
	for _, def := range Pies {
		specs = append(specs, BuildPie(def, row))
	}
	return specs
}

// BuildTimeSeries builds the time-series chart for the selected mode.
func BuildTimeSeries(mode domain.Mode, intervals []domain.IntervalCount) (domain.ChartSpec, error) {
	switch mode {
	case domain.ModeFiveMinute:
		return BuildIntervalLine(intervals), nil
	case domain.ModeHourly:
		return BuildHourlyBar(domain.ToHourlyBuckets(intervals)), nil
	default:
		return domain.ChartSpec{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidMode, mode)
	}
}

// BuildIntervalLine plots every interval count against its timestamp.
func BuildIntervalLine(intervals []domain.IntervalCount) domain.ChartSpec {
	spec := domain.ChartSpec{
		ID:          TimeSeriesID,
		Kind:        domain.ChartLine,
		Title:       "OPID Count per 5 Minutes",
		Labels:      make([]string, 0, len(intervals)),
		Values:      make([]float64, 0, len(intervals)),
		Colors:      []string{Palette[0]},
		XAxisTitle:  "Time",
		YAxisTitle:  "OPID Count",
		Annotations: make([]domain.Annotation, 0, len(intervals)),
	}

	for _, iv := range intervals {
		label := iv.Start.Format(IntervalLabelLayout)
		value := float64(iv.Count)
		spec.Labels = append(spec.Labels, label)
		spec.Values = append(spec.Values, value)
		spec.Annotations = append(spec.Annotations, annotate(label, value))
	}

	return spec
}

// BuildHourlyBar plots hourly sums, or the no-data placeholder when there are none.
func BuildHourlyBar(buckets []domain.HourlyBucket) domain.ChartSpec {
	if len(buckets) == 0 {
		return Placeholder()
	}

	spec := domain.ChartSpec{
		ID:          TimeSeriesID,
		Kind:        domain.ChartBar,
		Title:       "OPID Count per Hour",
		Labels:      make([]string, 0, len(buckets)),
		Values:      make([]float64, 0, len(buckets)),
		Colors:      []string{Palette[0]},
		XAxisTitle:  "Hour of Day",
		YAxisTitle:  "OPID Count",
		Annotations: make([]domain.Annotation, 0, len(buckets)),
	}

	for _, b := range buckets {
		label := strconv.Itoa(b.Hour)
		value := float64(b.Count)
		spec.Labels = append(spec.Labels, label)
		spec.Values = append(spec.Values, value)
		spec.Annotations = append(spec.Annotations, annotate(label, value))
	}

	return spec
}

// Placeholder is the explicit empty chart for the hourly view.
func Placeholder() domain.ChartSpec {
	return domain.ChartSpec{
		ID:      TimeSeriesID,
		Kind:    domain.ChartPlaceholder,
		Title:   NoDataTitle,
		Labels:  []string{},
		Values:  []float64{},
		Message: NoDataTitle,
	}
}

func annotate(x string, y float64) domain.Annotation {
	return domain.Annotation{
		X:        x,
		Y:        y,
		Text:     strconv.FormatFloat(y, 'f', -1, 64),
		Position: "top",
	}
}
