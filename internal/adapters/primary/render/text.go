package render

import (
	"strconv"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/meharaz2020/fair-dashboard/internal/core/domain"
)

// Table renders attribute/value pairs as a terminal table, one row per pair in
// the given order.
func Table(title string, pairs []domain.AttributeValue) string {
	t := table.NewWriter()
	if title != "" {
		t.SetTitle(title)
	}
	t.AppendHeader(table.Row{"Attribute", "Value"})
	for _, p := range pairs {
		t.AppendRow(table.Row{p.Attribute, p.Value})
	}
	t.SetStyle(table.StyleLight)
	t.Style().Format.Header = text.FormatDefault
	return t.Render()
}

// Pies renders the pie descriptors as a compact label/value listing.
func Pies(pies []domain.ChartSpec) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Chart", "Label", "Value"})
	for _, pie := range pies {
		for i, v := range pie.Values {
			t.AppendRow(table.Row{pie.Title, labelAt(pie.Labels, i), formatValue(v)})
		}
		t.AppendSeparator()
	}
	t.SetStyle(table.StyleLight)
	t.Style().Format.Header = text.FormatDefault
	return t.Render()
}

// ASCIIChart plots a line or bar descriptor as an ASCII graph. Empty series
// and placeholders render the placeholder message.
func ASCIIChart(spec domain.ChartSpec, height int) string {
	if spec.Kind == domain.ChartPlaceholder || spec.IsEmpty() {
		if spec.Message != "" {
			return spec.Message
		}
		return "No Data Available"
	}
	if height <= 0 {
		height = 10
	}

	caption := spec.Title
	if n := len(spec.Labels); n > 0 {
		caption += " (" + spec.Labels[0] + " .. " + spec.Labels[n-1] + ")"
	}

	data := spec.Values
	if len(data) == 1 {
		// asciigraph needs two points to draw a line.
		data = []float64{data[0], data[0]}
	}

	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Caption(caption),
	)
}

// Summary renders the whole snapshot plus one time-series chart as text.
func Summary(title string, snapshot *domain.Snapshot, series *domain.ChartSpec) string {
	var b strings.Builder
	if snapshot != nil {
		b.WriteString(Table(title, snapshot.Table))
		b.WriteString("\n\n")
		b.WriteString(Pies(snapshot.Pies))
		b.WriteString("\n\n")
	}
	if series != nil {
		b.WriteString(ASCIIChart(*series, 10))
		b.WriteString("\n")
	}
	return b.String()
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
