// Package render draws chart descriptors with concrete charting libraries:
// go-echarts for HTML, go-chart for PNG and go-pretty/asciigraph for text.
package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/meharaz2020/fair-dashboard/internal/core/domain"
)

// EChart converts a chart descriptor into a go-echarts chart.
func EChart(spec domain.ChartSpec) components.Charter {
	switch spec.Kind {
	case domain.ChartPie:
		return echartsPie(spec)
	case domain.ChartLine:
		return echartsLine(spec)
	case domain.ChartBar:
		return echartsBar(spec)
	default:
		return echartsPlaceholder(spec)
	}
}

func initOpts(spec domain.ChartSpec) charts.GlobalOpts {
	height := spec.Height
	if height <= 0 {
		height = 400
	}
	return charts.WithInitializationOpts(opts.Initialization{
		ChartID: spec.ID,
		Width:   "100%",
		Height:  strconv.Itoa(height) + "px",
	})
}

func echartsPie(spec domain.ChartSpec) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		initOpts(spec),
		charts.WithTitleOpts(opts.Title{Title: spec.Title}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(spec.ShowLegend), Bottom: "0"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item"}),
		charts.WithColorsOpts(opts.Colors(spec.Colors)),
	)

	data := make([]opts.PieData, 0, len(spec.Values))
	for i, v := range spec.Values {
		data = append(data, opts.PieData{Name: labelAt(spec.Labels, i), Value: v})
	}

	// The inner radius is the donut hole as a share of the outer radius.
	outer := 75.0
	inner := spec.Hole * outer
	pie.AddSeries(spec.Title, data,
		charts.WithPieChartOpts(opts.PieChart{
			Radius: []string{formatPercent(inner), formatPercent(outer)},
		}),
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {c}"}),
	)
	return pie
}

func echartsLine(spec domain.ChartSpec) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		initOpts(spec),
		charts.WithTitleOpts(opts.Title{Title: spec.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithColorsOpts(opts.Colors(spec.Colors)),
		charts.WithXAxisOpts(opts.XAxis{Name: spec.XAxisTitle}),
		charts.WithYAxisOpts(opts.YAxis{Name: spec.YAxisTitle}),
	)

	data := make([]opts.LineData, 0, len(spec.Values))
	for _, v := range spec.Values {
		data = append(data, opts.LineData{Value: v})
	}

	line.SetXAxis(spec.Labels).
		AddSeries(spec.YAxisTitle, data,
			charts.WithLabelOpts(annotationLabel(spec)),
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(true)}),
		)
	return line
}

func echartsBar(spec domain.ChartSpec) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		initOpts(spec),
		charts.WithTitleOpts(opts.Title{Title: spec.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithColorsOpts(opts.Colors(spec.Colors)),
		charts.WithXAxisOpts(opts.XAxis{Name: spec.XAxisTitle}),
		charts.WithYAxisOpts(opts.YAxis{Name: spec.YAxisTitle}),
	)

	data := make([]opts.BarData, 0, len(spec.Values))
	for _, v := range spec.Values {
		data = append(data, opts.BarData{Value: v})
	}

	bar.SetXAxis(spec.Labels).
		AddSeries(spec.YAxisTitle, data, charts.WithLabelOpts(annotationLabel(spec)))
	return bar
}

// echartsPlaceholder draws an empty canvas carrying only the message.
func echartsPlaceholder(spec domain.ChartSpec) *charts.Bar {
	message := spec.Message
	if message == "" {
		message = spec.Title
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		initOpts(spec),
		charts.WithTitleOpts(opts.Title{Title: message, Left: "center", Top: "middle"}),
		charts.WithXAxisOpts(opts.XAxis{Show: opts.Bool(false)}),
		charts.WithYAxisOpts(opts.YAxis{Show: opts.Bool(false)}),
	)
	bar.SetXAxis([]string{}).AddSeries("", []opts.BarData{})
	return bar
}

func annotationLabel(spec domain.ChartSpec) opts.Label {
	position := "top"
	if len(spec.Annotations) > 0 && spec.Annotations[0].Position != "" {
		position = spec.Annotations[0].Position
	}
	return opts.Label{Show: opts.Bool(len(spec.Annotations) > 0), Position: position}
}

// ReportPage assembles the snapshot pies and one time-series chart into a
// single HTML page.
func ReportPage(title string, snapshot *domain.Snapshot, series *domain.ChartSpec) *components.Page {
	page := components.NewPage()
	page.PageTitle = title
	page.SetLayout(components.PageFlexLayout)

	if snapshot != nil {
		for _, pie := range snapshot.Pies {
			page.AddCharts(EChart(pie))
		}
	}
	if series != nil {
		page.AddCharts(EChart(*series))
	}
	return page
}

// WriteReport renders the report page to w.
func WriteReport(w io.Writer, title string, snapshot *domain.Snapshot, series *domain.ChartSpec) error {
	if err := ReportPage(title, snapshot, series).Render(w); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

func labelAt(labels []string, i int) string {
	if i < len(labels) {
		return labels[i]
	}
	return strconv.Itoa(i + 1)
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}
