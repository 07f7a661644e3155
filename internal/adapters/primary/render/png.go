package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/meharaz2020/fair-dashboard/internal/core/domain"
	apperrors "github.com/meharaz2020/fair-dashboard/internal/core/errors"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	pngWidth    = 1024
	pngHeight   = 512
	barWidth    = 40
	barSpacing  = 12
	chartMargin = 160
)

// PNG draws a chart descriptor as a PNG image. Empty charts and placeholders
// yield apperrors.ErrNoData.
func PNG(w io.Writer, spec domain.ChartSpec) error {
	if spec.Kind == domain.ChartPlaceholder || spec.IsEmpty() {
		return apperrors.ErrNoData
	}

	var err error
	switch spec.Kind {
	case domain.ChartLine:
		err = pngLine(w, spec)
	case domain.ChartBar:
		err = pngBar(w, spec)
	case domain.ChartPie:
		err = pngPie(w, spec)
	default:
		return fmt.Errorf("%w: unsupported chart kind %q", apperrors.ErrBadRequest, spec.Kind)
	}
	if err != nil {
		return fmt.Errorf("error rendering chart: %w", err)
	}
	return nil
}

func pngLine(w io.Writer, spec domain.ChartSpec) error {
	xValues := make([]float64, len(spec.Values))
	ticks := make([]chart.Tick, 0, len(spec.Values))
	annotations := make([]chart.Value2, 0, len(spec.Annotations))
	step := tickStep(len(spec.Values))

	for i := range spec.Values {
		xValues[i] = float64(i)
		if i%step == 0 {
			ticks = append(ticks, chart.Tick{Value: float64(i), Label: labelAt(spec.Labels, i)})
		}
	}
	for i, a := range spec.Annotations {
		annotations = append(annotations, chart.Value2{XValue: float64(i), YValue: a.Y, Label: a.Text})
	}

	yValues := spec.Values
	if len(yValues) == 1 {
		// go-chart needs two points to derive an x range.
		xValues = []float64{0, 1}
		yValues = []float64{yValues[0], yValues[0]}
	}

	color := seriesColor(spec)
	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    spec.YAxisTitle,
			XValues: xValues,
			YValues: yValues,
			Style: chart.Style{
				StrokeColor: color,
				StrokeWidth: 2,
				DotColor:    color,
				DotWidth:    3,
			},
		},
	}
	if len(annotations) > 0 {
		series = append(series, chart.AnnotationSeries{Annotations: annotations})
	}

	graph := chart.Chart{
		Title:  spec.Title,
		Width:  pngWidth,
		Height: pngHeight,
		Background: chart.Style{
			Padding:   chart.Box{Top: 50, Left: 20, Right: 40, Bottom: 20},
			FillColor: drawing.ColorWhite,
		},
		XAxis: chart.XAxis{
			Name:  spec.XAxisTitle,
			Ticks: ticks,
			Range: &chart.ContinuousRange{Min: 0, Max: maxFloat(float64(len(spec.Values)-1), 1)},
		},
		YAxis: chart.YAxis{
			Name:  spec.YAxisTitle,
			Range: &chart.ContinuousRange{Min: 0, Max: maxFloat(maxValue(spec.Values)*1.1, 1)},
		},
		Series: series,
	}

	return graph.Render(chart.PNG, w)
}

func pngBar(w io.Writer, spec domain.ChartSpec) error {
	color := seriesColor(spec)
	bars := make([]chart.Value, 0, len(spec.Values))
	for i, v := range spec.Values {
		bars = append(bars, chart.Value{
			Value: v,
			Label: labelAt(spec.Labels, i),
			Style: chart.Style{FillColor: color, StrokeColor: color},
		})
	}

	width := len(bars)*(barWidth+barSpacing) + chartMargin
	if width < pngWidth {
		width = pngWidth
	}

	bar := chart.BarChart{
		Title:  spec.Title,
		Width:  width,
		Height: pngHeight,
		Background: chart.Style{
			Padding:   chart.Box{Top: 50},
			FillColor: drawing.ColorWhite,
		},
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		Bars:       bars,
		XAxis:      chart.Style{StrokeWidth: 1, StrokeColor: chart.ColorBlack},
		YAxis: chart.YAxis{
			Name:  spec.YAxisTitle,
			Range: &chart.ContinuousRange{Min: 0, Max: maxFloat(maxValue(spec.Values)*1.1, 1)},
		},
	}

	return bar.Render(chart.PNG, w)
}

func pngPie(w io.Writer, spec domain.ChartSpec) error {
	var total float64
	values := make([]chart.Value, 0, len(spec.Values))
	for i, v := range spec.Values {
		total += v
		values = append(values, chart.Value{
			Value: v,
			Label: labelAt(spec.Labels, i) + ": " + formatValue(v),
			Style: chart.Style{FillColor: colorAt(spec.Colors, i)},
		})
	}
	if total <= 0 {
		return apperrors.ErrNoData
	}

	pie := chart.PieChart{
		Title:  spec.Title,
		Width:  pngHeight,
		Height: pngHeight,
		Values: values,
	}
	return pie.Render(chart.PNG, w)
}

func seriesColor(spec domain.ChartSpec) drawing.Color {
	return colorAt(spec.Colors, 0)
}

func colorAt(colors []string, i int) drawing.Color {
	if len(colors) == 0 {
		return drawing.ColorFromHex("4F5D75")
	}
	return drawing.ColorFromHex(strings.TrimPrefix(colors[i%len(colors)], "#"))
}

// tickStep thins x labels so that at most about twelve are drawn.
func tickStep(n int) int {
	const maxTicks = 12
	if n <= maxTicks {
		return 1
	}
	return (n + maxTicks - 1) / maxTicks
}

func maxValue(values []float64) float64 {
	var m float64
	for _, v := range values {
		if v > m {
			m = v
		}
	}
	return m
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
