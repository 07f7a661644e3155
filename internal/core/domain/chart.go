package domain

// Mode selects how the time-series chart aggregates interval counts.
type Mode string

const (
	ModeFiveMinute Mode = "5min"
	ModeHourly     Mode = "hourly"
)

// Modes lists the selectable time-series modes.
var Modes = []Mode{ModeFiveMinute, ModeHourly}

// IsValid reports whether m is a known mode.
func (m Mode) IsValid() bool {
	switch m {
	case ModeFiveMinute, ModeHourly:
		return true
	default:
		return false
	}
}

// ChartKind is the geometry a chart descriptor asks the renderer to draw.
type ChartKind string

const (
	ChartPie         ChartKind = "pie"
	ChartLine        ChartKind = "line"
	ChartBar         ChartKind = "bar"
	ChartPlaceholder ChartKind = "placeholder"
)

// Annotation is a value label attached to one data point.
type Annotation struct {
	X        string  `json:"x"`
	Y        float64 `json:"y"`
	Text     string  `json:"text"`
	Position string  `json:"position"`
}

// ChartSpec is a declarative chart description handed to the rendering layer.
type ChartSpec struct {
	ID          string       `json:"id"`
	Kind        ChartKind    `json:"kind"`
	Title       string       `json:"title"`
	Labels      []string     `json:"labels"`
	Values      []float64    `json:"values"`
	Colors      []string     `json:"colors,omitempty"`
	Hole        float64      `json:"hole,omitempty"`
	ShowLegend  bool         `json:"showLegend"`
	Height      int          `json:"height,omitempty"`
	XAxisTitle  string       `json:"xAxisTitle,omitempty"`
	YAxisTitle  string       `json:"yAxisTitle,omitempty"`
	Annotations []Annotation `json:"annotations,omitempty"`
	Message     string       `json:"message,omitempty"`
}

// IsEmpty reports whether the chart has no data points.
func (c ChartSpec) IsEmpty() bool {
	return len(c.Values) == 0
}
