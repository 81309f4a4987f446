package svg

// Bar is one labelled value in a horizontal bar chart.
type Bar struct {
	Label string
	Value float64
	// Color overrides the default fill.
	Color string
	// Text is printed next to the bar instead of the raw value.
	Text string
}

// BarOpts customises the horizontal bar renderer.
type BarOpts struct {
	Title       string
	Description string
	BarColor    string
	AxisColor   string
	GridColor   string
	Padding     float64
	LabelWidth  float64
	TickCount   int
	// RTL mirrors the chart so bars grow from the right edge.
	RTL bool
}

// Defaults for the dashboard charts.
const (
	DefaultWidth      = 720
	DefaultHeight     = 220
	DefaultPadding    = 24.0
	DefaultLabelWidth = 150.0
	DefaultTicks      = 5
)
