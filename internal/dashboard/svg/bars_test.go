package svg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBars() []Bar {
	return []Bar{
		{Label: "Rent collection %", Value: 92.5, Color: "#4CAF50"},
		{Label: "Overdue (k SAR)", Value: 120, Color: "#E53935", Text: "120k"},
		{Label: "SLA compliance %", Value: 96.3},
		{Label: "Avg resolution (h)", Value: 12.4},
	}
}

func TestHorizontalBarsProducesSVG(t *testing.T) {
	html, err := HorizontalBars(600, 200, sampleBars(), BarOpts{Title: "KPI overview"})
	require.NoError(t, err)
	out := string(html)
	assert.True(t, strings.HasPrefix(out, "<svg"))
	assert.Equal(t, 4, strings.Count(out, "<rect"))
	assert.Contains(t, out, `fill="#4CAF50"`)
	assert.Contains(t, out, `fill="#0ea5e9"`, "bars without a colour use the default")
	assert.Contains(t, out, ">120k<")
	assert.Contains(t, out, ">92.5<")
	assert.Contains(t, out, `id="kpi-overview-hbar-title"`)
}

func TestHorizontalBarsEscapesLabels(t *testing.T) {
	html, err := HorizontalBars(0, 0, []Bar{{Label: "<b>x</b>", Value: 1}}, BarOpts{})
	require.NoError(t, err)
	assert.NotContains(t, string(html), "<b>")
	assert.Contains(t, string(html), "&lt;b&gt;")
}

func TestHorizontalBarsRTL(t *testing.T) {
	html, err := HorizontalBars(600, 200, sampleBars(), BarOpts{Title: "لوحة", RTL: true})
	require.NoError(t, err)
	out := string(html)
	assert.Contains(t, out, `text-anchor="start"`)
	assert.Contains(t, out, `id="chart-hbar-title"`)
}

func TestHorizontalBarsErrors(t *testing.T) {
	_, err := HorizontalBars(600, 200, nil, BarOpts{})
	assert.ErrorIs(t, err, ErrNoBars)

	_, err = HorizontalBars(100, 40, sampleBars(), BarOpts{})
	assert.Error(t, err)
}

func TestHorizontalBarsAllZero(t *testing.T) {
	_, err := HorizontalBars(600, 200, []Bar{{Label: "a"}, {Label: "b"}}, BarOpts{})
	assert.NoError(t, err)
}

func TestFormatTick(t *testing.T) {
	assert.Equal(t, "0", formatTick(0))
	assert.Equal(t, "92.5", formatTick(92.5))
	assert.Equal(t, "175k", formatTick(175000))
	assert.Equal(t, "1.2M", formatTick(1_200_000))
}
