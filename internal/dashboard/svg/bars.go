// Package svg renders the dashboard's inline SVG charts.
package svg

import (
	"errors"
	"fmt"
	"html/template"
	"strings"
)

// ErrNoBars is returned when there is nothing to draw.
var ErrNoBars = errors.New("svg: at least one bar required")

// HorizontalBars renders one horizontal bar per entry, category labels on the
// leading edge and the value printed at the end of each bar.
func HorizontalBars(width, height int, bars []Bar, opts BarOpts) (template.HTML, error) {
	if len(bars) == 0 {
		return "", ErrNoBars
	}
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	padding := opts.Padding
	if padding <= 0 {
		padding = DefaultPadding
	}
	labelWidth := opts.LabelWidth
	if labelWidth <= 0 {
		labelWidth = DefaultLabelWidth
	}
	tickCount := opts.TickCount
	if tickCount <= 0 {
		tickCount = DefaultTicks
	}

	axisColor := fallback(opts.AxisColor, "#475569")
	gridColor := fallback(opts.GridColor, "#cbd5e1")
	barColor := fallback(opts.BarColor, "#0ea5e9")

	chartWidth := float64(width) - 2*padding - labelWidth
	chartHeight := float64(height) - 2*padding
	if chartWidth <= 0 || chartHeight <= 0 {
		return "", fmt.Errorf("svg: viewport too small")
	}

	minVal, maxVal := bounds(bars)
	if minVal > 0 {
		minVal = 0
	}
	if maxVal < 0 {
		maxVal = 0
	}
	if almostEqual(maxVal, minVal) {
		maxVal = minVal + 1
	}
	scale := chartWidth / (maxVal - minVal)

	// x maps a value onto the horizontal axis, mirrored for right-to-left.
	chartLeft := padding + labelWidth
	if opts.RTL {
		chartLeft = padding
	}
	x := func(v float64) float64 {
		offset := (v - minVal) * scale
		if opts.RTL {
			return chartLeft + chartWidth - offset
		}
		return chartLeft + offset
	}

	labelX, labelAnchor, valueAnchor := padding+labelWidth-8, "end", "start"
	if opts.RTL {
		labelX, labelAnchor, valueAnchor = padding+chartWidth+8, "start", "end"
	}

	titleID := makeID(opts.Title, "hbar-title")
	descID := makeID(opts.Title, "hbar-desc")

	var b strings.Builder
	fmt.Fprintf(&b, "<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"0 0 %d %d\" role=\"img\" aria-labelledby=\"%s %s\">", width, height, titleID, descID)
	fmt.Fprintf(&b, "<title id=\"%s\">%s</title>", titleID, template.HTMLEscapeString(fallback(opts.Title, "Bar chart")))
	fmt.Fprintf(&b, "<desc id=\"%s\">%s</desc>", descID, template.HTMLEscapeString(fallback(opts.Description, "Horizontal bar comparison")))

	for i := 0; i <= tickCount; i++ {
		value := minVal + (maxVal-minVal)*float64(i)/float64(tickCount)
		tx := x(value)
		fmt.Fprintf(&b, "<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke=\"%s\" stroke-width=\"0.5\" stroke-dasharray=\"2,4\" aria-hidden=\"true\"></line>", tx, padding, tx, padding+chartHeight, gridColor)
		fmt.Fprintf(&b, "<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\" text-anchor=\"middle\">%s</text>", tx, padding+chartHeight+14, axisColor, template.HTMLEscapeString(formatTick(value)))
	}

	zeroX := x(0)
	fmt.Fprintf(&b, "<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke=\"%s\" stroke-width=\"1\"></line>", zeroX, padding, zeroX, padding+chartHeight, axisColor)

	rowHeight := chartHeight / float64(len(bars))
	barHeight := rowHeight * 0.6
	for i, bar := range bars {
		top := padding + float64(i)*rowHeight + (rowHeight-barHeight)/2
		mid := top + barHeight/2 + 4
		end := x(bar.Value)
		left, right := zeroX, end
		if left > right {
			left, right = right, left
		}
		label := template.HTMLEscapeString(bar.Label)
		text := bar.Text
		if text == "" {
			text = formatTick(bar.Value)
		}

		fmt.Fprintf(&b, "<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"11\" text-anchor=\"%s\">%s</text>", labelX, mid, axisColor, labelAnchor, label)
		fmt.Fprintf(&b, "<rect x=\"%.2f\" y=\"%.2f\" width=\"%.2f\" height=\"%.2f\" fill=\"%s\" aria-label=\"%s\"></rect>", left, top, right-left, barHeight, fallback(bar.Color, barColor), label)

		valueX := end + 4
		if opts.RTL {
			valueX = end - 4
		}
		fmt.Fprintf(&b, "<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\" text-anchor=\"%s\">%s</text>", valueX, mid, axisColor, valueAnchor, template.HTMLEscapeString(text))
	}

	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}
