package kpi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestClassifyBoundaries(t *testing.T) {
	cases := []struct {
		name  string
		typ   Type
		value float64
		want  Tier
	}{
		{"rent at good boundary", RentCollection, 80, Good},
		{"rent just below good", RentCollection, 79.999, Warning},
		{"rent at warning boundary", RentCollection, 60, Warning},
		{"rent below warning", RentCollection, 59.99, Critical},
		{"overdue zero", Overdue, 0, Good},
		{"overdue small", Overdue, 0.01, Warning},
		{"overdue negative balance", Overdue, -1, Warning},
		{"overdue at warning boundary", Overdue, 1000, Warning},
		{"overdue above warning", Overdue, 1000.01, Critical},
		{"sla at good boundary", SLACompliance, 85, Good},
		{"sla below good", SLACompliance, 84.9, Warning},
		{"sla at warning boundary", SLACompliance, 70, Warning},
		{"sla below warning", SLACompliance, 69.9, Critical},
		{"resolution at good boundary", Resolution, 24, Good},
		{"resolution above good", Resolution, 24.1, Warning},
		{"resolution at warning boundary", Resolution, 48, Warning},
		{"resolution above warning", Resolution, 48.5, Critical},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(ptr(tc.value), tc.typ))
		})
	}
}

func TestClassifyUnknown(t *testing.T) {
	for _, typ := range Types {
		assert.Equal(t, Unknown, Classify(nil, typ), "nil value for %s", typ)
	}
	assert.Equal(t, Unknown, Classify(ptr(50), Type("bogus")))
}

func TestClassifyDisplayRestoresOverdueScale(t *testing.T) {
	// 1.5 on the chart is 1500 SAR, which is critical; classifying the
	// display value directly would wrongly report warning.
	display := ToDisplay(1500, Overdue)
	assert.InDelta(t, 1.5, display, 1e-9)
	assert.Equal(t, Critical, ClassifyDisplay(display, Overdue))
	assert.Equal(t, Warning, ClassifyValue(display, Overdue))

	assert.Equal(t, Warning, ClassifyDisplay(ToDisplay(1000, Overdue), Overdue))
	assert.Equal(t, Good, ClassifyDisplay(0, Overdue))
	assert.Equal(t, Good, ClassifyDisplay(92.5, RentCollection))
}

func TestTierColor(t *testing.T) {
	assert.Equal(t, ColorGreen, Good.Color())
	assert.Equal(t, ColorOrange, Warning.Color())
	assert.Equal(t, ColorRed, Critical.Color())
	assert.Equal(t, ColorGray, Unknown.Color())
}

func TestParseType(t *testing.T) {
	typ, err := ParseType(" SLACompliance ")
	require.NoError(t, err)
	assert.Equal(t, SLACompliance, typ)

	_, err = ParseType("uptime")
	require.Error(t, err)
}

func TestTierSeverityOrder(t *testing.T) {
	assert.Less(t, Unknown.Severity(), Good.Severity())
	assert.Less(t, Good.Severity(), Warning.Severity())
	assert.Equal(t, 3, Critical.Severity())
}
