// Package kpi derives severity tiers from dashboard KPI values.
package kpi

import (
	"fmt"
	"strings"
)

// Type identifies a KPI metric with its own threshold table.
type Type string

// Supported KPI types.
const (
	RentCollection Type = "rentCollection"
	Overdue        Type = "overdue"
	SLACompliance  Type = "slaCompliance"
	Resolution     Type = "resolution"
)

// Types lists every supported KPI type in dashboard order.
var Types = []Type{RentCollection, Overdue, SLACompliance, Resolution}

// Tier is the severity bucket a KPI value falls into.
type Tier string

// Severity tiers. Unknown means the value is absent.
const (
	Unknown  Tier = "unknown"
	Good     Tier = "good"
	Warning  Tier = "warning"
	Critical Tier = "critical"
)

// Dashboard palette.
const (
	ColorGreen  = "#4CAF50"
	ColorOrange = "#FB8C00"
	ColorRed    = "#E53935"
	ColorGray   = "#666"
)

// OverdueDisplayScale is the divisor applied to overdue balances on charts.
const OverdueDisplayScale = 1000.0

// Threshold holds the two cut-offs separating good, warning and critical.
// For higher-is-better metrics Good and Warning are lower bounds; otherwise
// they are upper bounds. ExactGood restricts the good tier to Good itself.
type Threshold struct {
	Good           float64
	Warning        float64
	HigherIsBetter bool
	ExactGood      bool
}

// Thresholds maps each KPI type to its business cut-offs.
var Thresholds = map[Type]Threshold{
	RentCollection: {Good: 80, Warning: 60, HigherIsBetter: true},
	Overdue:        {Good: 0, Warning: 1000, ExactGood: true},
	SLACompliance:  {Good: 85, Warning: 70, HigherIsBetter: true},
	Resolution:     {Good: 24, Warning: 48},
}

// Classify maps a KPI value onto its tier. Boundary values belong to the
// better tier. A nil value yields Unknown.
func Classify(value *float64, t Type) Tier {
	if value == nil {
		return Unknown
	}
	th, ok := Thresholds[t]
	if !ok {
		return Unknown
	}
	v := *value
	if th.HigherIsBetter {
		switch {
		case v >= th.Good:
			return Good
		case v >= th.Warning:
			return Warning
		default:
			return Critical
		}
	}
	good := v <= th.Good
	if th.ExactGood {
		good = v == th.Good
	}
	switch {
	case good:
		return Good
	case v <= th.Warning:
		return Warning
	default:
		return Critical
	}
}

// ClassifyValue is Classify for a value known to be present.
func ClassifyValue(value float64, t Type) Tier {
	return Classify(&value, t)
}

// DisplayScale returns the divisor a chart applies to the raw value.
func DisplayScale(t Type) float64 {
	if t == Overdue {
		return OverdueDisplayScale
	}
	return 1
}

// ToDisplay converts a raw value into its chart representation.
func ToDisplay(value float64, t Type) float64 {
	return value / DisplayScale(t)
}

// ClassifyDisplay classifies a chart value by first restoring its raw scale.
func ClassifyDisplay(displayValue float64, t Type) Tier {
	return ClassifyValue(displayValue*DisplayScale(t), t)
}

// Color returns the palette colour for the tier.
func (t Tier) Color() string {
	switch t {
	case Good:
		return ColorGreen
	case Warning:
		return ColorOrange
	case Critical:
		return ColorRed
	default:
		return ColorGray
	}
}

// ParseType resolves a KPI type from user input, case-insensitively.
func ParseType(raw string) (Type, error) {
	value := strings.TrimSpace(raw)
	for _, t := range Types {
		if strings.EqualFold(string(t), value) {
			return t, nil
		}
	}
	return "", fmt.Errorf("kpi: unknown type %q", raw)
}

// Severity orders tiers for gauges and alerting: unknown 0, good 1,
// warning 2, critical 3.
func (t Tier) Severity() int {
	switch t {
	case Good:
		return 1
	case Warning:
		return 2
	case Critical:
		return 3
	default:
		return 0
	}
}
