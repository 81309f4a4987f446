package backend

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const dateLayout = "2006-01-02"

// Float returns the numeric value stored under column, or nil when the
// column is absent, null or not numeric.
func (r Row) Float(column string) *float64 {
	v, ok := r[column]
	if !ok || v == nil {
		return nil
	}
	f, ok := toFloat64(v)
	if !ok {
		return nil
	}
	return &f
}

// Int returns the integer value stored under column.
func (r Row) Int(column string) *int64 {
	v, ok := r[column]
	if !ok || v == nil {
		return nil
	}
	switch val := v.(type) {
	case int64:
		return &val
	case int32:
		n := int64(val)
		return &n
	case int:
		n := int64(val)
		return &n
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return &n
		}
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64); err == nil {
			return &n
		}
	}
	f, ok := toFloat64(v)
	if !ok || f != math.Trunc(f) {
		return nil
	}
	n := int64(f)
	return &n
}

// String returns the textual value stored under column.
func (r Row) String(column string) *string {
	v, ok := r[column]
	if !ok || v == nil {
		return nil
	}
	s := toString(v)
	return &s
}

func toFloat64(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int64:
		return float64(val), true
	case int32:
		return float64(val), true
	case int16:
		return float64(val), true
	case int:
		return float64(val), true
	case uint64:
		return float64(val), true
	case uint32:
		return float64(val), true
	case json.Number:
		f, err := val.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		return f, err == nil
	case pgtype.Numeric:
		f, err := val.Float64Value()
		if err != nil || !f.Valid {
			return 0, false
		}
		return f.Float64, true
	default:
		return 0, false
	}
}

func toString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	case [16]byte:
		return uuid.UUID(val).String()
	case time.Time:
		return formatTime(val)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

// formatTime renders calendar dates without a time component.
func formatTime(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format(dateLayout)
	}
	return t.Format(time.RFC3339)
}

// plainValue converts driver specific values into the JSON-like shapes the
// REST backend produces, so callers see one representation.
func plainValue(v any) any {
	switch val := v.(type) {
	case [16]byte:
		return uuid.UUID(val).String()
	case pgtype.Numeric:
		f, ok := toFloat64(val)
		if !ok {
			return nil
		}
		return f
	case time.Time:
		return formatTime(val)
	default:
		return v
	}
}
