// Package models defines data structures shared by table sources and writers.
package models

import (
	"math"
	"strconv"
	"time"
)

// Kind tags the type held by a Value.
type Kind int

const (
	// KindEmpty marks a missing or blank cell.
	KindEmpty Kind = iota
	// KindNumber holds a float64.
	KindNumber
	// KindText holds a string.
	KindText
	// KindBoolean holds a bool.
	KindBoolean
	// KindDate holds a time.Time.
	KindDate
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	case KindBoolean:
		return "boolean"
	case KindDate:
		return "date"
	default:
		return "empty"
	}
}

// Layouts used when a date is rendered as text.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02T15:04:05"
)

// Value is a single cell value. The zero Value is empty.
type Value struct {
	Kind Kind
	Num  float64
	Str  string
	Bool bool
	Time time.Time
}

// Empty returns the placeholder used for blank cells.
func Empty() Value { return Value{} }

// Number wraps a numeric cell.
func Number(f float64) Value { return Value{Kind: KindNumber, Num: f} }

// Text wraps a string cell.
func Text(s string) Value { return Value{Kind: KindText, Str: s} }

// Boolean wraps a boolean cell.
func Boolean(b bool) Value { return Value{Kind: KindBoolean, Bool: b} }

// Date wraps a date or date-time cell.
func Date(t time.Time) Value { return Value{Kind: KindDate, Time: t} }

// IsEmpty reports whether the value is the blank placeholder.
func (v Value) IsEmpty() bool { return v.Kind == KindEmpty }

// String renders the value the way flat text formats store it: numbers in
// shortest decimal form, booleans as TRUE/FALSE and dates as ISO-8601.
func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		if math.IsNaN(v.Num) || math.IsInf(v.Num, 0) {
			return ""
		}
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindText:
		return v.Str
	case KindBoolean:
		if v.Bool {
			return "TRUE"
		}
		return "FALSE"
	case KindDate:
		return FormatDate(v.Time)
	default:
		return ""
	}
}

// Interface returns the native Go value: nil, float64, string, bool or
// time.Time.
func (v Value) Interface() any {
	switch v.Kind {
	case KindNumber:
		return v.Num
	case KindText:
		return v.Str
	case KindBoolean:
		return v.Bool
	case KindDate:
		return v.Time
	default:
		return nil
	}
}

// FormatDate renders t as a date, or as a date-time when it has a clock part.
func FormatDate(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format(DateLayout)
	}
	return t.Format(DateTimeLayout)
}
