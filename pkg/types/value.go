// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// ValueKind is the runtime type of a cleaned value.
type ValueKind string

const (
	KindMissing ValueKind = "missing"
	KindText    ValueKind = "text"
	KindInt     ValueKind = "int"
	KindFloat   ValueKind = "float"
	KindBool    ValueKind = "bool"
	KindTime    ValueKind = "time"
)

// Value is a typed cell. A missing value has Kind KindMissing and carries no
// payload; it is never encoded as NaN or zero.
type Value struct {
	Kind  ValueKind
	Text  string
	Int   int64
	Float float64
	Bool  bool
	Time  time.Time
}

// MissingValue returns the missing value.
func MissingValue() Value { return Value{Kind: KindMissing} }

// TextValue returns a text value.
func TextValue(s string) Value { return Value{Kind: KindText, Text: s} }

// IntValue returns an integer value.
func IntValue(i int64) Value { return Value{Kind: KindInt, Int: i} }

// FloatValue returns a float value.
func FloatValue(f float64) Value { return Value{Kind: KindFloat, Float: f} }

// BoolValue returns a boolean value.
func BoolValue(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// TimeValue returns a timestamp value.
func TimeValue(t time.Time) Value { return Value{Kind: KindTime, Time: t} }

// IsMissing reports whether v is the missing value. The zero Value is
// treated as missing too.
func (v Value) IsMissing() bool { return v.Kind == KindMissing || v.Kind == "" }

// Numeric returns v as a float64 for int and float values.
func (v Value) Numeric() (float64, bool) {
	switch v.Kind {
	case KindInt:
		return float64(v.Int), true
	case KindFloat:
		return v.Float, true
	}
	return 0, false
}

// Format renders v for text output. Missing values render as naRep.
// Floats always carry a fractional part ("500.0") and midnight timestamps
// render as a bare date.
func (v Value) Format(naRep string) string {
	switch v.Kind {
	case KindText:
		return v.Text
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		return formatFloat(v.Float)
	case KindBool:
		if v.Bool {
			return "True"
		}
		return "False"
	case KindTime:
		return formatTime(v.Time)
	default:
		return naRep
	}
}

// String renders v with an empty missing marker.
func (v Value) String() string { return v.Format("") }

func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func formatTime(t time.Time) string {
	h, m, s := t.Clock()
	if h == 0 && m == 0 && s == 0 && t.Nanosecond() == 0 {
		return t.Format(time.DateOnly)
	}
	return t.Format(time.DateTime)
}

// DType names the runtime type of a whole column.
type DType string

const (
	DTypeInt    DType = "int64"
	DTypeFloat  DType = "float64"
	DTypeBool   DType = "bool"
	DTypeTime   DType = "datetime64"
	DTypeString DType = "string"
	DTypeObject DType = "object"
	DTypeEmpty  DType = "empty"
)

// InferDType derives the column type from the kinds of its non-missing
// values. Integer columns that also hold floats widen to float64; any other
// mix is object. A column with no values at all is empty.
func InferDType(values []Value) DType {
	seen := make(map[ValueKind]bool)
	for _, v := range values {
		if !v.IsMissing() {
			seen[v.Kind] = true
		}
	}

	switch len(seen) {
	case 0:
		return DTypeEmpty
	case 1:
		for k := range seen {
			return dtypeOf(k)
		}
	case 2:
		if seen[KindInt] && seen[KindFloat] {
			return DTypeFloat
		}
	}
	return DTypeObject
}

func dtypeOf(k ValueKind) DType {
	switch k {
	case KindInt:
		return DTypeInt
	case KindFloat:
		return DTypeFloat
	case KindBool:
		return DTypeBool
	case KindTime:
		return DTypeTime
	case KindText:
		return DTypeString
	}
	return DTypeObject
}
