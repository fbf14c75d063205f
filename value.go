package sai

import (
	"fmt"
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// ValueType represents the type of a value.
type ValueType int8

// Predefined value types
const (
	Undefined ValueType = iota
	NumericType
	BooleanType
)

func (vt ValueType) String() string {
	switch vt {
	case Undefined:
		return "<undefined>"
	case NumericType:
		return "numeric"
	case BooleanType:
		return "boolean"
	}
	return fmt.Sprintf("<illegal type: %d>", vt)
}

// --- Value -----------------------------------------------------------------

// Value is a runtime value. Values cross component boundaries as decimal
// text literals (booleans are "0" and "1"); within the evaluator they are
// kept as a tagged float/bool.
//
// The zero value is undefined. It is the result of a call to a subroutine
// which did not return anything.
type Value struct {
	typ ValueType
	f   float64
}

// None is the undefined value.
var None = Value{}

// FromFloat creates a numeric value from a float.
func FromFloat(f float64) Value {
	return Value{typ: NumericType, f: f}
}

// FromBool creates a boolean value.
func FromBool(b bool) Value {
	if b {
		return Value{typ: BooleanType, f: 1}
	}
	return Value{typ: BooleanType, f: 0}
}

// Type returns the value type of a value.
func (v Value) Type() ValueType {
	return v.typ
}

// IsKnown is a predicate: is this a defined value?
func (v Value) IsKnown() bool {
	return v.typ != Undefined
}

// AsFloat returns a value as a float. Booleans convert to 0 or 1.
func (v Value) AsFloat() (float64, error) {
	if v.typ == Undefined {
		return math.NaN(), fmt.Errorf("%w: value is undefined", ErrInvalidInput)
	}
	return v.f, nil
}

// AsBool returns the truth value of v. Any non-zero number is true.
func (v Value) AsBool() (bool, error) {
	if v.typ == Undefined {
		return false, fmt.Errorf("%w: value is undefined", ErrInvalidInput)
	}
	return v.f != 0, nil
}

// Literal returns the decimal text rendering of a value. Literals produced
// by Literal are parsed back by ParseLiteral to exactly the same float.
func (v Value) Literal() string {
	switch v.typ {
	case Undefined:
		return ""
	case BooleanType:
		if v.f != 0 {
			return "1"
		}
		return "0"
	}
	return formatFloat(v.f)
}

func (v Value) String() string {
	if v.typ == Undefined {
		return "<none>"
	}
	return v.Literal()
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "+Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	}
	return decimal.NewFromFloat(f).String()
}

// ParseLiteral converts a decimal text literal to a numeric value.
func ParseLiteral(lit string) (Value, error) {
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		tracer().Errorf("not a numeric literal: %q", lit)
		return None, fmt.Errorf("%w: not a numeric literal: %q", ErrInvalidInput, lit)
	}
	return FromFloat(f), nil
}

// FormatLiteral rounds a numeric literal to prec decimal places for
// display. A negative prec or a non-finite literal leaves lit unchanged.
// Trailing zeros are never shown.
func FormatLiteral(lit string, prec int) string {
	if prec < 0 {
		return lit
	}
	d, err := decimal.NewFromString(lit)
	if err != nil {
		return lit
	}
	return d.Round(int32(prec)).String()
}
