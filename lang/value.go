package lang

import (
	"math"
	"strconv"
)

// Value is a runtime value of the language.
//
// The set of implementations is closed: [String], [Double], [Bool] and [Nil].
// A nil Value (the interface zero value) is never produced by evaluation; it
// only marks an absent literal on a [Token] or an uninitialized binding in an
// [Environment].
type Value interface {
	// Display returns the display form of the value: strings are quoted,
	// everything else matches String.
	Display() string

	// String returns the printed form of the value, as written by print.
	String() string

	value()
}

type (
	// String is a text value.
	String string

	// Double is a 64-bit floating point number.
	Double float64

	// Bool is a boolean value.
	Bool bool

	// Nil is the absence of a value.
	Nil struct{}
)

func (String) value() {}
func (Double) value() {}
func (Bool) value()   {}
func (Nil) value()    {}

func (s String) Display() string { return strconv.Quote(string(s)) }
func (s String) String() string  { return string(s) }

func (d Double) Display() string { return d.String() }

func (d Double) String() string {
	f := float64(d)

	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "NaN"
	}

	return strconv.FormatFloat(f, 'f', -1, 64)
}

func (b Bool) Display() string { return b.String() }
func (b Bool) String() string  { return strconv.FormatBool(bool(b)) }

func (Nil) Display() string { return "nil" }
func (Nil) String() string  { return "nil" }

// ValuesEqual reports whether a and b are the same variant holding equal
// payloads. Values of different variants are never equal. Doubles compare
// with IEEE semantics, so NaN is not equal to itself.
func ValuesEqual(a, b Value) bool {
	switch x := a.(type) {
	case String:
		y, ok := b.(String)

		return ok && x == y

	case Double:
		y, ok := b.(Double)

		return ok && x == y

	case Bool:
		y, ok := b.(Bool)

		return ok && x == y

	case Nil:
		_, ok := b.(Nil)

		return ok

	default:
		return a == nil && b == nil
	}
}

// Truthy reports the truthiness of v.
// Only nil and false are falsy; zero and the empty string are truthy.
func Truthy(v Value) bool {
	switch x := v.(type) {
	case Nil:
		return false
	case Bool:
		return bool(x)
	case nil:
		return false
	default:
		return true
	}
}

// TypeName returns a short human-readable name for the variant of v.
func TypeName(v Value) string {
	switch v.(type) {
	case String:
		return "string"
	case Double:
		return "number"
	case Bool:
		return "boolean"
	case Nil:
		return "nil"
	default:
		return "undefined"
	}
}
