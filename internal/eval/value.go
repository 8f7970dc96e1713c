package eval

import (
	"math"
	"strconv"
	"strings"
)

// Value is a Jolt runtime value: Number, String, Bool or Undefined.
type Value interface {
	// Type names the value's runtime type as reported by `type`.
	Type() string
	String() string
	value()
}

type Number float64

type String string

type Bool bool

// Undefined is the absence of a value: an unassigned variable or an
// operation on operands it does not accept.
type Undefined struct{}

func (Number) Type() string    { return "number" }
func (String) Type() string    { return "string" }
func (Bool) Type() string      { return "boolean" }
func (Undefined) Type() string { return "undefined" }

func (n Number) String() string {
	return formatNumber(float64(n))
}

func (s String) String() string {
	return string(s)
}

func (b Bool) String() string {
	return strconv.FormatBool(bool(b))
}

func (Undefined) String() string {
	return "undefined"
}

func (Number) value()    {}
func (String) value()    {}
func (Bool) value()      {}
func (Undefined) value() {}

// Truthy reports whether v selects the first branch of a conditional.
// Zero, NaN, the empty string, false and undefined are falsy.
func Truthy(v Value) bool {
	switch v := v.(type) {
	case Bool:
		return bool(v)
	case Number:
		return v != 0 && !math.IsNaN(float64(v))
	case String:
		return v != ""
	default:
		return false
	}
}

func isDefined(v Value) bool {
	if v == nil {
		return false
	}
	_, undef := v.(Undefined)
	return !undef
}

func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	if abs := math.Abs(f); abs >= 1e21 || abs < 1e-6 {
		return trimExponent(strconv.FormatFloat(f, 'g', -1, 64))
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// trimExponent drops the zero padding strconv puts in front of a one-digit
// exponent: 1e-07 becomes 1e-7.
func trimExponent(s string) string {
	i := strings.IndexByte(s, 'e')
	if i < 0 || i+2 >= len(s) {
		return s
	}
	mantissa, sign, digits := s[:i+1], s[i+1:i+2], strings.TrimLeft(s[i+2:], "0")
	if digits == "" {
		digits = "0"
	}
	return mantissa + sign + digits
}
