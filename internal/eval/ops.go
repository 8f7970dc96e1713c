package eval

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// binary applies + - * /. Numbers add; strings, or a string and a number,
// concatenate. Every other combination is Undefined.
func binary(op string, left, right Value) Value {
	if l, ok := left.(Number); ok {
		if r, ok := right.(Number); ok {
			return arithmetic(op, l, r)
		}
	}
	if op == "+" && stringLike(left) && stringLike(right) {
		return String(left.String() + right.String())
	}
	return Undefined{}
}

func arithmetic(op string, l, r Number) Value {
	switch op {
	case "+":
		return l + r
	case "-":
		return l - r
	case "*":
		return l * r
	case "/":
		return l / r
	default:
		return Undefined{}
	}
}

func stringLike(v Value) bool {
	switch v.(type) {
	case String, Number:
		return true
	default:
		return false
	}
}

// compare applies < > ==. Two strings are ordered by their bytes; any
// other pair is ordered as numbers, so a string that does not read as a
// number compares false. Equality between different types converts
// booleans and strings to numbers; undefined only equals undefined.
func compare(op string, left, right Value) Value {
	switch op {
	case "<", ">":
		return order(op, left, right)
	case "==":
		return Bool(looseEqual(left, right))
	default:
		return Undefined{}
	}
}

func order(op string, left, right Value) Value {
	if l, ok := left.(String); ok {
		if r, ok := right.(String); ok {
			if op == "<" {
				return Bool(l < r)
			}
			return Bool(l > r)
		}
	}
	l, r := toNumber(left), toNumber(right)
	if op == "<" {
		return Bool(l < r)
	}
	return Bool(l > r)
}

func looseEqual(left, right Value) bool {
	_, lu := left.(Undefined)
	_, ru := right.(Undefined)
	if lu || ru {
		return lu && ru
	}
	switch l := left.(type) {
	case String:
		if r, ok := right.(String); ok {
			return l == r
		}
	case Bool:
		if r, ok := right.(Bool); ok {
			return l == r
		}
	}
	return toNumber(left) == toNumber(right)
}

// toNumber converts v the way arithmetic comparison sees it: true is 1,
// false is 0, a string is read as a numeric literal and undefined is NaN.
func toNumber(v Value) float64 {
	switch v := v.(type) {
	case Number:
		return float64(v)
	case Bool:
		if v {
			return 1
		}
		return 0
	case String:
		return parseNumeric(string(v))
	default:
		return math.NaN()
	}
}

// parseNumeric reads s as a numeric literal: surrounding whitespace is
// ignored, an empty string is 0, and anything malformed is NaN.
func parseNumeric(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			n, err := strconv.ParseUint(s[2:], base, 64)
			if err != nil {
				return math.NaN()
			}
			return float64(n)
		}
	}
	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	if !decimalLiteral(s) {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math.NaN()
	}
	return f
}

// decimalLiteral reports whether s is [+-]digits[.digits][e[+-]digits]
// with at least one digit in the mantissa.
func decimalLiteral(s string) bool {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for ; i < len(s) && isDigit(s[i]); i++ {
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for ; i < len(s) && isDigit(s[i]); i++ {
			digits++
		}
	}
	if digits == 0 {
		return false
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		exp := 0
		for ; i < len(s) && isDigit(s[i]); i++ {
			exp++
		}
		if exp == 0 {
			return false
		}
	}
	return i == len(s)
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// compoundOperator maps an assignment operator to the binary operator it
// applies, or "" for plain assignment.
func compoundOperator(op string) string {
	switch op {
	case "+=", "-=", "*=", "/=":
		return op[:1]
	default:
		return ""
	}
}
