package values

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"varsift/api/models/constants"
	valueKind "varsift/api/models/constants/value-kind"
)

// machineEpsilon is the float64 unit roundoff. Number equality is kept this
// tight deliberately; quality scores that round-trip through text may compare
// unequal, and widening the tolerance would change filter results silently.
var machineEpsilon = math.Nextafter(1, 2) - 1

// Value is the closed result type shared by the header resolver, the row
// decoder and the evaluator. Missing is distinct from an empty string and
// from zero; the zero Value is Missing.
type Value struct {
	kind constants.ValueKind
	str  string
	num  float64
	b    bool
	arr  []Value
}

func Missing() Value {
	return Value{kind: valueKind.Missing}
}

func String(text string) Value {
	return Value{kind: valueKind.String, str: text}
}

func Number(num float64) Value {
	return Value{kind: valueKind.Number, num: num}
}

func Bool(b bool) Value {
	return Value{kind: valueKind.Bool, b: b}
}

func Array(items []Value) Value {
	return Value{kind: valueKind.Array, arr: items}
}

func (v Value) Kind() constants.ValueKind {
	return v.kind
}

func (v Value) KindName() string {
	return valueKind.ToString(v.kind)
}

func (v Value) IsMissing() bool {
	return v.kind == valueKind.Missing
}

func (v Value) AsString() (string, bool) {
	if v.kind != valueKind.String {
		return "", false
	}
	return v.str, true
}

func (v Value) AsNumber() (float64, bool) {
	if v.kind != valueKind.Number {
		return 0, false
	}
	return v.num, true
}

func (v Value) AsBool() (bool, bool) {
	if v.kind != valueKind.Bool {
		return false, false
	}
	return v.b, true
}

func (v Value) AsArray() ([]Value, bool) {
	if v.kind != valueKind.Array {
		return nil, false
	}
	return v.arr, true
}

// Truthy is the boolean coercion used by logical operators and by the final
// accept/reject decision: Bool as-is, Missing false, String true when
// non-empty, Number true when nonzero, Array true when non-empty.
func (v Value) Truthy() bool {
	switch v.kind {
	case valueKind.Bool:
		return v.b
	case valueKind.String:
		return v.str != ""
	case valueKind.Number:
		return v.num != 0
	case valueKind.Array:
		return len(v.arr) > 0
	default:
		return false
	}
}

func (v Value) String() string {
	switch v.kind {
	case valueKind.String:
		return v.str
	case valueKind.Number:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case valueKind.Bool:
		return strconv.FormatBool(v.b)
	case valueKind.Array:
		parts := make([]string, 0, len(v.arr))
		for _, item := range v.arr {
			parts = append(parts, item.String())
		}
		return fmt.Sprintf("[%s]", strings.Join(parts, ", "))
	default:
		return "."
	}
}

// ParseFloat is the shared numeric parse used wherever a textual token may
// be a number; keeping one call site contract avoids divergent fallbacks
// between the decoder and the evaluator. No whitespace trimming: "30 " is
// not a number.
func ParseFloat(text string) (float64, bool) {
	num, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false
	}
	return num, true
}

// NumberOrString parses text as a number when possible and keeps it as a
// plain string otherwise.
func NumberOrString(text string) Value {
	if num, ok := ParseFloat(text); ok {
		return Number(num)
	}
	return String(text)
}

func NumbersEqual(left float64, right float64) bool {
	return math.Abs(left-right) < machineEpsilon
}

// Equal implements the equality table shared by == and != :
// like kinds compare directly (numbers within machine epsilon), a string
// that parses as a number compares numerically against a number, a pair of
// missings is equal, and every other pairing is unequal without error.
func Equal(left Value, right Value) bool {
	if left.IsMissing() && right.IsMissing() {
		return true
	}
	if left.IsMissing() || right.IsMissing() {
		return false
	}

	switch left.kind {
	case valueKind.String:
		switch right.kind {
		case valueKind.String:
			return left.str == right.str
		case valueKind.Number:
			if num, ok := ParseFloat(left.str); ok {
				return NumbersEqual(num, right.num)
			}
			return false
		}
	case valueKind.Number:
		switch right.kind {
		case valueKind.Number:
			return NumbersEqual(left.num, right.num)
		case valueKind.String:
			if num, ok := ParseFloat(right.str); ok {
				return NumbersEqual(left.num, num)
			}
			return false
		}
	case valueKind.Bool:
		if rb, ok := right.AsBool(); ok {
			return left.b == rb
		}
	}

	return false
}
