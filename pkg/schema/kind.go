// Package schema defines the value domain shared by every column, index, and
// table in tablekit: the four scalar kinds a column can hold, and the typed
// Value that carries one of them around without an interface-per-value
// allocation.
package schema

import (
	"fmt"
	"math"
	"strconv"
)

// Kind is one of the four scalar types a column may hold.
type Kind int

const (
	Int Kind = iota
	Double
	Bool
	String
)

// String renders the kind the way CREATE spells it.
func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case Double:
		return "double"
	case Bool:
		return "bool"
	case String:
		return "string"
	default:
		return "unknown"
	}
}

// ParseKind maps a CREATE type token to a Kind.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "int":
		return Int, true
	case "double":
		return Double, true
	case "bool":
		return Bool, true
	case "string":
		return String, true
	default:
		return Kind(0), false
	}
}

// Op is a predicate comparison operator, adapted from the teacher's
// builder.Condition operator vocabulary down to the three the command
// grammar supports.
type Op int

const (
	Eq Op = iota
	Gt
	Lt
)

// ParseOp maps a single-character WHERE operator token to an Op.
func ParseOp(s string) (Op, bool) {
	switch s {
	case "=":
		return Eq, true
	case ">":
		return Gt, true
	case "<":
		return Lt, true
	default:
		return Op(0), false
	}
}

func (o Op) String() string {
	switch o {
	case Eq:
		return "="
	case Gt:
		return ">"
	case Lt:
		return "<"
	default:
		return "?"
	}
}

// Value is a single scalar of one of the four kinds. Only the field matching
// Kind is meaningful; this mirrors the four homogeneous sequences a Column
// picks between rather than boxing every value behind an interface.
type Value struct {
	Kind Kind
	I    int64
	D    float64
	B    bool
	S    string
}

func IntValue(i int64) Value    { return Value{Kind: Int, I: i} }
func DoubleValue(d float64) Value { return Value{Kind: Double, D: d} }
func BoolValue(b bool) Value    { return Value{Kind: Bool, B: b} }
func StringValue(s string) Value { return Value{Kind: String, S: s} }

// ParseValueError reports a literal that cannot be parsed as the target kind.
type ParseValueError struct {
	Kind  Kind
	Token string
	Err   error
}

func (e *ParseValueError) Error() string {
	return fmt.Sprintf("cannot parse %q as %s: %v", e.Token, e.Kind, e.Err)
}

func (e *ParseValueError) Unwrap() error { return e.Err }

// Parse converts a single whitespace-delimited token into a Value of kind k.
func Parse(k Kind, token string) (Value, error) {
	switch k {
	case Int:
		i, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			return Value{}, &ParseValueError{Kind: k, Token: token, Err: err}
		}
		return IntValue(i), nil
	case Double:
		d, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return Value{}, &ParseValueError{Kind: k, Token: token, Err: err}
		}
		return DoubleValue(d), nil
	case Bool:
		// Case-sensitive per spec: only the literals "true"/"false" parse.
		if token == "true" {
			return BoolValue(true), nil
		}
		if token == "false" {
			return BoolValue(false), nil
		}
		return Value{}, &ParseValueError{Kind: k, Token: token, Err: fmt.Errorf("want true or false")}
	case String:
		return StringValue(token), nil
	default:
		return Value{}, fmt.Errorf("unknown kind %v", k)
	}
}

// Render prints a value the way PRINT emits it.
func (v Value) Render() string {
	switch v.Kind {
	case Int:
		return strconv.FormatInt(v.I, 10)
	case Double:
		return strconv.FormatFloat(v.D, 'g', -1, 64)
	case Bool:
		if v.B {
			return "true"
		}
		return "false"
	case String:
		return v.S
	default:
		return ""
	}
}

// Compare performs the three-way comparison spec.md §4.1 requires: -1, 0, +1.
// Both values must share v.Kind; mismatched kinds are a programmer error, not
// a runtime error, since the engine only ever compares same-column data
// against a probe value parsed for that column's kind.
func (v Value) Compare(other Value) int {
	switch v.Kind {
	case Int:
		switch {
		case v.I < other.I:
			return -1
		case v.I > other.I:
			return 1
		default:
			return 0
		}
	case Double:
		switch {
		case v.D < other.D:
			return -1
		case v.D > other.D:
			return 1
		default:
			return 0
		}
	case Bool:
		// false < true
		if v.B == other.B {
			return 0
		}
		if !v.B && other.B {
			return -1
		}
		return 1
	case String:
		switch {
		case v.S < other.S:
			return -1
		case v.S > other.S:
			return 1
		default:
			return 0
		}
	default:
		return 0
	}
}

// Equal is Compare(other) == 0, spelled out per kind.
func (v Value) Equal(other Value) bool {
	switch v.Kind {
	case Int:
		return v.I == other.I
	case Double:
		return v.D == other.D
	case Bool:
		return v.B == other.B
	case String:
		return v.S == other.S
	default:
		return false
	}
}

// HashKey returns a comparable Go value suitable for use as a map key, so the
// hash index doesn't need a custom hash function. Doubles key on their
// IEEE-754 bit pattern (spec.md §9 Open Question 4: well-defined for finite,
// non-NaN values only).
func (v Value) HashKey() any {
	switch v.Kind {
	case Int:
		return v.I
	case Double:
		d := v.D
		if d == 0 {
			d = 0 // -0 and +0 compare equal, so they share one key
		}
		return math.Float64bits(d)
	case Bool:
		return v.B
	case String:
		return v.S
	default:
		return nil
	}
}
