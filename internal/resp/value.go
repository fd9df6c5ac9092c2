package resp

import "bytes"

// Kind identifies a RESP value kind. The constant values are the wire
// sigils, which makes dispatch and debugging straightforward.
type Kind byte

const (
	SimpleString Kind = '+'
	SimpleError  Kind = '-'
	Integer      Kind = ':'
	BulkString   Kind = '$'
	Array        Kind = '*'
	Null         Kind = '_'
	Boolean      Kind = '#'
	Double       Kind = ','
	BigNumber    Kind = '('
	BulkError    Kind = '!'
	Verbatim     Kind = '='
	Map          Kind = '%'
	Attributes   Kind = '|'
	Set          Kind = '~'
	Push         Kind = '>'
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case SimpleString:
		return "simple string"
	case SimpleError:
		return "simple error"
	case Integer:
		return "integer"
	case BulkString:
		return "bulk string"
	case Array:
		return "array"
	case Null:
		return "null"
	case Boolean:
		return "boolean"
	case Double:
		return "double"
	case BigNumber:
		return "big number"
	case BulkError:
		return "bulk error"
	case Verbatim:
		return "verbatim string"
	case Map:
		return "map"
	case Attributes:
		return "attributes"
	case Set:
		return "set"
	case Push:
		return "push"
	default:
		return "unknown"
	}
}

// Value is one decoded RESP value. Only the fields relevant to Kind are
// populated; container kinds own their elements, which may themselves be
// containers of arbitrary depth.
type Value struct {
	Kind Kind

	// Str holds the payload for SimpleString, SimpleError, BulkString,
	// BulkError, BigNumber and Verbatim values.
	Str []byte

	// Int holds the payload for Integer values.
	Int int64

	// Num holds the payload for Double values.
	Num float64

	// Bool holds the payload for Boolean values.
	Bool bool

	// Enc is the three-character encoding tag of a Verbatim value.
	Enc string

	// Elems holds the elements of Array, Set and Push values.
	Elems []Value

	// Pairs holds the entries of Map and Attributes values.
	Pairs []Pair
}

// Pair is one key/value entry of a Map or Attributes value.
type Pair struct {
	Key Value
	Val Value
}

// NewSimpleString builds a simple string value. The payload must not
// contain CRLF; simple strings are encoded without escaping.
func NewSimpleString(s string) Value {
	return Value{Kind: SimpleString, Str: []byte(s)}
}

// NewSimpleError builds a simple error value. The payload must not
// contain CRLF.
func NewSimpleError(s string) Value {
	return Value{Kind: SimpleError, Str: []byte(s)}
}

// NewInteger builds an integer value.
func NewInteger(n int64) Value {
	return Value{Kind: Integer, Int: n}
}

// NewBulkString builds a binary-safe bulk string value.
func NewBulkString(b []byte) Value {
	return Value{Kind: BulkString, Str: b}
}

// NewArray builds an array value from the given elements.
func NewArray(elems ...Value) Value {
	return Value{Kind: Array, Elems: elems}
}

// NewNull builds a null value.
func NewNull() Value {
	return Value{Kind: Null}
}

// Equal reports whether two values are structurally identical.
func Equal(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case SimpleString, SimpleError, BulkString, BulkError, BigNumber:
		return bytes.Equal(a.Str, b.Str)
	case Integer:
		return a.Int == b.Int
	case Null:
		return true
	case Boolean:
		return a.Bool == b.Bool
	case Double:
		return a.Num == b.Num
	case Verbatim:
		return a.Enc == b.Enc && bytes.Equal(a.Str, b.Str)
	case Array, Set, Push:
		if len(a.Elems) != len(b.Elems) {
			return false
		}
		for i := range a.Elems {
			if !Equal(a.Elems[i], b.Elems[i]) {
				return false
			}
		}
		return true
	case Map, Attributes:
		if len(a.Pairs) != len(b.Pairs) {
			return false
		}
		for i := range a.Pairs {
			if !Equal(a.Pairs[i].Key, b.Pairs[i].Key) || !Equal(a.Pairs[i].Val, b.Pairs[i].Val) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
