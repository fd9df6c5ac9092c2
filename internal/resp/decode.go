package resp

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"
)

var (
	// ErrIncomplete reports that the buffer does not yet contain a full
	// value. The caller should keep buffering and retry; it is never a
	// protocol violation.
	ErrIncomplete = errors.New("resp: incomplete value")

	// ErrMalformed reports a grammar violation. Decoding the same buffer
	// again cannot succeed; the owning connection must be torn down.
	ErrMalformed = errors.New("resp: malformed value")
)

var crlf = []byte("\r\n")

// Decode consumes exactly one value from the front of b and returns it
// together with the number of bytes consumed. Bytes past the first value
// are left untouched.
//
// If b holds only a prefix of a value, Decode returns ErrIncomplete. Any
// other error wraps ErrMalformed with a diagnostic reason.
func Decode(b []byte) (Value, int, error) {
	return decodeValue(b)
}

func decodeValue(b []byte) (Value, int, error) {
	if len(b) == 0 {
		return Value{}, 0, ErrIncomplete
	}

	switch b[0] {
	case '+':
		return decodeSimple(b, SimpleString)
	case '-':
		return decodeSimple(b, SimpleError)
	case ':':
		return decodeInteger(b)
	case '$':
		return decodeBulk(b, BulkString)
	case '*':
		return decodeSequence(b, Array)
	case '_':
		return decodeNull(b)
	case '#':
		return decodeBoolean(b)
	case ',':
		return decodeDouble(b)
	case '(':
		return decodeBigNumber(b)
	case '!':
		return decodeBulk(b, BulkError)
	case '=':
		return decodeVerbatim(b)
	case '%':
		return decodePairs(b, Map)
	case '|':
		return decodePairs(b, Attributes)
	case '~':
		return decodeSequence(b, Set)
	case '>':
		return decodeSequence(b, Push)
	default:
		return Value{}, 0, fmt.Errorf("%w: unknown type sigil %q", ErrMalformed, b[0])
	}
}

// readLine returns the bytes of b up to the first CRLF and the total
// number of bytes consumed including the terminator. ErrIncomplete is
// returned when no CRLF has arrived yet.
func readLine(b []byte) ([]byte, int, error) {
	i := bytes.Index(b, crlf)
	if i < 0 {
		return nil, 0, ErrIncomplete
	}
	return b[:i], i + 2, nil
}

func decodeSimple(b []byte, kind Kind) (Value, int, error) {
	line, n, err := readLine(b[1:])
	if err != nil {
		return Value{}, 0, err
	}
	if !utf8.Valid(line) {
		return Value{}, 0, fmt.Errorf("%w: %s is not valid UTF-8", ErrMalformed, kind)
	}
	return Value{Kind: kind, Str: bytes.Clone(line)}, 1 + n, nil
}

func decodeInteger(b []byte) (Value, int, error) {
	line, n, err := readLine(b[1:])
	if err != nil {
		return Value{}, 0, err
	}
	v, err := strconv.ParseInt(string(line), 10, 64)
	if err != nil {
		return Value{}, 0, fmt.Errorf("%w: invalid integer %q", ErrMalformed, line)
	}
	return Value{Kind: Integer, Int: v}, 1 + n, nil
}

func decodeDouble(b []byte) (Value, int, error) {
	line, n, err := readLine(b[1:])
	if err != nil {
		return Value{}, 0, err
	}
	v, err := strconv.ParseFloat(string(line), 64)
	if err != nil {
		return Value{}, 0, fmt.Errorf("%w: invalid double %q", ErrMalformed, line)
	}
	return Value{Kind: Double, Num: v}, 1 + n, nil
}

func decodeBigNumber(b []byte) (Value, int, error) {
	line, n, err := readLine(b[1:])
	if err != nil {
		return Value{}, 0, err
	}
	if !utf8.Valid(line) {
		return Value{}, 0, fmt.Errorf("%w: big number is not valid UTF-8", ErrMalformed)
	}
	return Value{Kind: BigNumber, Str: bytes.Clone(line)}, 1 + n, nil
}

func decodeNull(b []byte) (Value, int, error) {
	if len(b) < 3 {
		return Value{}, 0, ErrIncomplete
	}
	if b[1] != '\r' || b[2] != '\n' {
		return Value{}, 0, fmt.Errorf("%w: null not terminated by CRLF", ErrMalformed)
	}
	return Value{Kind: Null}, 3, nil
}

func decodeBoolean(b []byte) (Value, int, error) {
	if len(b) < 4 {
		return Value{}, 0, ErrIncomplete
	}
	var v bool
	switch b[1] {
	case 't':
		v = true
	case 'f':
		v = false
	default:
		return Value{}, 0, fmt.Errorf("%w: invalid boolean %q", ErrMalformed, b[1])
	}
	if b[2] != '\r' || b[3] != '\n' {
		return Value{}, 0, fmt.Errorf("%w: boolean not terminated by CRLF", ErrMalformed)
	}
	return Value{Kind: Boolean, Bool: v}, 4, nil
}

// readLength parses the declared length line following a sigil.
func readLength(b []byte) (int, int, error) {
	line, n, err := readLine(b)
	if err != nil {
		return 0, 0, err
	}
	v, err := strconv.ParseInt(string(line), 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: invalid length %q", ErrMalformed, line)
	}
	if v < 0 {
		return 0, 0, fmt.Errorf("%w: negative length %d", ErrMalformed, v)
	}
	return int(v), n, nil
}

// decodeBulk handles the shared shape of bulk strings and bulk errors:
// a declared payload length, then exactly that many bytes and CRLF. The
// declared length is authoritative; the payload is never scanned, which
// keeps it binary-safe.
func decodeBulk(b []byte, kind Kind) (Value, int, error) {
	size, n, err := readLength(b[1:])
	if err != nil {
		return Value{}, 0, err
	}
	rest := b[1+n:]
	if len(rest) < size+2 {
		return Value{}, 0, ErrIncomplete
	}
	if rest[size] != '\r' || rest[size+1] != '\n' {
		return Value{}, 0, fmt.Errorf("%w: %s not terminated by CRLF", ErrMalformed, kind)
	}
	return Value{Kind: kind, Str: bytes.Clone(rest[:size])}, 1 + n + size + 2, nil
}

func decodeVerbatim(b []byte) (Value, int, error) {
	size, n, err := readLength(b[1:])
	if err != nil {
		return Value{}, 0, err
	}
	rest := b[1+n:]
	if len(rest) < size+2 {
		return Value{}, 0, ErrIncomplete
	}
	// Payload shape: three-character encoding tag, ':', then the body.
	if size < 4 || rest[3] != ':' {
		return Value{}, 0, fmt.Errorf("%w: verbatim string missing encoding tag", ErrMalformed)
	}
	if rest[size] != '\r' || rest[size+1] != '\n' {
		return Value{}, 0, fmt.Errorf("%w: verbatim string not terminated by CRLF", ErrMalformed)
	}
	enc := rest[:3]
	if !utf8.Valid(enc) {
		return Value{}, 0, fmt.Errorf("%w: verbatim encoding tag is not valid UTF-8", ErrMalformed)
	}
	return Value{Kind: Verbatim, Enc: string(enc), Str: bytes.Clone(rest[4:size])}, 1 + n + size + 2, nil
}

func decodeSequence(b []byte, kind Kind) (Value, int, error) {
	count, n, err := readLength(b[1:])
	if err != nil {
		return Value{}, 0, err
	}
	consumed := 1 + n
	elems := make([]Value, 0, count)
	for i := 0; i < count; i++ {
		elem, m, err := decodeValue(b[consumed:])
		if err != nil {
			return Value{}, 0, err
		}
		elems = append(elems, elem)
		consumed += m
	}
	return Value{Kind: kind, Elems: elems}, consumed, nil
}

func decodePairs(b []byte, kind Kind) (Value, int, error) {
	count, n, err := readLength(b[1:])
	if err != nil {
		return Value{}, 0, err
	}
	consumed := 1 + n
	pairs := make([]Pair, 0, count)
	for i := 0; i < count; i++ {
		key, m, err := decodeValue(b[consumed:])
		if err != nil {
			return Value{}, 0, err
		}
		consumed += m
		val, m, err := decodeValue(b[consumed:])
		if err != nil {
			return Value{}, 0, err
		}
		consumed += m
		pairs = append(pairs, Pair{Key: key, Val: val})
	}
	return Value{Kind: kind, Pairs: pairs}, consumed, nil
}
