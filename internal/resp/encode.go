package resp

import "strconv"

// Encode produces the exact wire bytes for v. Encoding round-trips
// through Decode: for any value this function can produce,
// Decode(Encode(v)) yields an identical value consuming every byte.
//
// Simple strings and simple errors are written without escaping; callers
// must not embed CRLF in their payloads. Verbatim values must carry a
// three-character encoding tag.
func Encode(v Value) []byte {
	return appendValue(nil, v)
}

func appendValue(dst []byte, v Value) []byte {
	switch v.Kind {
	case SimpleString, SimpleError, BigNumber:
		dst = append(dst, byte(v.Kind))
		dst = append(dst, v.Str...)
		return append(dst, crlf...)
	case Integer:
		dst = append(dst, byte(v.Kind))
		dst = strconv.AppendInt(dst, v.Int, 10)
		return append(dst, crlf...)
	case BulkString, BulkError:
		dst = append(dst, byte(v.Kind))
		dst = strconv.AppendInt(dst, int64(len(v.Str)), 10)
		dst = append(dst, crlf...)
		dst = append(dst, v.Str...)
		return append(dst, crlf...)
	case Null:
		return append(dst, '_', '\r', '\n')
	case Boolean:
		if v.Bool {
			return append(dst, '#', 't', '\r', '\n')
		}
		return append(dst, '#', 'f', '\r', '\n')
	case Double:
		dst = append(dst, byte(v.Kind))
		dst = strconv.AppendFloat(dst, v.Num, 'g', -1, 64)
		return append(dst, crlf...)
	case Verbatim:
		dst = append(dst, byte(v.Kind))
		dst = strconv.AppendInt(dst, int64(len(v.Enc)+1+len(v.Str)), 10)
		dst = append(dst, crlf...)
		dst = append(dst, v.Enc...)
		dst = append(dst, ':')
		dst = append(dst, v.Str...)
		return append(dst, crlf...)
	case Array, Set, Push:
		dst = append(dst, byte(v.Kind))
		dst = strconv.AppendInt(dst, int64(len(v.Elems)), 10)
		dst = append(dst, crlf...)
		for _, elem := range v.Elems {
			dst = appendValue(dst, elem)
		}
		return dst
	case Map, Attributes:
		dst = append(dst, byte(v.Kind))
		dst = strconv.AppendInt(dst, int64(len(v.Pairs)), 10)
		dst = append(dst, crlf...)
		for _, pair := range v.Pairs {
			dst = appendValue(dst, pair.Key)
			dst = appendValue(dst, pair.Val)
		}
		return dst
	default:
		// Unknown kinds cannot occur via the package constructors or
		// Decode; emit null rather than corrupt the stream.
		return append(dst, '_', '\r', '\n')
	}
}
