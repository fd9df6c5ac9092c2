package command

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/strandkv/strand/internal/resp"
)

// Parse validates one decoded request envelope and returns the typed
// command it encodes. The envelope must be a RESP array whose every
// element is a bulk string; element 0 is the command name, compared
// case-insensitively, and the rest are positional byte-string arguments.
func Parse(v resp.Value) (Command, error) {
	if v.Kind != resp.Array || len(v.Elems) == 0 {
		return nil, ErrWrongType
	}

	args := make([][]byte, len(v.Elems))
	for i, elem := range v.Elems {
		if elem.Kind != resp.BulkString {
			return nil, ErrWrongType
		}
		args[i] = elem.Str
	}

	name := normalizeToken(args[0])
	switch name {
	case "PING":
		if len(args) != 1 {
			return nil, wrongArity(name)
		}
		return Ping{}, nil
	case "ECHO":
		if len(args) != 2 {
			return nil, wrongArity(name)
		}
		return Echo{Msg: args[1]}, nil
	case "GET":
		if len(args) != 2 {
			return nil, wrongArity(name)
		}
		return Get{Key: args[1]}, nil
	case "SET":
		return parseSet(args)
	default:
		return nil, &UnknownCommandError{Name: name}
	}
}

// parseSet scans the option stream after key and value left to right,
// enforcing that the condition and the expiration kind are each
// single-valued.
func parseSet(args [][]byte) (Command, error) {
	if len(args) < 3 {
		return nil, wrongArity("SET")
	}

	set := Set{Key: args[1], Val: args[2]}
	i := 3
	for i < len(args) {
		switch tok := normalizeToken(args[i]); tok {
		case "GET":
			// Repeating GET has no effect beyond the first.
			set.GetOld = true
			i++
		case "NX", "XX":
			if set.Cond != CondNone {
				return nil, setSyntaxError("conflicting conditions")
			}
			if tok == "NX" {
				set.Cond = CondNX
			} else {
				set.Cond = CondXX
			}
			i++
		case "KEEPTTL":
			if set.Expire.Kind != ExpireNone {
				return nil, setSyntaxError("conflicting expirations")
			}
			set.Expire.Kind = ExpireKeepTTL
			i++
		case "EX", "PX", "EXAT", "PXAT":
			if set.Expire.Kind != ExpireNone {
				return nil, setSyntaxError("conflicting expirations")
			}
			if i+1 >= len(args) {
				return nil, setSyntaxError("missing expiration operand")
			}
			n, err := strconv.ParseInt(string(args[i+1]), 10, 64)
			if err != nil || n < 0 {
				return nil, fmt.Errorf("%w for 'SET' command: value is not an integer or out of range", ErrWrongArguments)
			}
			set.Expire = Expire{Kind: expireKindFor(tok), Value: n}
			i += 2
		default:
			return nil, setSyntaxError("unknown option '" + tok + "'")
		}
	}
	return set, nil
}

func expireKindFor(tok string) ExpireKind {
	switch tok {
	case "EX":
		return ExpireEX
	case "PX":
		return ExpirePX
	case "EXAT":
		return ExpireEXAT
	default:
		return ExpirePXAT
	}
}

func wrongArity(name string) error {
	return fmt.Errorf("%w: wrong number of arguments for '%s' command", ErrWrongArguments, name)
}

func setSyntaxError(reason string) error {
	return fmt.Errorf("%w for 'SET' command: %s", ErrWrongArguments, reason)
}

// normalizeToken uppercases an ASCII token without allocating when it is
// already uppercase.
func normalizeToken(b []byte) string {
	if bytes.ContainsAny(b, "abcdefghijklmnopqrstuvwxyz") {
		return strings.ToUpper(string(b))
	}
	return string(b)
}
