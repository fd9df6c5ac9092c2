// Package format renders protocol values for terminal output.
package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/strandkv/strand/internal/resp"
)

// Render returns a human-readable rendering of a reply value.
func Render(v resp.Value) string {
	var b strings.Builder
	render(&b, v, 0)
	return b.String()
}

func render(b *strings.Builder, v resp.Value, depth int) {
	switch v.Kind {
	case resp.SimpleString:
		b.WriteString(string(v.Str))
	case resp.SimpleError, resp.BulkError:
		fmt.Fprintf(b, "(error) %s", v.Str)
	case resp.Integer:
		fmt.Fprintf(b, "(integer) %d", v.Int)
	case resp.Double:
		fmt.Fprintf(b, "(double) %s", strconv.FormatFloat(v.Num, 'g', -1, 64))
	case resp.BigNumber:
		fmt.Fprintf(b, "(big number) %s", v.Str)
	case resp.BulkString:
		b.WriteString(strconv.Quote(string(v.Str)))
	case resp.Verbatim:
		b.WriteString(string(v.Str))
	case resp.Null:
		b.WriteString("(nil)")
	case resp.Boolean:
		if v.Bool {
			b.WriteString("(true)")
		} else {
			b.WriteString("(false)")
		}
	case resp.Array, resp.Set, resp.Push:
		if len(v.Elems) == 0 {
			b.WriteString("(empty)")
			return
		}
		for i, e := range v.Elems {
			if i > 0 {
				b.WriteByte('\n')
				indent(b, depth)
			}
			fmt.Fprintf(b, "%d) ", i+1)
			render(b, e, depth+1)
		}
	case resp.Map, resp.Attributes:
		if len(v.Pairs) == 0 {
			b.WriteString("(empty)")
			return
		}
		for i, p := range v.Pairs {
			if i > 0 {
				b.WriteByte('\n')
				indent(b, depth)
			}
			fmt.Fprintf(b, "%d# ", i+1)
			render(b, p.Key, depth+1)
			b.WriteString(" => ")
			render(b, p.Val, depth+1)
		}
	default:
		fmt.Fprintf(b, "(unknown %c)", byte(v.Kind))
	}
}

func indent(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString("   ")
	}
}
