package lsp

import (
	"strconv"
	"strings"

	"pain/internal/ast"
)

// maxTypeDepth bounds formatType; deeper arguments render as "...".
const maxTypeDepth = 10

func formatType(t *ast.Type) string {
	var b strings.Builder
	writeType(&b, t, 0)
	return b.String()
}

func writeType(b *strings.Builder, t *ast.Type, depth int) {
	if depth > maxTypeDepth {
		b.WriteString("...")
		return
	}
	if t == nil {
		b.WriteString("dynamic")
		return
	}
	switch t.Kind {
	case ast.TypeList, ast.TypeArray, ast.TypeMap, ast.TypeTensor:
		b.WriteString(t.GenericName())
		b.WriteByte('[')
		for i, arg := range t.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			writeType(b, arg, depth+1)
		}
		if t.Kind == ast.TypeTensor {
			b.WriteString(", [")
			for i, d := range t.Dims {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString(strconv.Itoa(d))
			}
			b.WriteByte(']')
		}
		b.WriteByte(']')
	case ast.TypeNamed:
		b.WriteString(t.Name)
	default:
		b.WriteString(t.String())
	}
}

// formatSignature renders `@attr @attr(N) fn name(p: T, ...) -> R`; N is
// the attribute's argument count. Untyped parameters (self) show no type.
func formatSignature(fn *ast.Function) string {
	var b strings.Builder
	for _, attr := range fn.Attrs {
		b.WriteByte('@')
		b.WriteString(attr.Name)
		if len(attr.Args) > 0 {
			b.WriteByte('(')
			b.WriteString(strconv.Itoa(len(attr.Args)))
			b.WriteByte(')')
		}
		b.WriteByte(' ')
	}
	b.WriteString("fn ")
	b.WriteString(fn.Name)
	b.WriteByte('(')
	for i, p := range fn.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Name)
		if p.Type != nil {
			b.WriteString(": ")
			writeType(&b, p.Type, 0)
		}
	}
	b.WriteByte(')')
	if fn.ReturnType != nil {
		b.WriteString(" -> ")
		writeType(&b, fn.ReturnType, 0)
	}
	return b.String()
}
