package lexer

import (
	"fmt"
	"strings"

	"pain/internal/diag"
	"pain/internal/token"
)

// scanString reads a single- or double-quoted literal on one line.
// Token.Text holds the decoded value.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Pos()
	quote := lx.cursor.Peek()
	lx.cursor.Bump()

	var b strings.Builder
	for {
		if lx.cursor.EOF() || lx.cursor.Peek() == '\n' {
			sp := lx.cursor.SpanFrom(start)
			lx.report(diag.LexUnterminatedString, sp, "unterminated string literal")
			return token.Token{Kind: token.StringLit, Span: sp, Text: b.String()}
		}
		ch := lx.cursor.Peek()
		if ch == quote {
			lx.cursor.Bump()
			break
		}
		if ch != '\\' {
			b.WriteRune(lx.cursor.Bump())
			continue
		}

		escStart := lx.cursor.Pos()
		lx.cursor.Bump()
		esc := lx.cursor.Peek()
		switch esc {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '0':
			b.WriteByte(0)
		case '\\', '"', '\'':
			b.WriteByte(esc)
		case '\n', 0:
			// конец строки разберёт следующая итерация
			continue
		default:
			lx.cursor.Bump()
			lx.report(diag.LexBadEscape, lx.cursor.SpanFrom(escStart), fmt.Sprintf("unknown escape sequence \\%c", esc))
			continue
		}
		lx.cursor.Bump()
	}
	return token.Token{Kind: token.StringLit, Span: lx.cursor.SpanFrom(start), Text: b.String()}
}
