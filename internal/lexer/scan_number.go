package lexer

import (
	"strings"

	"pain/internal/diag"
	"pain/internal/token"
)

// scanNumber reads decimal integers and floats (`1`, `1_000`, `3.14`, `2e10`).
// Underscores are dropped from Token.Text.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Pos()
	from := lx.cursor.Off
	kind := token.IntLit

	lx.digits()
	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		kind = token.FloatLit
		lx.cursor.Bump()
		lx.digits()
	}
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		next := lx.cursor.PeekAt(1)
		if isDec(next) || ((next == '+' || next == '-') && isDec(lx.cursor.PeekAt(2))) {
			kind = token.FloatLit
			lx.cursor.Bump()
			if next == '+' || next == '-' {
				lx.cursor.Bump()
			}
			lx.digits()
		}
	}

	sp := lx.cursor.SpanFrom(start)
	text := strings.ReplaceAll(lx.cursor.Src[from:lx.cursor.Off], "_", "")
	if isIdentStartByte(lx.cursor.Peek()) {
		// 12abc: поглощаем хвост, чтобы не получить два токена
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		sp = lx.cursor.SpanFrom(start)
		lx.report(diag.LexBadNumber, sp, "invalid number literal "+lx.cursor.Src[from:lx.cursor.Off])
	}
	return token.Token{Kind: kind, Span: sp, Text: text}
}

func (lx *Lexer) digits() {
	for {
		b := lx.cursor.Peek()
		if !isDec(b) && b != '_' {
			return
		}
		lx.cursor.Bump()
	}
}
