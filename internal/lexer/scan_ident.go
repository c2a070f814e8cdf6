package lexer

import (
	"fmt"

	"golang.org/x/text/unicode/norm"

	"pain/internal/diag"
	"pain/internal/token"
)

// scanIdentOrKeyword сканирует [Ident] и проверяет через LookupKeyword.
// Non-ASCII identifiers are NFC-normalized so that visually equal names compare equal.
func (lx *Lexer) scanIdentOrKeyword() (token.Token, bool) {
	start := lx.cursor.Pos()
	from := lx.cursor.Off

	r, _ := lx.cursor.PeekRune()
	if r >= utf8RuneSelf && !isIdentStartRune(r) {
		lx.cursor.Bump()
		lx.report(diag.LexUnknownChar, lx.cursor.SpanFrom(start), fmt.Sprintf("unexpected character %q", r))
		return token.Token{}, false
	}

	ascii := true
	lx.cursor.Bump()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if !isIdentContinueByte(b) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r2, _ := lx.cursor.PeekRune()
		if !isIdentContinueRune(r2) {
			break
		}
		ascii = false
		lx.cursor.Bump()
	}
	if r >= utf8RuneSelf {
		ascii = false
	}

	sp := lx.cursor.SpanFrom(start)
	text := lx.cursor.Src[from:lx.cursor.Off]
	if !ascii {
		text = norm.NFC.String(text)
	}

	// Проверка на ключевое слово (регистрозависимо)
	if k, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: k, Span: sp, Text: text}, true
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}, true
}
