package lexer

import (
	"fmt"

	"pain/internal/diag"
	"pain/internal/token"
)

var twoCharOps = map[[2]byte]token.Kind{
	{'=', '='}: token.EqEq,
	{'!', '='}: token.BangEq,
	{'<', '='}: token.LtEq,
	{'>', '='}: token.GtEq,
	{'-', '>'}: token.Arrow,
}

var oneCharOps = map[byte]token.Kind{
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'%': token.Percent,
	'=': token.Assign,
	'<': token.Lt,
	'>': token.Gt,
	'.': token.Dot,
	',': token.Comma,
	':': token.Colon,
	'(': token.LParen,
	')': token.RParen,
	'[': token.LBracket,
	']': token.RBracket,
	'@': token.At,
}

// scanOperatorOrPunct читает операторы, предпочитая самое длинное совпадение.
// Unknown characters are reported and skipped.
func (lx *Lexer) scanOperatorOrPunct() (token.Token, bool) {
	start := lx.cursor.Pos()
	from := lx.cursor.Off

	if k, ok := twoCharOps[[2]byte{lx.cursor.Peek(), lx.cursor.PeekAt(1)}]; ok {
		lx.cursor.Bump()
		lx.cursor.Bump()
		return token.Token{Kind: k, Span: lx.cursor.SpanFrom(start), Text: lx.cursor.Src[from:lx.cursor.Off]}, true
	}
	if k, ok := oneCharOps[lx.cursor.Peek()]; ok {
		lx.cursor.Bump()
		switch k {
		case token.LParen, token.LBracket:
			lx.depth++
		case token.RParen, token.RBracket:
			if lx.depth > 0 {
				lx.depth--
			}
		}
		return token.Token{Kind: k, Span: lx.cursor.SpanFrom(start), Text: lx.cursor.Src[from:lx.cursor.Off]}, true
	}

	r := lx.cursor.Bump()
	lx.report(diag.LexUnknownChar, lx.cursor.SpanFrom(start), fmt.Sprintf("unexpected character %q", r))
	return token.Token{}, false
}
