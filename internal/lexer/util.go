package lexer

import (
	"unicode"

	"pain/internal/token"
)

const utf8RuneSelf = 0x80

// ASCII fast-path для идентификаторов; Unicode - через isIdentStartRune/Continue.
func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}
func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b)
}
func isIdentStartRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}
func isIdentContinueRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }

// statementKeywords only ever start a statement or declaration.
var statementKeywords = map[token.Kind]bool{
	token.KwFn: true, token.KwClass: true, token.KwLet: true, token.KwVar: true,
	token.KwIf: true, token.KwElif: true, token.KwElse: true, token.KwWhile: true,
	token.KwFor: true, token.KwReturn: true, token.KwBreak: true,
	token.KwContinue: true, token.KwPass: true,
}

// atStatementKeyword reports whether the line at the cursor starts, after its
// indentation, with a statement keyword. The cursor does not move.
func (lx *Lexer) atStatementKeyword() bool {
	src := lx.cursor.Src
	i := lx.cursor.Off
	for i < len(src) && (src[i] == ' ' || src[i] == '\t' || src[i] == '\r') {
		i++
	}
	start := i
	for i < len(src) && isIdentContinueByte(src[i]) {
		i++
	}
	if start == i || (i < len(src) && src[i] >= utf8RuneSelf) {
		return false
	}
	kind, ok := token.LookupKeyword(src[start:i])
	return ok && statementKeywords[kind]
}
