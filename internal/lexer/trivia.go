package lexer

import "strings"

// skipInlineTrivia пропускает пробелы и комментарии до конца строки.
func (lx *Lexer) skipInlineTrivia() {
	for !lx.cursor.EOF() {
		switch ch := lx.cursor.Peek(); {
		case ch == ' ' || ch == '\t' || ch == '\r':
			lx.cursor.Bump()
		case ch == '\\' && lx.cursor.PeekAt(1) == '\n':
			// явное продолжение строки
			lx.cursor.Bump()
			lx.cursor.Bump()
		case lx.atComment():
			lx.skipComment()
		default:
			return
		}
	}
}

func (lx *Lexer) atComment() bool {
	ch := lx.cursor.Peek()
	return ch == '#' || (ch == '/' && lx.cursor.PeekAt(1) == '/')
}

func (lx *Lexer) atDocComment() bool {
	return lx.cursor.Peek() == '/' && lx.cursor.PeekAt(1) == '/' && lx.cursor.PeekAt(2) == '/'
}

// skipComment consumes up to, but not including, the line break.
func (lx *Lexer) skipComment() {
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
}

// readDocComment consumes a `///` line including its newline and returns its text.
func (lx *Lexer) readDocComment() string {
	lx.cursor.Off += 3
	lx.cursor.Col += 3
	start := lx.cursor.Off
	lx.skipComment()
	text := lx.cursor.Src[start:lx.cursor.Off]
	lx.cursor.Eat('\n')
	return strings.TrimSpace(text)
}
