package lexer

import (
	"unicode/utf16"
	"unicode/utf8"

	"pain/internal/source"
)

// Cursor представляет собой позицию в тексте документа.
// Column is counted in UTF-16 code units so spans line up with editor positions.
type Cursor struct {
	Src  string
	Off  int
	Line int
	Col  int
}

// NewCursor creates a cursor at the first byte of src.
func NewCursor(src string) Cursor {
	return Cursor{Src: src, Line: 1, Col: 1}
}

// EOF проверяет, достигнут ли конец текста
func (c *Cursor) EOF() bool {
	return c.Off >= len(c.Src)
}

// Peek читает текущий байт, если есть, иначе возвращает 0
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.Src[c.Off]
}

// PeekAt returns the byte n positions ahead of the cursor, or 0 past the end.
func (c *Cursor) PeekAt(n int) byte {
	if c.Off+n >= len(c.Src) {
		return 0
	}
	return c.Src[c.Off+n]
}

// PeekRune decodes the rune under the cursor.
func (c *Cursor) PeekRune() (rune, int) {
	if c.EOF() {
		return utf8.RuneError, 0
	}
	if b := c.Src[c.Off]; b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRuneInString(c.Src[c.Off:])
}

// Bump перемещает курсор на одну руну вперед и возвращает её
func (c *Cursor) Bump() rune {
	r, sz := c.PeekRune()
	if sz == 0 {
		return 0
	}
	c.Off += sz
	if r == '\n' {
		c.Line++
		c.Col = 1
		return r
	}
	if n := utf16.RuneLen(r); n > 0 {
		c.Col += n
	} else {
		c.Col++
	}
	return r
}

// Eat consumes b if it is the current byte.
func (c *Cursor) Eat(b byte) bool {
	if c.Peek() == b && !c.EOF() {
		c.Bump()
		return true
	}
	return false
}

// Pos returns the current 1-based position.
func (c *Cursor) Pos() source.Position {
	return source.Position{Line: c.Line, Column: c.Col}
}

// SpanFrom returns the span from start to the current position.
func (c *Cursor) SpanFrom(start source.Position) source.Span {
	return source.NewSpan(start, c.Pos())
}
