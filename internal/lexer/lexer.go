package lexer

import (
	"strings"

	"pain/internal/diag"
	"pain/internal/token"
)

// Lexer turns Pain source into tokens. Block structure is reported through
// synthetic Newline, Indent and Dedent tokens; newlines inside brackets are ignored.
type Lexer struct {
	cursor Cursor
	opts   Options

	indents     []int
	depth       int // вложенность скобок
	atLineStart bool
	lineHasTok  bool
	pending     []token.Token
	doc         []string
	finished    bool
}

func New(src string, opts Options) *Lexer {
	return &Lexer{
		cursor:      NewCursor(src),
		opts:        opts,
		indents:     []int{0},
		atLineStart: true,
	}
}

// Tokenize lexes the whole input, EOF included.
func Tokenize(src string, opts Options) []token.Token {
	lx := New(src, opts)
	var out []token.Token
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

// Next возвращает следующий токен. После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	for {
		if len(lx.pending) > 0 {
			tok := lx.pending[0]
			lx.pending = lx.pending[1:]
			return tok
		}
		if lx.finished {
			return token.Token{Kind: token.EOF, Span: lx.cursor.SpanFrom(lx.cursor.Pos())}
		}
		if lx.atLineStart && lx.depth == 0 {
			lx.scanIndentation()
			continue
		}

		lx.skipInlineTrivia()
		if lx.cursor.EOF() {
			lx.finish()
			continue
		}
		if lx.cursor.Peek() == '\n' {
			start := lx.cursor.Pos()
			lx.cursor.Bump()
			if lx.depth > 0 {
				if !lx.atStatementKeyword() {
					continue
				}
				// a statement keyword cannot continue an expression: the bracket
				// is unclosed and the line structure takes over again
				lx.depth = 0
			}
			lx.atLineStart = true
			if lx.lineHasTok {
				lx.lineHasTok = false
				return token.Token{Kind: token.Newline, Span: lx.cursor.SpanFrom(start), Text: "\n"}
			}
			continue
		}

		tok, ok := lx.scanToken()
		if !ok {
			continue
		}
		if !lx.lineHasTok && len(lx.doc) > 0 {
			tok.Doc = strings.Join(lx.doc, "\n")
			lx.doc = nil
		}
		lx.lineHasTok = true
		return tok
	}
}

func (lx *Lexer) scanToken() (token.Token, bool) {
	ch := lx.cursor.Peek()
	switch {
	case isIdentStartByte(ch) || ch >= utf8RuneSelf:
		return lx.scanIdentOrKeyword()
	case isDec(ch):
		return lx.scanNumber(), true
	case ch == '"' || ch == '\'':
		return lx.scanString(), true
	default:
		return lx.scanOperatorOrPunct()
	}
}

// scanIndentation measures the indentation of the next logical line and queues
// Indent/Dedent tokens. Blank and comment-only lines are consumed whole.
func (lx *Lexer) scanIndentation() {
	for {
		width := 0
	measure:
		for {
			switch lx.cursor.Peek() {
			case ' ':
				width++
			case '\t':
				width += TabWidth - width%TabWidth
			case '\r':
			default:
				break measure
			}
			lx.cursor.Bump()
		}
		if lx.cursor.EOF() {
			lx.atLineStart = false
			return
		}
		switch {
		case lx.cursor.Peek() == '\n':
			lx.cursor.Bump()
			continue
		case lx.atDocComment():
			lx.doc = append(lx.doc, lx.readDocComment())
			continue
		case lx.atComment():
			lx.skipComment()
			continue
		}

		lx.atLineStart = false
		start := lx.cursor.Pos()
		top := lx.indents[len(lx.indents)-1]
		switch {
		case width > top:
			lx.indents = append(lx.indents, width)
			lx.pending = append(lx.pending, token.Token{Kind: token.Indent, Span: lx.cursor.SpanFrom(start)})
		case width < top:
			for len(lx.indents) > 1 && width < lx.indents[len(lx.indents)-1] {
				lx.indents = lx.indents[:len(lx.indents)-1]
				lx.pending = append(lx.pending, token.Token{Kind: token.Dedent, Span: lx.cursor.SpanFrom(start)})
			}
			if width != lx.indents[len(lx.indents)-1] {
				lx.report(diag.LexInconsistentDedent, lx.cursor.SpanFrom(start), "unindent does not match any outer indentation level")
				lx.indents = append(lx.indents, width)
			}
		}
		return
	}
}

// finish queues the trailing Newline and the Dedents that close open blocks.
func (lx *Lexer) finish() {
	end := lx.cursor.SpanFrom(lx.cursor.Pos())
	if lx.lineHasTok {
		lx.lineHasTok = false
		lx.pending = append(lx.pending, token.Token{Kind: token.Newline, Span: end})
	}
	for len(lx.indents) > 1 {
		lx.indents = lx.indents[:len(lx.indents)-1]
		lx.pending = append(lx.pending, token.Token{Kind: token.Dedent, Span: end})
	}
	lx.finished = true
}
