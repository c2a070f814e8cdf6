package token

import "pain/internal/source"

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
	// Doc holds the `///` lines that directly precede the first token of a line.
	Doc string
}

// IsLiteral reports whether the token is a numeric, boolean, none, or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, KwTrue, KwFalse, KwNone:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwFn && t.Kind <= KwNot
}

// Describe renders the token for parser messages.
func (t Token) Describe() string {
	switch t.Kind {
	case Ident, IntLit, FloatLit:
		return "\"" + t.Text + "\""
	case StringLit:
		return "string literal"
	default:
		return "'" + t.Kind.String() + "'"
	}
}
