package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF
	// Newline terminates a logical line.
	Newline
	// Indent opens a block one level deeper than the previous line.
	Indent
	// Dedent closes a block.
	Dedent

	// Ident represents an identifier token.
	Ident

	KwFn       // fn
	KwClass    // class
	KwLet      // let
	KwVar      // var
	KwIf       // if
	KwElif     // elif
	KwElse     // else
	KwWhile    // while
	KwFor      // for
	KwIn       // in
	KwReturn   // return
	KwBreak    // break
	KwContinue // continue
	KwPass     // pass
	KwTrue     // true
	KwFalse    // false
	KwNone     // none
	KwAnd      // and
	KwOr       // or
	KwNot      // not

	IntLit
	FloatLit
	StringLit

	Plus     // +
	Minus    // -
	Star     // *
	Slash    // /
	Percent  // %
	Assign   // =
	EqEq     // ==
	BangEq   // !=
	Lt       // <
	LtEq     // <=
	Gt       // >
	GtEq     // >=
	Arrow    // ->
	Dot      // .
	Comma    // ,
	Colon    // :
	LParen   // (
	RParen   // )
	LBracket // [
	RBracket // ]
	At       // @
)

var kindNames = [...]string{
	Invalid:    "invalid",
	EOF:        "end of file",
	Newline:    "newline",
	Indent:     "indent",
	Dedent:     "dedent",
	Ident:      "identifier",
	KwFn:       "fn",
	KwClass:    "class",
	KwLet:      "let",
	KwVar:      "var",
	KwIf:       "if",
	KwElif:     "elif",
	KwElse:     "else",
	KwWhile:    "while",
	KwFor:      "for",
	KwIn:       "in",
	KwReturn:   "return",
	KwBreak:    "break",
	KwContinue: "continue",
	KwPass:     "pass",
	KwTrue:     "true",
	KwFalse:    "false",
	KwNone:     "none",
	KwAnd:      "and",
	KwOr:       "or",
	KwNot:      "not",
	IntLit:     "integer literal",
	FloatLit:   "float literal",
	StringLit:  "string literal",
	Plus:       "+",
	Minus:      "-",
	Star:       "*",
	Slash:      "/",
	Percent:    "%",
	Assign:     "=",
	EqEq:       "==",
	BangEq:     "!=",
	Lt:         "<",
	LtEq:       "<=",
	Gt:         ">",
	GtEq:       ">=",
	Arrow:      "->",
	Dot:        ".",
	Comma:      ",",
	Colon:      ":",
	LParen:     "(",
	RParen:     ")",
	LBracket:   "[",
	RBracket:   "]",
	At:         "@",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}
