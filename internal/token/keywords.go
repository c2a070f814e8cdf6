package token

var keywords = map[string]Kind{
	"fn":       KwFn,
	"class":    KwClass,
	"let":      KwLet,
	"var":      KwVar,
	"if":       KwIf,
	"elif":     KwElif,
	"else":     KwElse,
	"while":    KwWhile,
	"for":      KwFor,
	"in":       KwIn,
	"return":   KwReturn,
	"break":    KwBreak,
	"continue": KwContinue,
	"pass":     KwPass,
	"true":     KwTrue,
	"false":    KwFalse,
	"none":     KwNone,
	"and":      KwAnd,
	"or":       KwOr,
	"not":      KwNot,
}

// LookupKeyword returns the keyword kind for ident, if any.
// Keywords are case-sensitive: only the lowercase spelling is recognized.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
