package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0
	// Лексические
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadNumber          Code = 1003
	LexBadEscape          Code = 1004
	LexInconsistentDedent Code = 1005

	// Парсерные
	SynUnexpectedToken    Code = 2001
	SynExpectIdentifier   Code = 2002
	SynExpectType         Code = 2003
	SynExpectExpression   Code = 2004
	SynExpectColon        Code = 2005
	SynExpectBlock        Code = 2006
	SynUnclosedParen      Code = 2007
	SynUnclosedBracket    Code = 2008
	SynForMissingIn       Code = 2009
	SynUnexpectedTopLevel Code = 2010
	SynNestingTooDeep     Code = 2011
	SynTooManyErrors      Code = 2012

	// type errors
	SemaUndefinedVariable Code = 3001
	SemaTypeMismatch      Code = 3002
	SemaCannotInferType   Code = 3003
	SemaInvalidOperation  Code = 3004

	// warnings
	WarnUnusedVariable  Code = 4001
	WarnUnusedFunction  Code = 4002
	WarnDeadCode        Code = 4003
	WarnUnreachableCode Code = 4004
)

var (
	codeDescription = map[Code]string{
		UnknownCode:           "Unknown error",
		LexUnknownChar:        "Unknown character",
		LexUnterminatedString: "Unterminated string",
		LexBadNumber:          "Bad number",
		LexBadEscape:          "Bad escape sequence",
		LexInconsistentDedent: "Inconsistent dedent",
		SynUnexpectedToken:    "Unexpected token",
		SynExpectIdentifier:   "Expect identifier",
		SynExpectType:         "Expect type",
		SynExpectExpression:   "Expect expression",
		SynExpectColon:        "Expect colon",
		SynExpectBlock:        "Expect indented block",
		SynUnclosedParen:      "Unclosed parenthesis",
		SynUnclosedBracket:    "Unclosed bracket",
		SynForMissingIn:       "Missing 'in' in for loop",
		SynUnexpectedTopLevel: "Unexpected top level",
		SynNestingTooDeep:     "Nesting too deep",
		SynTooManyErrors:      "Too many errors",
		SemaUndefinedVariable: "Undefined variable",
		SemaTypeMismatch:      "Type mismatch",
		SemaCannotInferType:   "Cannot infer type",
		SemaInvalidOperation:  "Invalid operation",
		WarnUnusedVariable:    "Unused variable",
		WarnUnusedFunction:    "Unused function",
		WarnDeadCode:          "Dead code",
		WarnUnreachableCode:   "Unreachable code",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("WRN%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
