package sema

import (
	"fmt"

	"pain/internal/ast"
	"pain/internal/diag"
	"pain/internal/source"
)

type TypeErrorKind uint8

const (
	UndefinedVariable TypeErrorKind = iota + 1
	TypeMismatch
	CannotInferType
	InvalidOperation
)

func (k TypeErrorKind) String() string {
	switch k {
	case UndefinedVariable:
		return "UndefinedVariable"
	case TypeMismatch:
		return "TypeMismatch"
	case CannotInferType:
		return "CannotInferType"
	case InvalidOperation:
		return "InvalidOperation"
	}
	return "Unknown"
}

// TypeError is the first semantic error found in a program.
type TypeError struct {
	Kind TypeErrorKind
	Span source.Span
	// Name is the offending identifier (UndefinedVariable, CannotInferType).
	Name string
	// Expected/Found are set for TypeMismatch.
	Expected *ast.Type
	Found    *ast.Type
	// Detail describes an InvalidOperation.
	Detail string
	// Help is an optional hint rendered by the Formatter.
	Help string
}

// Headline is the one-line summary of the error.
func (e *TypeError) Headline() string {
	switch e.Kind {
	case UndefinedVariable:
		return fmt.Sprintf("Undefined variable `%s`", e.Name)
	case TypeMismatch:
		return fmt.Sprintf("Type mismatch: expected `%s`, found `%s`", e.Expected, e.Found)
	case CannotInferType:
		return fmt.Sprintf("Cannot infer type for `%s`", e.Name)
	case InvalidOperation:
		return "Invalid operation: " + e.Detail
	}
	return "type error"
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Span.Start, e.Headline())
}

// Code maps the error kind onto a diagnostic code.
func (e *TypeError) Code() diag.Code {
	switch e.Kind {
	case UndefinedVariable:
		return diag.SemaUndefinedVariable
	case TypeMismatch:
		return diag.SemaTypeMismatch
	case CannotInferType:
		return diag.SemaCannotInferType
	case InvalidOperation:
		return diag.SemaInvalidOperation
	}
	return diag.UnknownCode
}
