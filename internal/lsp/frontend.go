package lsp

import (
	"pain/internal/ast"
	"pain/internal/parser"
	"pain/internal/sema"
	"pain/internal/stdlib"
)

// FrontEnd is the language toolchain the backend drives. Implementations
// must be safe for concurrent use; the backend shields callers from panics.
type FrontEnd interface {
	// ParseWithRecovery returns a best-effort program plus recoverable
	// syntax errors. A non-nil error means no usable program exists.
	ParseWithRecovery(text string) (*ast.Program, []parser.Error, error)
	// NewContext registers the top-level functions and classes of program.
	NewContext(program *ast.Program) *sema.Context
	// TypeCheck returns the first type error, or nil.
	TypeCheck(program *ast.Program, ctx *sema.Context) *sema.TypeError
	// FormatTypeError renders a multi-line explanation whose first line is
	// a headline.
	FormatTypeError(text string, ctx *sema.Context, err *sema.TypeError) string
	CollectWarnings(program *ast.Program, ctx *sema.Context) []sema.Warning
	// Builtins lists the standard library in display order.
	Builtins() []stdlib.Function
}

type painFrontEnd struct {
	builtins []stdlib.Function
}

// DefaultFrontEnd returns the Pain parser, checker and standard library.
func DefaultFrontEnd() FrontEnd {
	return painFrontEnd{builtins: stdlib.Functions()}
}

func (painFrontEnd) ParseWithRecovery(text string) (*ast.Program, []parser.Error, error) {
	return parser.ParseWithRecovery(text)
}

func (fe painFrontEnd) NewContext(program *ast.Program) *sema.Context {
	return sema.NewContextFor(program, fe.builtins)
}

func (painFrontEnd) TypeCheck(program *ast.Program, ctx *sema.Context) *sema.TypeError {
	return sema.Check(program, ctx)
}

func (painFrontEnd) FormatTypeError(text string, ctx *sema.Context, err *sema.TypeError) string {
	return sema.NewFormatter(text).WithContext(ctx).Format(err)
}

func (painFrontEnd) CollectWarnings(program *ast.Program, ctx *sema.Context) []sema.Warning {
	return sema.CollectWarnings(program, ctx)
}

func (fe painFrontEnd) Builtins() []stdlib.Function {
	return fe.builtins
}
