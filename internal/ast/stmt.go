package ast

import "pain/internal/source"

type Stmt interface {
	Node
	stmtNode()
}

// LetStmt is `let name[: T] = value` or, when Mutable, `var ...`.
type LetStmt struct {
	Base
	Name     string
	NameSpan source.Span
	Mutable  bool
	Type     *Type // nil when not annotated
	Value    Expr  // nil for `var x: T` without initializer
}

type AssignStmt struct {
	Base
	Target Expr
	Value  Expr
}

type ExprStmt struct {
	Base
	X Expr
}

type ReturnStmt struct {
	Base
	Value Expr // nil for bare return
}

// IfStmt models if/elif/else; an elif chain is a nested IfStmt as the only Else statement.
type IfStmt struct {
	Base
	Cond Expr
	Then []Stmt
	Else []Stmt
}

type WhileStmt struct {
	Base
	Cond Expr
	Body []Stmt
}

type ForStmt struct {
	Base
	Var     string
	VarSpan source.Span
	Iter    Expr
	Body    []Stmt
}

type BreakStmt struct{ Base }

type ContinueStmt struct{ Base }

type PassStmt struct{ Base }

// FuncDefStmt is a function declared inside another body.
type FuncDefStmt struct {
	Base
	Fn *Function
}

func (*LetStmt) stmtNode()      {}
func (*AssignStmt) stmtNode()   {}
func (*ExprStmt) stmtNode()     {}
func (*ReturnStmt) stmtNode()   {}
func (*IfStmt) stmtNode()       {}
func (*WhileStmt) stmtNode()    {}
func (*ForStmt) stmtNode()      {}
func (*BreakStmt) stmtNode()    {}
func (*ContinueStmt) stmtNode() {}
func (*PassStmt) stmtNode()     {}
func (*FuncDefStmt) stmtNode()  {}
