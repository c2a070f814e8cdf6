package ast

import (
	"pain/internal/source"
	"pain/internal/token"
)

type Expr interface {
	Node
	exprNode()
}

type Ident struct {
	Base
	Name string
}

type IntLit struct {
	Base
	Value int64
}

type FloatLit struct {
	Base
	Value float64
}

type StringLit struct {
	Base
	Value string
}

type BoolLit struct {
	Base
	Value bool
}

type NoneLit struct{ Base }

type ListLit struct {
	Base
	Elems []Expr
}

// UnaryExpr is `-x` or `not x`.
type UnaryExpr struct {
	Base
	Op token.Kind
	X  Expr
}

type BinaryExpr struct {
	Base
	Op token.Kind
	X  Expr
	Y  Expr
}

type CallExpr struct {
	Base
	Fn   Expr
	Args []Expr
}

// MemberExpr is `x.name`.
type MemberExpr struct {
	Base
	X        Expr
	Name     string
	NameSpan source.Span
}

type IndexExpr struct {
	Base
	X     Expr
	Index Expr
}

func (*Ident) exprNode()      {}
func (*IntLit) exprNode()     {}
func (*FloatLit) exprNode()   {}
func (*StringLit) exprNode()  {}
func (*BoolLit) exprNode()    {}
func (*NoneLit) exprNode()    {}
func (*ListLit) exprNode()    {}
func (*UnaryExpr) exprNode()  {}
func (*BinaryExpr) exprNode() {}
func (*CallExpr) exprNode()   {}
func (*MemberExpr) exprNode() {}
func (*IndexExpr) exprNode()  {}
