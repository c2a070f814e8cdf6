package ast

import "pain/internal/source"

// Attr is an `@name` or `@name(args...)` annotation on a function.
type Attr struct {
	Base
	Name string
	Args []Expr
}

type Param struct {
	Base
	Name string
	Type *Type
}

type Function struct {
	Base
	Name       string
	NameSpan   source.Span
	Params     []Param
	ReturnType *Type // nil when omitted
	Body       []Stmt
	Attrs      []Attr
	Doc        string
}

func (*Function) itemNode() {}

// Field is a `let`/`var` declaration inside a class body.
type Field struct {
	Base
	Name    string
	Type    *Type
	Mutable bool
}

type Class struct {
	Base
	Name     string
	NameSpan source.Span
	Fields   []Field
	Methods  []*Function
	Doc      string
}

func (*Class) itemNode() {}

// Method finds a method by name.
func (c *Class) Method(name string) (*Function, bool) {
	for _, m := range c.Methods {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}

// Field looks up a field by name.
func (c *Class) Field(name string) (*Field, bool) {
	for i := range c.Fields {
		if c.Fields[i].Name == name {
			return &c.Fields[i], true
		}
	}
	return nil, false
}
