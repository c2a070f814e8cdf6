package sema

import (
	"sort"

	"pain/internal/ast"
	"pain/internal/stdlib"
)

// Context holds the program-wide declarations the checker resolves names against.
type Context struct {
	functions map[string]*ast.Function
	classes   map[string]*ast.Class
	builtins  map[string]stdlib.Function
}

func NewContext() *Context {
	return &Context{
		functions: make(map[string]*ast.Function),
		classes:   make(map[string]*ast.Class),
		builtins:  make(map[string]stdlib.Function),
	}
}

// NewContextFor registers every top-level function and class of prog plus builtins.
func NewContextFor(prog *ast.Program, builtins []stdlib.Function) *Context {
	ctx := NewContext()
	ctx.AddBuiltins(builtins)
	if prog == nil {
		return ctx
	}
	for _, it := range prog.Items {
		switch it := it.(type) {
		case *ast.Function:
			ctx.AddFunction(it)
		case *ast.Class:
			ctx.AddClass(it)
		}
	}
	return ctx
}

// AddFunction registers fn; a later declaration with the same name wins.
func (c *Context) AddFunction(fn *ast.Function) {
	c.functions[fn.Name] = fn
}

func (c *Context) AddClass(cls *ast.Class) {
	c.classes[cls.Name] = cls
}

func (c *Context) AddBuiltins(fns []stdlib.Function) {
	for _, fn := range fns {
		c.builtins[fn.Name] = fn
	}
}

func (c *Context) Function(name string) (*ast.Function, bool) {
	fn, ok := c.functions[name]
	return fn, ok
}

func (c *Context) Class(name string) (*ast.Class, bool) {
	cls, ok := c.classes[name]
	return cls, ok
}

func (c *Context) Builtin(name string) (stdlib.Function, bool) {
	fn, ok := c.builtins[name]
	return fn, ok
}

// Names returns every declared name, sorted.
func (c *Context) Names() []string {
	names := make([]string, 0, len(c.functions)+len(c.classes)+len(c.builtins))
	for n := range c.functions {
		names = append(names, n)
	}
	for n := range c.classes {
		names = append(names, n)
	}
	for n := range c.builtins {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
