// Package ast holds the syntax tree produced by the parser.
//
// Nodes carry 1-based spans (see package source). The tree is immutable once
// the parser returns it and can be shared between goroutines.
package ast

import "pain/internal/source"

// Node is implemented by every syntax tree node.
type Node interface {
	NodeSpan() source.Span
}

// Base carries the span shared by all nodes.
type Base struct {
	Span source.Span
}

func (b Base) NodeSpan() source.Span { return b.Span }

// Item is a top-level declaration: *Function or *Class.
type Item interface {
	Node
	itemNode()
}

// Program is a parsed document.
type Program struct {
	Items []Item
	// Body holds statements written at module level, in source order.
	Body []Stmt
}

// Functions returns every top-level function in declaration order.
func (p *Program) Functions() []*Function {
	if p == nil {
		return nil
	}
	var out []*Function
	for _, it := range p.Items {
		if fn, ok := it.(*Function); ok {
			out = append(out, fn)
		}
	}
	return out
}

// Classes returns every top-level class in declaration order.
func (p *Program) Classes() []*Class {
	if p == nil {
		return nil
	}
	var out []*Class
	for _, it := range p.Items {
		if cls, ok := it.(*Class); ok {
			out = append(out, cls)
		}
	}
	return out
}
