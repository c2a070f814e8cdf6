// Package testkit holds assertions shared by front-end tests and fuzzers.
package testkit

import (
	"fmt"

	"pain/internal/ast"
	"pain/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed
// program:
// 1) every item span is valid (1-based, end not before start) and ends
// within the document
// 2) top-level items appear in source order and do not overlap
// 3) a name span lies inside its item span, methods inside their class
//
// The invariants only hold for programs parsed without errors.
func CheckSpanInvariants(program *ast.Program, text string) error {
	if program == nil {
		return fmt.Errorf("nil program")
	}
	lines := len(source.Lines(text))

	var prev source.Span
	for i, it := range program.Items {
		if it == nil {
			return fmt.Errorf("nil item at index %d", i)
		}
		sp := it.NodeSpan()
		if err := checkSpan(sp, lines); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
		if i > 0 && !prev.End.Before(sp.Start) {
			return fmt.Errorf("item %d span %v overlaps previous item %v", i, sp, prev)
		}
		prev = sp

		switch it := it.(type) {
		case *ast.Function:
			if !within(it.NameSpan, sp) {
				return fmt.Errorf("function %s: name span %v outside %v", it.Name, it.NameSpan, sp)
			}
		case *ast.Class:
			if !within(it.NameSpan, sp) {
				return fmt.Errorf("class %s: name span %v outside %v", it.Name, it.NameSpan, sp)
			}
			for _, m := range it.Methods {
				if !within(m.Span, sp) {
					return fmt.Errorf("method %s.%s span %v outside class %v", it.Name, m.Name, m.Span, sp)
				}
			}
		}
	}
	return nil
}

func checkSpan(sp source.Span, lines int) error {
	if sp.Start.Line < 1 || sp.Start.Column < 1 {
		return fmt.Errorf("span %v is not 1-based", sp)
	}
	if sp.End.Before(sp.Start) {
		return fmt.Errorf("span %v ends before it starts", sp)
	}
	if sp.End.Line > lines {
		return fmt.Errorf("span %v ends past line %d", sp, lines)
	}
	return nil
}

// within reports whether inner lies inside outer.
func within(inner, outer source.Span) bool {
	return !inner.Start.Before(outer.Start) && !outer.End.Before(inner.End)
}
