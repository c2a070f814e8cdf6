package sema

import (
	"pain/internal/ast"
	"pain/internal/source"
)

type binding struct {
	typ     *ast.Type
	mutable bool
	span    source.Span
}

// scopeStack - стек лексических областей одной функции или модуля.
type scopeStack struct {
	frames []map[string]binding
}

func (s *scopeStack) push() {
	s.frames = append(s.frames, make(map[string]binding))
}

func (s *scopeStack) pop() {
	s.frames = s.frames[:len(s.frames)-1]
}

func (s *scopeStack) declare(name string, b binding) {
	s.frames[len(s.frames)-1][name] = b
}

func (s *scopeStack) lookup(name string) (binding, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if b, ok := s.frames[i][name]; ok {
			return b, true
		}
	}
	return binding{}, false
}
