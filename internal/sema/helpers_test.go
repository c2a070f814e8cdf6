package sema

import (
	"strings"
	"testing"

	"pain/internal/ast"
	"pain/internal/parser"
	"pain/internal/stdlib"
)

func parse(t *testing.T, lines ...string) (*ast.Program, *Context) {
	t.Helper()
	src := strings.Join(lines, "\n")
	prog, errs, err := parser.ParseWithRecovery(src)
	if err != nil || len(errs) != 0 {
		t.Fatalf("parse failed: %v %v", err, errs)
	}
	return prog, NewContextFor(prog, stdlib.Functions())
}

func checkSource(t *testing.T, lines ...string) *TypeError {
	t.Helper()
	prog, ctx := parse(t, lines...)
	return Check(prog, ctx)
}
