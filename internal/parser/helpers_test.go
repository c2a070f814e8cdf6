package parser

import (
	"fmt"
	"strings"
	"testing"

	"pain/internal/ast"
)

func errorsSummary(errs []Error) string {
	if len(errs) == 0 {
		return "<none>"
	}
	lines := make([]string, len(errs))
	for i, e := range errs {
		lines[i] = fmt.Sprintf("[%s] %s: %s", e.Code.ID(), e.Span.Start, e.Message)
	}
	return strings.Join(lines, "; ")
}

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, errs, err := ParseWithRecovery(src)
	if err != nil {
		t.Fatalf("fatal parse error: %v", err)
	}
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %s", errorsSummary(errs))
	}
	return prog
}
