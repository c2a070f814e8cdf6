package lsp

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"pain/internal/ast"
	"pain/internal/parser"
	"pain/internal/stdlib"
)

func mustParse(t *testing.T, text string) *ast.Program {
	t.Helper()
	prog, _, err := parser.ParseWithRecovery(text)
	if err != nil || prog == nil {
		t.Fatalf("parse: %v", err)
	}
	return prog
}

func TestCompleteListsDeclarationsLocalsBuiltinsAndKeywords(t *testing.T) {
	text := src(
		"/// Adds.",
		"fn add(a: int, b: int) -> int:",
		"    let sum = a + b",
		"    for i in range(3):",
		"        var acc = i",
		"    return sum",
		"class Point:",
		"    let x: int",
		"    fn norm(self) -> float64:",
		"        return 0.0",
	)
	items := Complete(mustParse(t, text), text, Position{Line: 2, Character: 4}, DefaultCompletionOptions())

	add, ok := findItem(items, "add")
	if !ok || add.Kind != CompletionKindFunction || add.Detail != "fn add(a: int, b: int) -> int" || add.Documentation != "Adds." {
		t.Fatalf("unexpected add item: %+v", add)
	}
	if cls, ok := findItem(items, "Point"); !ok || cls.Kind != CompletionKindClass || cls.Detail != "class Point" {
		t.Fatalf("unexpected class item: %+v", cls)
	}
	if m, ok := findItem(items, "Point.norm"); !ok || m.Kind != CompletionKindMethod || m.Detail != "fn norm(self) -> float64" {
		t.Fatalf("unexpected method item: %+v", m)
	}

	var locals []string
	for _, it := range items {
		if it.Kind == CompletionKindVariable {
			if it.Detail != "Variable" {
				t.Fatalf("unexpected variable detail %q", it.Detail)
			}
			locals = append(locals, it.Label)
		}
	}
	if got := strings.Join(locals, ","); got != "a,b,sum,i,acc" {
		t.Fatalf("locals = %s", got)
	}

	pr, ok := findItem(items, "print")
	if !ok || pr.Detail != "print(value: dynamic) -> void" {
		t.Fatalf("unexpected print item: %+v", pr)
	}
	if rng, _ := findItem(items, "range"); rng.Detail != "range(n: int) -> list[int]" {
		t.Fatalf("unexpected range detail %q", rng.Detail)
	}
	if n := countKind(items, CompletionKindKeyword); n != len(keywordCompletions) {
		t.Fatalf("expected %d keywords, got %d", len(keywordCompletions), n)
	}
	if last := items[len(items)-1]; last.Label != "return" {
		t.Fatalf("keywords should come last, got %q", last.Label)
	}
}

func TestCompleteMemberAccessSuppressesKeywords(t *testing.T) {
	text := src(
		"fn main():",
		"    let foo = 1",
		"    foo.  ",
	)
	prog := mustParse(t, "fn main():\n    let foo = 1\n")
	items := Complete(prog, text, Position{Line: 2, Character: 10}, DefaultCompletionOptions())
	if n := countKind(items, CompletionKindKeyword); n != 0 {
		t.Fatalf("expected no keywords after '.', got %d", n)
	}
	if len(items) == 0 {
		t.Fatal("expected non-keyword items")
	}
}

func TestIsMemberAccess(t *testing.T) {
	tests := []struct {
		text   string
		cursor Position
		want   bool
	}{
		{"foo.", Position{Character: 4}, true},
		{"foo.bar", Position{Character: 4}, true},
		{"foo.bar", Position{Character: 7}, false},
		{"foo.   ", Position{Character: 7}, true},
		{"foo.", Position{Character: 100}, true},
		{"foo", Position{Line: 5}, false},
		// "é" is one UTF-16 unit but two bytes.
		{"é.x", Position{Character: 2}, true},
		// "😀" is two UTF-16 units.
		{"\U0001F600.x", Position{Character: 3}, true},
		{"\U0001F600.x", Position{Character: 2}, false},
	}
	for _, tt := range tests {
		if got := isMemberAccess(tt.text, tt.cursor); got != tt.want {
			t.Fatalf("isMemberAccess(%q, %+v) = %v, want %v", tt.text, tt.cursor, got, tt.want)
		}
	}
}

func TestCompleteNeverEmpty(t *testing.T) {
	items := Complete(nil, "", Position{}, DefaultCompletionOptions())
	if len(items) != len(keywordCompletions)+1 {
		t.Fatalf("expected fallback list, got %+v", items)
	}
	if _, ok := findItem(items, "print"); !ok {
		t.Fatal("fallback must offer print")
	}

	empty := &ast.Program{}
	items = Complete(empty, "x.", Position{Character: 2}, CompletionOptions{})
	if len(items) == 0 {
		t.Fatal("expected fallback for an empty member-access result")
	}
}

func TestCompletePastLastLineFallsBack(t *testing.T) {
	text := src("fn f():", "    pass")
	items := Complete(mustParse(t, text), text, Position{Line: 2}, DefaultCompletionOptions())
	if len(items) != len(keywordCompletions)+1 {
		t.Fatalf("expected fallback list on a missing line, got %d items", len(items))
	}
	if _, ok := findItem(items, "f"); ok {
		t.Fatal("fallback must not list declarations")
	}
}

func TestCompleteRecoversFromFault(t *testing.T) {
	// A typed nil function panics as soon as its name is read.
	prog := &ast.Program{Items: []ast.Item{(*ast.Function)(nil)}}
	items := Complete(prog, "", Position{}, DefaultCompletionOptions())
	if len(items) != len(keywordCompletions)+1 {
		t.Fatalf("expected fallback list, got %d items", len(items))
	}
}

func TestCompleteBuiltinsShadowedByUserFunctions(t *testing.T) {
	text := src("fn print(x: int):", "    pass")
	items := Complete(mustParse(t, text), text, Position{}, DefaultCompletionOptions())
	n := 0
	for _, it := range items {
		if it.Label == "print" {
			n++
			if it.Detail != "fn print(x: int)" {
				t.Fatalf("expected the user function, got %+v", it)
			}
		}
	}
	if n != 1 {
		t.Fatalf("expected one print item, got %d", n)
	}
}

func TestCompleteManyFunctionsIsBounded(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 500; i++ {
		fmt.Fprintf(&b, "fn f%d(x: int) -> int:\n    return x\n", i)
	}
	text := b.String()
	prog := mustParse(t, text)

	start := time.Now()
	items := Complete(prog, text, Position{Line: 1, Character: 4}, DefaultCompletionOptions())
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("completion took %s", elapsed)
	}

	detailed := 0
	for _, it := range items {
		if strings.HasPrefix(it.Detail, "fn ") && strings.Contains(it.Detail, "(") {
			detailed++
		}
	}
	if detailed != DefaultMaxDetailed {
		t.Fatalf("expected %d detailed signatures, got %d", DefaultMaxDetailed, detailed)
	}
	if f, _ := findItem(items, "f499"); f.Detail != "fn f499" {
		t.Fatalf("unexpected late detail %q", f.Detail)
	}
	for _, fn := range stdlib.Functions() {
		it, ok := findItem(items, fn.Name)
		if !ok {
			t.Fatalf("missing builtin %s", fn.Name)
		}
		if it.Detail != fn.Name+"()" {
			t.Fatalf("builtin %s past the cutoff got detail %q", fn.Name, it.Detail)
		}
	}
}

func TestCompleteBuiltinCutoffAndLimit(t *testing.T) {
	builtins := stdlib.Functions()
	opts := CompletionOptions{MaxDetailed: 50, MaxBuiltins: 3, BuiltinDetailCutoff: 2, Builtins: builtins}
	items := Complete(&ast.Program{}, "", Position{}, opts)
	if items[0].Detail != builtinSignature(builtins[0]) || items[1].Detail != builtinSignature(builtins[1]) {
		t.Fatalf("expected full signatures below the cutoff: %+v", items[:2])
	}
	if items[2].Detail != builtins[2].Name+"()" {
		t.Fatalf("expected short detail at the cutoff, got %q", items[2].Detail)
	}
	if items[3].Kind != CompletionKindKeyword {
		t.Fatalf("expected only %d builtins, got %+v", opts.MaxBuiltins, items[3])
	}
}

func TestFormatTypeDepthLimit(t *testing.T) {
	typ := ast.Simple(ast.TypeInt)
	for i := 0; i < 20; i++ {
		typ = ast.ListOf(typ)
	}
	got := formatType(typ)
	if !strings.Contains(got, "...") || strings.Contains(got, "int") {
		t.Fatalf("expected truncated type, got %s", got)
	}
	tensor := &ast.Type{Kind: ast.TypeTensor, Args: []*ast.Type{ast.Simple(ast.TypeFloat32)}, Dims: []int{2, 3}}
	if got := formatType(tensor); got != "Tensor[float32, [2, 3]]" {
		t.Fatalf("tensor = %s", got)
	}
}
