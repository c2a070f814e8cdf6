package lsp

import (
	"reflect"
	"strings"
	"testing"
)

func TestAnalyzeUndefinedVariable(t *testing.T) {
	b := NewBackend(nil, Options{})
	diags := b.Analyze("let x = undefined_variable\n")
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %+v", diags)
	}
	d := diags[0]
	if d.Severity != SeverityError || d.Source != "pain" {
		t.Fatalf("unexpected diagnostic: %+v", d)
	}
	if !strings.Contains(strings.ToLower(d.Message), "undefined") || strings.Contains(d.Message, "\n") {
		t.Fatalf("unexpected message %q", d.Message)
	}
	if d.Range.Start != (Position{Line: 0, Character: 8}) {
		t.Fatalf("unexpected range %+v", d.Range)
	}
	if d.Code != "SEM3001" {
		t.Fatalf("code = %q", d.Code)
	}
}

func TestAnalyzeCleanProgram(t *testing.T) {
	b := NewBackend(nil, Options{})
	diags := b.Analyze(src(
		"fn main():",
		"    let x = 1",
		"    print(x)",
	))
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %+v", diags)
	}
}

func TestAnalyzeWarnings(t *testing.T) {
	b := NewBackend(nil, Options{})
	diags := b.Analyze(src(
		"fn helper():",
		"    let unused = 1",
		"    return",
		"    print(2)",
		"fn main():",
		"    if false:",
		"        print(1)",
	))
	want := []string{
		"unused function `helper`",
		"unused variable `unused`",
		"unreachable code",
		"dead code: condition is always false",
	}
	var got []string
	for _, d := range diags {
		if d.Severity != SeverityWarning {
			t.Fatalf("expected warnings only, got %+v", d)
		}
		got = append(got, d.Message)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("messages = %q, want %q", got, want)
	}
}

func TestAnalyzeParseErrors(t *testing.T) {
	b := NewBackend(nil, Options{})
	diags := b.Analyze(src(
		"fn (:",
		"let y = 1",
	))
	if countSeverity(diags, SeverityError) == 0 {
		t.Fatalf("expected a syntax error, got %+v", diags)
	}
	if !strings.HasPrefix(diags[0].Code, "SYN") {
		t.Fatalf("expected a syntax code, got %q", diags[0].Code)
	}
}

func TestAnalyzeFatalParseKeepsErrors(t *testing.T) {
	b := NewBackend(nil, Options{})
	deep := "let x = " + strings.Repeat("(", 300) + "1" + strings.Repeat(")", 300) + "\n"
	diags := b.Analyze(deep)
	if len(diags) == 0 || diags[len(diags)-1].Code != "SYN2011" {
		t.Fatalf("expected nesting diagnostic, got %+v", diags)
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	b := NewBackend(nil, Options{})
	text := src(
		"fn helper(a: int) -> int:",
		"    let b = 2",
		"    return a",
		"let z = (",
		"fn main():",
		"    print(helper(1))",
	)
	first := b.Analyze(text)
	for i := 0; i < 10; i++ {
		if got := b.Analyze(text); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differs:\n%+v\n%+v", i, got, first)
		}
	}
}

func TestAnalyzeSurvivesFrontEndFaults(t *testing.T) {
	text := src(
		"fn main():",
		"    let x = 1",
		"    print(x)",
		"let = 2",
	)
	tests := []struct {
		name string
		fe   panickingFrontEnd
	}{
		{name: "parse", fe: panickingFrontEnd{FrontEnd: DefaultFrontEnd(), parse: true}},
		{name: "check", fe: panickingFrontEnd{FrontEnd: DefaultFrontEnd(), check: true}},
		{name: "warnings", fe: panickingFrontEnd{FrontEnd: DefaultFrontEnd(), warnings: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBackend(nil, Options{FrontEnd: tt.fe})
			diags := b.Analyze(text)
			if diags == nil {
				t.Fatal("expected a non-nil list")
			}
			for _, d := range diags {
				if !strings.HasPrefix(d.Code, "SYN") {
					t.Fatalf("expected parse diagnostics only, got %+v", d)
				}
			}
		})
	}
}
