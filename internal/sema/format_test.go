package sema

import (
	"strings"
	"testing"
)

func TestFormatUndefinedVariable(t *testing.T) {
	src := "let total = 1\nlet y = totl + 1"
	prog, ctx := parse(t, src)
	err := Check(prog, ctx)
	if err == nil {
		t.Fatal("expected error")
	}
	got := NewFormatter(src).WithContext(ctx).Format(err)
	want := strings.Join([]string{
		"Undefined variable `totl`",
		" --> 2:9",
		"  |",
		"2 | let y = totl + 1",
		"  |         ^^^^",
		"  = help: did you mean `total`?",
	}, "\n")
	if got != want {
		t.Fatalf("formatted:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatWideCharacters(t *testing.T) {
	src := "let 名前 = \"x\" + 1"
	prog, ctx := parse(t, src)
	err := Check(prog, ctx)
	if err == nil {
		t.Fatal("expected error")
	}
	lines := strings.Split(NewFormatter(src).Format(err), "\n")
	caret := lines[len(lines)-1]
	// "let 名前 = " занимает 11 колонок на экране
	if !strings.HasPrefix(caret, "  | "+strings.Repeat(" ", 11)+"^") {
		t.Fatalf("caret misaligned: %q", caret)
	}
}

func TestFormatWithoutLine(t *testing.T) {
	err := &TypeError{Kind: CannotInferType, Name: "x"}
	if got := NewFormatter("").Format(err); got != "Cannot infer type for `x`" {
		t.Fatalf("got %q", got)
	}
}
