package token

import "testing"

func TestLookupKeyword(t *testing.T) {
	for text, want := range keywords {
		got, ok := LookupKeyword(text)
		if !ok || got != want {
			t.Fatalf("LookupKeyword(%q) = %v, %v; want %v", text, got, ok, want)
		}
		if got.String() != text {
			t.Fatalf("Kind(%d).String() = %q, want %q", got, got.String(), text)
		}
		if !(Token{Kind: got}).IsKeyword() {
			t.Fatalf("%q should be a keyword", text)
		}
	}
	if _, ok := LookupKeyword("Fn"); ok {
		t.Fatal("keywords are case-sensitive")
	}
	if _, ok := LookupKeyword("print"); ok {
		t.Fatal("print is a built-in, not a keyword")
	}
}

func TestKindString(t *testing.T) {
	if Arrow.String() != "->" {
		t.Fatalf("Arrow = %q", Arrow.String())
	}
	if Kind(250).String() != "unknown" {
		t.Fatalf("out of range kind = %q", Kind(250).String())
	}
}
