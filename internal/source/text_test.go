package source

import "testing"

func TestLines(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "empty", text: "", want: nil},
		{name: "single line", text: "fn main():", want: []string{"fn main():"}},
		{name: "trailing newline", text: "a\nb\n", want: []string{"a", "b"}},
		{name: "crlf", text: "a\r\nb", want: []string{"a", "b"}},
		{name: "blank middle", text: "a\n\nb", want: []string{"a", "", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Lines(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("Lines(%q) = %q, want %q", tt.text, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("Lines(%q)[%d] = %q, want %q", tt.text, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLineAt(t *testing.T) {
	text := "first\nsecond\r\nthird"
	if got, ok := LineAt(text, 1); !ok || got != "second" {
		t.Fatalf("LineAt(1) = %q, %v", got, ok)
	}
	if got, ok := LineAt(text, 2); !ok || got != "third" {
		t.Fatalf("LineAt(2) = %q, %v", got, ok)
	}
	if _, ok := LineAt(text, 3); ok {
		t.Fatal("expected missing line 3")
	}
	if _, ok := LineAt("a\n", 1); ok {
		t.Fatal("a final newline must not open a new line")
	}
	if got, ok := LineAt("", 0); !ok || got != "" {
		t.Fatalf("LineAt on empty text = %q, %v", got, ok)
	}
}

func TestUTF16Offset(t *testing.T) {
	line := "let s = \"\u00e9\U0001F642\""
	if got := UTF16Offset(line, 4); got != 4 {
		t.Fatalf("ascii offset = %d, want 4", got)
	}
	// "\u00e9" is one UTF-16 unit; the emoji takes two units and four bytes.
	emoji := len("let s = \"\u00e9")
	if got := UTF16Offset(line, 12); got != emoji+4 {
		t.Fatalf("offset after emoji = %d, want %d", got, emoji+4)
	}
	if got := UTF16Offset(line, 1000); got != len(line) {
		t.Fatalf("clamped offset = %d, want %d", got, len(line))
	}
	if got := UTF16Offset(line, -3); got != 0 {
		t.Fatalf("negative offset = %d, want 0", got)
	}
}

func TestSpanCoverAndContains(t *testing.T) {
	a := NewSpan(Position{Line: 2, Column: 1}, Position{Line: 3, Column: 4})
	b := NewSpan(Position{Line: 1, Column: 5}, Position{Line: 2, Column: 2})
	got := a.Cover(b)
	if got.Start != b.Start || got.End != a.End {
		t.Fatalf("Cover = %v", got)
	}
	if !got.ContainsLine(1) || !got.ContainsLine(3) || got.ContainsLine(4) {
		t.Fatalf("ContainsLine mismatch for %v", got)
	}
}
