package lsp

import (
	"fmt"
	"strings"
	"testing"
)

func TestParseCacheIdempotent(t *testing.T) {
	fe := newCountingFrontEnd()
	cache := NewParseCache(fe, 0)
	text := src("fn main():", "    print(1)")

	first, ok := cache.GetOrParse("file:///a.pain", text)
	if !ok || first == nil {
		t.Fatal("expected a program")
	}
	second, ok := cache.GetOrParse("file:///a.pain", text)
	if !ok || second != first {
		t.Fatal("expected the cached program")
	}
	if n := fe.parses.Load(); n != 1 {
		t.Fatalf("expected 1 parse, got %d", n)
	}
}

func TestParseCacheReparsesChangedText(t *testing.T) {
	fe := newCountingFrontEnd()
	cache := NewParseCache(fe, 0)
	cache.GetOrParse("file:///a.pain", src("fn a():", "    pass"))
	prog, ok := cache.GetOrParse("file:///a.pain", src("fn b():", "    pass"))
	if !ok || prog.Functions()[0].Name != "b" {
		t.Fatalf("expected the new program, got %+v", prog)
	}
	if n := fe.parses.Load(); n != 2 {
		t.Fatalf("expected 2 parses, got %d", n)
	}
}

func TestParseCacheInvalidate(t *testing.T) {
	fe := newCountingFrontEnd()
	cache := NewParseCache(fe, 0)
	text := src("fn main():", "    pass")
	cache.GetOrParse("file:///a.pain", text)
	cache.Invalidate("file:///a.pain")
	if cache.Len() != 0 {
		t.Fatalf("expected empty cache, got %d", cache.Len())
	}
	cache.GetOrParse("file:///a.pain", text)
	if n := fe.parses.Load(); n != 2 {
		t.Fatalf("expected reparse after invalidate, got %d parses", n)
	}
}

func TestParseCacheFatalFailureKeepsEntry(t *testing.T) {
	cache := NewParseCache(DefaultFrontEnd(), 0)
	good := src("fn main():", "    pass")
	prog, _ := cache.GetOrParse("file:///a.pain", good)

	deep := "let x = " + strings.Repeat("(", 500) + "1" + strings.Repeat(")", 500) + "\n"
	if p, ok := cache.GetOrParse("file:///a.pain", deep); ok || p != nil {
		t.Fatal("expected fatal parse to return nothing")
	}
	again, ok := cache.GetOrParse("file:///a.pain", good)
	if !ok || again != prog {
		t.Fatal("expected the previous entry to survive")
	}
}

func TestParseCacheClearsWhenFull(t *testing.T) {
	cache := NewParseCache(newCountingFrontEnd(), 3)
	text := src("fn main():", "    pass")
	for i := 0; i < 4; i++ {
		cache.GetOrParse(fmt.Sprintf("file:///%d.pain", i), text)
	}
	if cache.Len() != 4 {
		t.Fatalf("expected 4 entries before eviction, got %d", cache.Len())
	}
	cache.GetOrParse("file:///new.pain", text)
	if cache.Len() != 1 {
		t.Fatalf("expected the cache to restart with one entry, got %d", cache.Len())
	}
	cache.Clear()
	if cache.Len() != 0 {
		t.Fatalf("expected empty cache, got %d", cache.Len())
	}
}
