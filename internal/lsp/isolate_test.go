package lsp

import "testing"

func TestIsolateReturnsFallbackOnPanic(t *testing.T) {
	got := isolate("test", 7, func() int { panic("boom") })
	if got != 7 {
		t.Fatalf("expected fallback 7, got %d", got)
	}
}

func TestIsolatePassesThroughResult(t *testing.T) {
	got := isolate("test", 7, func() int { return 3 })
	if got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
}

func TestIsolateDo(t *testing.T) {
	if !isolateDo("test", func() {}) {
		t.Fatal("expected completion")
	}
	if isolateDo("test", func() { panic(errString("fault")) }) {
		t.Fatal("expected panic to be reported")
	}
}

type errString string

func (e errString) Error() string { return string(e) }
