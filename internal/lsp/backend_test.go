package lsp

import (
	"strings"
	"testing"
)

func TestBackendOpenPublishes(t *testing.T) {
	client := &recordingClient{}
	b := NewBackend(client, Options{})
	b.Open("file:///a.pain", "let x = undefined_variable\n")
	got := client.last(t)
	if got.uri != "file:///a.pain" || len(got.diags) != 1 || got.diags[0].Severity != SeverityError {
		t.Fatalf("unexpected publish: %+v", got)
	}

	b.Change("file:///a.pain", "let x = 1\nprint(x)\n")
	if got := client.last(t); len(got.diags) != 0 {
		t.Fatalf("expected clean diagnostics, got %+v", got.diags)
	}
}

func TestBackendChangeInvalidatesCache(t *testing.T) {
	fe := newCountingFrontEnd()
	b := NewBackend(&recordingClient{}, Options{FrontEnd: fe})
	uri := "file:///a.pain"
	b.Open(uri, src("fn a():", "    pass"))
	b.Hover(uri, Position{})
	if b.Cache().Len() != 1 {
		t.Fatalf("expected a cache entry, got %d", b.Cache().Len())
	}
	b.Change(uri, src("fn b():", "    pass"))
	if b.Cache().Len() != 0 {
		t.Fatal("expected change to invalidate the entry")
	}
	info := b.Hover(uri, Position{})
	if info == nil || info.Signature != "fn b()" {
		t.Fatalf("hover after change = %+v", info)
	}
}

func TestBackendOversizedOpenKeepsPriorText(t *testing.T) {
	client := &recordingClient{}
	b := NewBackend(client, Options{MaxDocumentSize: 32})
	uri := "file:///a.pain"
	b.Open(uri, "let x = 1\n")
	before := len(client.published)

	big := strings.Repeat("#", 64)
	b.Open(uri, big)
	if text, _ := b.Documents().Read(uri); text != "let x = 1\n" {
		t.Fatalf("store changed: %q", text)
	}
	if len(client.published) != before {
		t.Fatal("oversized open must not publish")
	}
	if len(client.logs) != 1 || client.logs[0].kind != MessageWarning {
		t.Fatalf("expected one warning, got %+v", client.logs)
	}
	want := "Document file:///a.pain is too large (64 bytes), skipping"
	if client.logs[0].msg != want {
		t.Fatalf("message = %q", client.logs[0].msg)
	}
}

func TestBackendClosePublishesEmpty(t *testing.T) {
	client := &recordingClient{}
	b := NewBackend(client, Options{})
	uri := "file:///a.pain"
	b.Open(uri, "let x = undefined_variable\n")
	b.Close(uri)
	got := client.last(t)
	if got.diags == nil || len(got.diags) != 0 {
		t.Fatalf("expected an empty list, got %+v", got.diags)
	}
	if _, ok := b.Documents().Read(uri); !ok {
		t.Fatal("close must not drop the document")
	}
}

func TestBackendCompletionUnknownDocument(t *testing.T) {
	b := NewBackend(nil, Options{})
	items := b.Completion("file:///missing.pain", Position{})
	if len(items) == 0 {
		t.Fatal("expected fallback items")
	}
	if b.Hover("file:///missing.pain", Position{}) != nil {
		t.Fatal("expected no hover")
	}
}

func TestBackendCompletionOnUnparseableInput(t *testing.T) {
	b := NewBackend(nil, Options{})
	uri := "file:///a.pain"
	b.Open(uri, "let x = "+strings.Repeat("[", 400)+"\n")
	items := b.Completion(uri, Position{Character: 3})
	if len(items) != len(keywordCompletions)+1 {
		t.Fatalf("expected fallback list, got %d items", len(items))
	}
}

func TestBackendPanickingFrontEnd(t *testing.T) {
	fe := panickingFrontEnd{FrontEnd: DefaultFrontEnd(), parse: true, check: true, warnings: true, builtins: true}
	client := &recordingClient{}
	b := NewBackend(client, Options{FrontEnd: fe})
	uri := "file:///a.pain"

	b.Open(uri, "fn main():\n    pass\n")
	if got := client.last(t); len(got.diags) != 0 {
		t.Fatalf("expected empty diagnostics, got %+v", got.diags)
	}
	items := b.Completion(uri, Position{})
	if len(items) != len(keywordCompletions)+1 {
		t.Fatalf("expected fallback completion, got %d items", len(items))
	}
	if info := b.Hover(uri, Position{}); info != nil {
		t.Fatalf("expected nil hover, got %+v", info)
	}
	b.Change(uri, "fn main():\n    print(1)\n")
	if text, _ := b.Documents().Read(uri); !strings.Contains(text, "print") {
		t.Fatal("backend stopped accepting changes")
	}
}

func TestBackendShutdownClearsState(t *testing.T) {
	b := NewBackend(&recordingClient{}, Options{})
	b.Open("file:///a.pain", "fn main():\n    pass\n")
	b.Hover("file:///a.pain", Position{})
	b.Shutdown()
	if b.Documents().Len() != 0 || b.Cache().Len() != 0 {
		t.Fatal("expected empty state after shutdown")
	}
}
