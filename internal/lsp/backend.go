package lsp

import (
	"errors"
	"fmt"

	"pain/internal/stdlib"
)

type MessageType int

const (
	MessageError   MessageType = 1
	MessageWarning MessageType = 2
	MessageInfo    MessageType = 3
)

// Client is the editor side of the connection.
type Client interface {
	PublishDiagnostics(uri string, diagnostics []Diagnostic)
	LogMessage(kind MessageType, message string)
}

// Options configures a Backend. Zero values select the defaults.
type Options struct {
	FrontEnd        FrontEnd
	MaxDocumentSize int
	MaxCacheEntries int
	Completion      CompletionOptions
}

// Backend owns the open documents and their parse cache and answers editor
// requests about them. Every entry point is a fault boundary: a panic in the
// front-end degrades the answer, never the process.
type Backend struct {
	fe         FrontEnd
	client     Client
	docs       *DocumentStore
	cache      *ParseCache
	completion CompletionOptions
}

func NewBackend(client Client, opts Options) *Backend {
	fe := opts.FrontEnd
	if fe == nil {
		fe = DefaultFrontEnd()
	}
	completion := opts.Completion
	if completion.MaxDetailed <= 0 {
		completion.MaxDetailed = DefaultMaxDetailed
	}
	if completion.MaxBuiltins <= 0 {
		completion.MaxBuiltins = DefaultMaxBuiltins
	}
	if completion.BuiltinDetailCutoff <= 0 {
		completion.BuiltinDetailCutoff = DefaultBuiltinDetailCutoff
	}
	if completion.Builtins == nil {
		completion.Builtins = isolate("builtins", []stdlib.Function(nil), fe.Builtins)
	}
	return &Backend{
		fe:         fe,
		client:     client,
		docs:       NewDocumentStore(opts.MaxDocumentSize),
		cache:      NewParseCache(fe, opts.MaxCacheEntries),
		completion: completion,
	}
}

func (b *Backend) Documents() *DocumentStore { return b.docs }

func (b *Backend) Cache() *ParseCache { return b.cache }

// Open stores a newly opened document and publishes its diagnostics.
func (b *Backend) Open(uri, text string) {
	if b.accept(uri, text, b.docs.Open) {
		b.publish(uri, text)
	}
}

// Change replaces a document and republishes its diagnostics.
func (b *Backend) Change(uri, text string) {
	if b.accept(uri, text, b.docs.Change) {
		b.publish(uri, text)
	}
}

// accept applies an update to the store and drops the stale parse. Oversized
// text is refused with a warning to the operator and the editor.
func (b *Backend) accept(uri, text string, store func(uri, text string) error) bool {
	return isolate("update "+uri, false, func() bool {
		if err := store(uri, text); err != nil {
			if errors.Is(err, ErrDocumentTooLarge) {
				log.Warningf("%v", err)
				b.logMessage(MessageWarning, fmt.Sprintf("Document %s is too large (%d bytes), skipping", uri, len(text)))
			}
			return false
		}
		b.cache.Invalidate(uri)
		return true
	})
}

// publish analyzes text and sends the result; a fault publishes an empty list.
func (b *Backend) publish(uri, text string) {
	diags := isolate("diagnostics "+uri, []Diagnostic{}, func() []Diagnostic {
		return b.Analyze(text)
	})
	isolateDo("publish "+uri, func() {
		if b.client != nil {
			b.client.PublishDiagnostics(uri, diags)
		}
	})
}

// Close clears the diagnostics shown for uri. The text stays in the store
// until shutdown.
func (b *Backend) Close(uri string) {
	isolateDo("close "+uri, func() {
		if b.client != nil {
			b.client.PublishDiagnostics(uri, []Diagnostic{})
		}
	})
}

// Completion lists candidates at pos; the list is never empty.
func (b *Backend) Completion(uri string, pos Position) []CompletionItem {
	return isolate("completion "+uri, fallbackCompletions(), func() []CompletionItem {
		text, ok := b.docs.Read(uri)
		if !ok {
			return fallbackCompletions()
		}
		prog, _ := b.cache.GetOrParse(uri, text)
		return Complete(prog, text, pos, b.completion)
	})
}

// Hover describes the function defined at pos, or returns nil.
func (b *Backend) Hover(uri string, pos Position) *HoverInfo {
	return isolate("hover "+uri, (*HoverInfo)(nil), func() *HoverInfo {
		text, ok := b.docs.Read(uri)
		if !ok {
			return nil
		}
		prog, ok := b.cache.GetOrParse(uri, text)
		if !ok {
			return nil
		}
		info, _ := HoverAt(prog, toLine(pos), safeInt(pos.Character)+1)
		return info
	})
}

// Shutdown releases every document and cached parse.
func (b *Backend) Shutdown() {
	b.docs.Clear()
	b.cache.Clear()
}

func (b *Backend) logMessage(kind MessageType, msg string) {
	if b.client != nil {
		b.client.LogMessage(kind, msg)
	}
}
