package lsp

import (
	"errors"
	"fmt"
	"sync"
)

// DefaultMaxDocumentSize is the largest document, in bytes, the store accepts.
const DefaultMaxDocumentSize = 10 << 20

// ErrDocumentTooLarge is returned when an update exceeds the size cap; the
// store is left unchanged.
var ErrDocumentTooLarge = errors.New("document too large")

// DocumentStore maps document URIs to their full text.
type DocumentStore struct {
	mu      sync.RWMutex
	docs    map[string]string
	maxSize int
}

// NewDocumentStore creates a store; maxSize <= 0 selects DefaultMaxDocumentSize.
func NewDocumentStore(maxSize int) *DocumentStore {
	if maxSize <= 0 {
		maxSize = DefaultMaxDocumentSize
	}
	return &DocumentStore{
		docs:    make(map[string]string),
		maxSize: maxSize,
	}
}

// MaxSize reports the size cap in bytes.
func (s *DocumentStore) MaxSize() int { return s.maxSize }

// Open stores the text of a newly opened document.
func (s *DocumentStore) Open(uri, text string) error {
	return s.put(uri, text)
}

// Change replaces the whole text of a document.
func (s *DocumentStore) Change(uri, text string) error {
	return s.put(uri, text)
}

func (s *DocumentStore) put(uri, text string) error {
	// размер проверяем до блокировки
	if len(text) > s.maxSize {
		return fmt.Errorf("%s: %d bytes: %w", uri, len(text), ErrDocumentTooLarge)
	}
	s.mu.Lock()
	s.docs[uri] = text
	s.mu.Unlock()
	return nil
}

// Read returns the current text of uri.
func (s *DocumentStore) Read(uri string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	text, ok := s.docs[uri]
	return text, ok
}

// Clear drops every document.
func (s *DocumentStore) Clear() {
	s.mu.Lock()
	clear(s.docs)
	s.mu.Unlock()
}

func (s *DocumentStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}
