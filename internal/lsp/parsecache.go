package lsp

import (
	"sync"

	"github.com/cespare/xxhash/v2"

	"pain/internal/ast"
)

// DefaultMaxCacheEntries is the entry count above which the cache is emptied.
const DefaultMaxCacheEntries = 50

type cacheEntry struct {
	fingerprint uint64
	program     *ast.Program
}

// ParseCache remembers the last successful parse of each document, keyed by
// a fingerprint of its text. Entries are advisory: the cache never consults
// the DocumentStore.
type ParseCache struct {
	mu         sync.RWMutex
	entries    map[string]cacheEntry
	maxEntries int
	fe         FrontEnd
}

// NewParseCache creates a cache that parses through fe; maxEntries <= 0
// selects DefaultMaxCacheEntries.
func NewParseCache(fe FrontEnd, maxEntries int) *ParseCache {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxCacheEntries
	}
	return &ParseCache{
		entries:    make(map[string]cacheEntry),
		maxEntries: maxEntries,
		fe:         fe,
	}
}

func fingerprint(text string) uint64 {
	return xxhash.Sum64String(text)
}

// GetOrParse returns the program for text, parsing only when the cached
// fingerprint for uri differs. A fatal parse failure returns false and
// leaves any previous entry in place.
func (c *ParseCache) GetOrParse(uri, text string) (*ast.Program, bool) {
	fp := fingerprint(text)

	c.mu.RLock()
	entry, ok := c.entries[uri]
	c.mu.RUnlock()
	if ok && entry.fingerprint == fp {
		return entry.program, true
	}

	// парсим без блокировки
	prog, _, err := c.fe.ParseWithRecovery(text)
	if err != nil || prog == nil {
		return nil, false
	}

	c.mu.Lock()
	if len(c.entries) > c.maxEntries {
		clear(c.entries)
	}
	c.entries[uri] = cacheEntry{fingerprint: fp, program: prog}
	c.mu.Unlock()
	return prog, true
}

// Invalidate forgets the entry for uri.
func (c *ParseCache) Invalidate(uri string) {
	c.mu.Lock()
	delete(c.entries, uri)
	c.mu.Unlock()
}

func (c *ParseCache) Clear() {
	c.mu.Lock()
	clear(c.entries)
	c.mu.Unlock()
}

func (c *ParseCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
