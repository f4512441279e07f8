package session

import (
	"crypto/sha256"
	"encoding/hex"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/text/unicode/norm"

	"irview/internal/graph"
	"irview/internal/ir"
)

// DefaultCacheSize bounds the number of cached pass graphs. A pass
// graph is small relative to its text, so this is generous for an
// interactive session.
const DefaultCacheSize = 64

// Cache memoizes pass-text parses across debounced reparses. The parser
// itself stays stateless; the cache lives entirely on the host side and
// hands out the same immutable Graph for identical pass text.
type Cache struct {
	lru *lru.Cache[string, *ir.Graph]
}

// NewCache creates a cache holding up to size graphs.
func NewCache(size int) (*Cache, error) {
	l, err := lru.New[string, *ir.Graph](size)
	if err != nil {
		return nil, err
	}
	return &Cache{lru: l}, nil
}

// Build returns the graph for the given pass text, parsing on a miss.
func (c *Cache) Build(passText string) *ir.Graph {
	key := Key(passText)
	if g, ok := c.lru.Get(key); ok {
		return g
	}
	g := graph.Build(passText)
	c.lru.Add(key, g)
	return g
}

// Len reports the number of cached graphs.
func (c *Cache) Len() int {
	return c.lru.Len()
}

// Key derives the cache key for pass text: SHA-256 over the NFC
// normalization of the text. Clipboard paste can deliver the same
// visible text in different Unicode normal forms; normalizing keeps the
// key stable across them.
func Key(passText string) string {
	sum := sha256.Sum256([]byte(norm.NFC.String(passText)))
	return hex.EncodeToString(sum[:])
}
