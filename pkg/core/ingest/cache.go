// Package ingest provides caching for fetched declaration documents.
package ingest

import (
	"os"
	"path/filepath"
)

// DocumentCache provides file-based caching for raw declaration bodies.
// Declarations are immutable once submitted, so entries never expire.
type DocumentCache struct {
	cacheDir string
}

// NewDocumentCache creates a new document cache.
// Cache directory defaults to .cache/declarations in the current working directory.
func NewDocumentCache() *DocumentCache {
	cacheDir := filepath.Join(".cache", "declarations")
	os.MkdirAll(cacheDir, 0755)
	return &DocumentCache{cacheDir: cacheDir}
}

// NewDocumentCacheWithDir creates a cache with a custom directory.
func NewDocumentCacheWithDir(dir string) *DocumentCache {
	os.MkdirAll(dir, 0755)
	return &DocumentCache{cacheDir: dir}
}

func (c *DocumentCache) filePath(id string) string {
	return filepath.Join(c.cacheDir, id+".json")
}

// Get retrieves a cached document body by declaration ID.
// Returns nil if not cached.
func (c *DocumentCache) Get(id string) []byte {
	data, err := os.ReadFile(c.filePath(id))
	if err != nil {
		return nil
	}
	return data
}

// Set stores a document body in the cache.
func (c *DocumentCache) Set(id string, body []byte) error {
	return os.WriteFile(c.filePath(id), body, 0644)
}

// Has checks if a declaration body is cached.
func (c *DocumentCache) Has(id string) bool {
	_, err := os.Stat(c.filePath(id))
	return err == nil
}

// ClearCache removes all cached files.
func (c *DocumentCache) ClearCache() error {
	return os.RemoveAll(c.cacheDir)
}
