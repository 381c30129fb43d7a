// Package ingest provides registry API integration and document fetching.
// This file implements the pipeline.FilingSource interface over live registry
// data with an optional local document cache.
package ingest

import (
	"context"

	"declaration_audit/pkg/models"
)

// CachedRegistryClient wraps RegistryClient with a local document cache.
// List queries always go to the registry; fetched bodies are cached since a
// submitted declaration never changes.
type CachedRegistryClient struct {
	client *RegistryClient
	cache  *DocumentCache
}

// NewCachedRegistryClient creates a registry client backed by a cache
// directory. If cacheDir is empty the default location is used.
func NewCachedRegistryClient(cacheDir string) *CachedRegistryClient {
	cache := NewDocumentCache()
	if cacheDir != "" {
		cache = NewDocumentCacheWithDir(cacheDir)
	}
	return &CachedRegistryClient{
		client: NewRegistryClient(),
		cache:  cache,
	}
}

// ListFilings retrieves declaration cards matching a declarant full name.
func (c *CachedRegistryClient) ListFilings(ctx context.Context, fullName string) (*models.FilingList, error) {
	return c.client.ListFilings(ctx, fullName)
}

// FetchFiling retrieves a declaration body, serving from cache when present.
func (c *CachedRegistryClient) FetchFiling(ctx context.Context, id string) ([]byte, error) {
	if body := c.cache.Get(id); body != nil {
		return body, nil
	}

	body, err := c.client.FetchFiling(ctx, id)
	if err != nil {
		return nil, err
	}
	// A failed cache write only costs a refetch next run.
	c.cache.Set(id, body)
	return body, nil
}
