package ingest

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestUnifyName(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"Петренко Петро Петрович", "петренко+петро+петрович"},
		{"  Іваненко   Іван  ", "іваненко+іван"},
		{"ШЕВЧЕНКО", "шевченко"},
	}
	for _, tc := range tests {
		if got := UnifyName(tc.in); got != tc.expected {
			t.Errorf("UnifyName(%q) = %q, expected %q", tc.in, got, tc.expected)
		}
	}
}

func TestDeclarationViewURL(t *testing.T) {
	got := DeclarationViewURL("abc-123")
	if got != "https://public.nazk.gov.ua/documents/abc-123" {
		t.Errorf("url = %q", got)
	}
}

func TestDocumentCacheRoundTrip(t *testing.T) {
	cache := NewDocumentCacheWithDir(t.TempDir())

	if cache.Has("doc-1") {
		t.Error("empty cache reports a hit")
	}
	if got := cache.Get("doc-1"); got != nil {
		t.Errorf("empty cache returned %q", got)
	}

	body := []byte(`{"data": {}}`)
	if err := cache.Set("doc-1", body); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cache.Has("doc-1") {
		t.Error("stored document not reported")
	}
	if got := cache.Get("doc-1"); string(got) != string(body) {
		t.Errorf("got %q", got)
	}
}

func TestCachedRegistryClientServesFromCache(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		fmt.Fprint(w, `{"data": {"step_1": {"data": {}}}}`)
	}))
	defer server.Close()

	client := NewCachedRegistryClient(t.TempDir())

	// Pre-seed the cache; a cached document must not hit the network.
	client.cache.Set("doc-1", []byte(`{"data": {}}`))
	body, err := client.FetchFiling(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(body) != `{"data": {}}` {
		t.Errorf("body = %q", body)
	}
	if hits != 0 {
		t.Errorf("cached fetch hit the server %d times", hits)
	}
}

func TestRegistryClientErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewRegistryClient()
	if _, err := client.get(context.Background(), server.URL); err == nil {
		t.Fatal("expected status error")
	}
}

func TestRegistryClientGet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept") != "application/json" {
			t.Errorf("accept header = %q", r.Header.Get("Accept"))
		}
		fmt.Fprint(w, `{"count": 0, "data": []}`)
	}))
	defer server.Close()

	client := NewRegistryClient()
	body, err := client.get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(body) == 0 {
		t.Error("empty body")
	}
}
