// Package ingest provides public declaration registry API integration for
// fetching submitted declarations.
// API base: https://public-api.nazk.gov.ua/v2/
package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"declaration_audit/pkg/core/utils"
	"declaration_audit/pkg/models"
)

const (
	// Registry API endpoints
	RegistryListURL     = "https://public-api.nazk.gov.ua/v2/documents/list?query=%s"
	RegistryDocumentURL = "https://public-api.nazk.gov.ua/v2/documents/%s"

	// Public viewer, used for hyperlinks in reports
	RegistryViewURL = "https://public.nazk.gov.ua/documents/%s"
)

// RegistryClient handles declaration registry API requests.
type RegistryClient struct {
	httpClient *http.Client
}

// NewRegistryClient creates a new registry API client.
func NewRegistryClient() *RegistryClient {
	return &RegistryClient{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// UnifyName normalizes a declarant full name into the registry query form:
// lowercased, whitespace-separated parts joined with '+'.
func UnifyName(fullName string) string {
	return strings.Join(strings.Fields(strings.ToLower(fullName)), "+")
}

// DeclarationViewURL returns the public viewer address for a declaration.
func DeclarationViewURL(id string) string {
	return fmt.Sprintf(RegistryViewURL, id)
}

// ListFilings retrieves all declaration cards matching a declarant full name.
// The registry tolerates sloppy JSON in places, so the response goes through
// the lenient parser.
func (c *RegistryClient) ListFilings(ctx context.Context, fullName string) (*models.FilingList, error) {
	query := url.QueryEscape(UnifyName(fullName))
	body, err := c.get(ctx, fmt.Sprintf(RegistryListURL, query))
	if err != nil {
		return nil, fmt.Errorf("listing declarations for %q: %w", fullName, err)
	}

	var list models.FilingList
	if err := utils.SmartParse(body, &list); err != nil {
		return nil, fmt.Errorf("parsing declaration list for %q: %w", fullName, err)
	}
	return &list, nil
}

// FetchFiling retrieves the full submitted document body by declaration ID.
// The body is returned raw; section extraction happens downstream.
func (c *RegistryClient) FetchFiling(ctx context.Context, id string) ([]byte, error) {
	body, err := c.get(ctx, fmt.Sprintf(RegistryDocumentURL, id))
	if err != nil {
		return nil, fmt.Errorf("fetching declaration %s: %w", id, err)
	}
	return body, nil
}

func (c *RegistryClient) get(ctx context.Context, address string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, address, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("registry request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("registry returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}
