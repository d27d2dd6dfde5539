// Package scraper owns the HTTP boundary: fetching remote pages with a
// browser identification header and a bounded timeout, and handing back
// parsed documents. Failures surface as a typed FetchError so callers
// can tell a failed fetch apart from data absent on a page.
package scraper

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

// FetchError reports a failed page fetch: a network error, a timeout,
// or a non-success status code.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
}

// Unwrap returns the underlying transport error, if any.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Config holds fetcher configuration.
type Config struct {
	BaseURL   string        // host prefix for relative links
	UserAgent string        // browser identification header
	Timeout   time.Duration // per-request bound
}

// Fetcher fetches pages and parses them into goquery documents.
type Fetcher struct {
	client  *resty.Client
	baseURL string
}

// NewFetcher creates a new Fetcher.
// Parameters:
//   - cfg: fetcher configuration.
// Returns:
//   - *Fetcher: configured fetcher.
func NewFetcher(cfg *Config) *Fetcher {
	client := resty.New()
	client.SetTimeout(cfg.Timeout)
	client.SetHeader("User-Agent", cfg.UserAgent)
	client.SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	client.SetHeader("Accept-Language", "en-US,en;q=0.9")

	return &Fetcher{
		client:  client,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
	}
}

// GetDocument fetches a page and parses it.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - url: absolute page URL.
// Returns:
//   - *goquery.Document: parsed document on success.
//   - error: *FetchError on network error, timeout, or non-2xx status.
func (f *Fetcher) GetDocument(ctx context.Context, url string) (*goquery.Document, error) {
	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	if !resp.IsSuccess() {
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode()}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body()))
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	return doc, nil
}

// AbsoluteURL resolves a page-relative href against the configured host.
func (f *Fetcher) AbsoluteURL(href string) string {
	if strings.HasPrefix(href, "/") {
		return f.baseURL + href
	}
	return href
}
