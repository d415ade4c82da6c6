package scopeforge

import (
	"context"
	"fmt"
	"time"

	"github.com/ashgrove-dev/scopeforge/internal/core"
	"github.com/ashgrove-dev/scopeforge/internal/engine"
	"github.com/ashgrove-dev/scopeforge/internal/meta"
	"github.com/ashgrove-dev/scopeforge/internal/resource"
	"github.com/ashgrove-dev/scopeforge/internal/sandbox"
	"github.com/ashgrove-dev/scopeforge/internal/validation"
)

// Client is a thread-safe, reusable extraction client. It owns its own
// HTTP client for connection pooling and can be shared across goroutines.
type Client struct {
	httpClient           *resource.HTTPClient
	userAgent            string
	timeout              time.Duration
	allowPrivateNetworks bool
	handler              core.HandlerLookup
	runner               engine.FunctionRunner
}

// New creates a Client with the provided options applied over sensible
// defaults.
//
// Example:
//
//	client := scopeforge.New(
//	    scopeforge.WithTimeout(30*time.Second),
//	    scopeforge.WithUserAgent("MyApp/1.0"),
//	)
func New(opts ...Option) *Client {
	c := &Client{
		userAgent: "scopeforge/1.0",
		timeout:   30 * time.Second,
		runner:    sandbox.Runner{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = resource.NewHTTPClient(map[string]string{"User-Agent": c.userAgent})
	}
	c.httpClient.Client.Timeout = c.timeout
	return c
}

// Extract fetches rawURL and resolves scope against it, rendering the
// result in format.
func (c *Client) Extract(ctx context.Context, rawURL string, scope core.Scope, format core.Format) (*core.ExtractionResult, error) {
	htmlStr, err := c.fetchHTML(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	return c.ExtractHTML(ctx, htmlStr, rawURL, scope, format)
}

// ExtractHTML resolves scope against already-fetched html, rendering the
// result in format. sourceURL is passed through to the HandlerLookup
// collaborator (Auto/Handler scopes) and to Function scope code as its url
// argument; it is never fetched.
func (c *Client) ExtractHTML(_ context.Context, html, sourceURL string, scope core.Scope, format core.Format) (*core.ExtractionResult, error) {
	res, err := engine.Extract(html, scope, format, engine.Options{
		Handler: c.handler,
		Runner:  c.runner,
		URL:     sourceURL,
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Meta fetches rawURL and parses its head-derived metadata.
func (c *Client) Meta(ctx context.Context, rawURL string) (*core.PageMeta, error) {
	htmlStr, err := c.fetchHTML(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	m := meta.Parse(htmlStr)
	return &m, nil
}

// MetaHTML parses the head-derived metadata of already-fetched html.
func (c *Client) MetaHTML(html string) *core.PageMeta {
	m := meta.Parse(html)
	return &m
}

// FetchHTML validates rawURL against the client's SSRF policy, fetches
// it, and decodes the response body to a UTF-8 HTML string, without
// resolving a scope against it. internal/httpserver uses this directly
// for the url form of POST /extract.
func (c *Client) FetchHTML(ctx context.Context, rawURL string) (string, error) {
	return c.fetchHTML(ctx, rawURL)
}

// fetchHTML validates rawURL against the client's SSRF policy, fetches
// it, and decodes the response body to a UTF-8 HTML string.
func (c *Client) fetchHTML(ctx context.Context, rawURL string) (string, error) {
	if rawURL == "" {
		return "", core.NewInvalidScope("fetchHTML", fmt.Errorf("empty URL"))
	}

	vOpts := validation.DefaultValidationOptions()
	vOpts.AllowPrivateNetworks = c.allowPrivateNetworks
	vOpts.AllowLocalhost = c.allowPrivateNetworks
	if err := validation.ValidateURL(ctx, rawURL, vOpts); err != nil {
		return "", core.NewInvalidScope("fetchHTML", err)
	}

	result, err := resource.Fetch(ctx, rawURL, map[string]string{"User-Agent": c.userAgent}, c.httpClient)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	if result.IsError() {
		return "", fmt.Errorf("fetch %s: %s", rawURL, result.Message)
	}

	htmlStr, err := resource.DetectAndDecodeText(result.Response.Body, result.Response.GetContentType())
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", rawURL, err)
	}
	return htmlStr, nil
}
