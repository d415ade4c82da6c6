package scopeforge

import (
	"time"

	"github.com/ashgrove-dev/scopeforge/internal/core"
	"github.com/ashgrove-dev/scopeforge/internal/engine"
	"github.com/ashgrove-dev/scopeforge/internal/resource"
)

// Option is a functional option for configuring a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client for fetching URLs. This allows
// you to configure connection pooling, proxies, etc. New overwrites the
// client's Timeout with the WithTimeout value (30s by default).
func WithHTTPClient(httpClient *resource.HTTPClient) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the timeout for HTTP requests made while fetching a
// URL to extract from.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithUserAgent sets the User-Agent header used when fetching a URL.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithAllowPrivateNetworks allows or disallows extracting from private
// network URLs. By default, private networks are blocked (SSRF
// protection); set true only in trusted environments that need to reach
// internal URLs.
func WithAllowPrivateNetworks(allow bool) Option {
	return func(c *Client) {
		c.allowPrivateNetworks = allow
	}
}

// WithHandlerLookup supplies the collaborator that resolves Auto and
// Handler scopes. Without one, Auto always falls back to Main and Handler
// always fails with ErrHandlerUnavailable.
func WithHandlerLookup(h core.HandlerLookup) Option {
	return func(c *Client) {
		c.handler = h
	}
}

// WithFunctionRunner replaces the built-in sandbox used to execute
// Function scope code. Passing nil disables Function scopes entirely;
// they then fail with ErrFunctionScope.
func WithFunctionRunner(r engine.FunctionRunner) Option {
	return func(c *Client) {
		c.runner = r
	}
}
