// ABOUTME: Fetch-boundary URL validation — scheme/host checks plus DNS-based
// ABOUTME: SSRF screening before any extraction URL is fetched.
package validation

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"
)

// ValidationOptions configures how strict ValidateURL is. The zero value is
// not useful; start from DefaultValidationOptions.
type ValidationOptions struct {
	AllowPrivateNetworks bool
	AllowLocalhost       bool
	RequireHTTPS         bool
	MaxHostnameLength    int
	Timeout              time.Duration
}

// DefaultValidationOptions returns the secure defaults: private networks and
// localhost blocked, plain HTTP allowed, RFC 1035 hostname limit.
func DefaultValidationOptions() ValidationOptions {
	return ValidationOptions{
		MaxHostnameLength: 253,
		Timeout:           5 * time.Second,
	}
}

// ValidationError reports why a URL was rejected. Type is a stable machine
// token ("scheme", "host", "localhost", "private_network", ...) so callers
// can branch without string-matching messages.
type ValidationError struct {
	Type    string
	Message string
	URL     string
}

func (e *ValidationError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("URL validation failed (%s): %s - %s", e.Type, e.Message, e.URL)
	}
	return fmt.Sprintf("URL validation failed (%s): %s", e.Type, e.Message)
}

func reject(kind, msg, rawURL string) *ValidationError {
	return &ValidationError{Type: kind, Message: msg, URL: rawURL}
}

// privateNets are the ranges blocked unless AllowPrivateNetworks is set:
// the RFC 1918 blocks, loopback, and link-local for both address families.
var privateNets = mustParseCIDRs(
	"10.0.0.0/8",
	"172.16.0.0/12",
	"192.168.0.0/16",
	"127.0.0.0/8",
	"169.254.0.0/16",
	"::1/128",
	"fc00::/7",
	"fe80::/10",
)

func mustParseCIDRs(cidrs ...string) []*net.IPNet {
	nets := make([]*net.IPNet, 0, len(cidrs))
	for _, c := range cidrs {
		_, n, err := net.ParseCIDR(c)
		if err != nil {
			panic(fmt.Sprintf("validation: bad built-in CIDR %q: %v", c, err))
		}
		nets = append(nets, n)
	}
	return nets
}

// ValidateURL rejects URLs the fetch boundary must never touch: non-HTTP
// schemes, empty or oversized hosts, and (after resolving the hostname)
// anything that lands on localhost or a private network, unless opts opens
// those up. A nil error means the URL is safe to hand to the HTTP client.
func ValidateURL(ctx context.Context, rawURL string, opts ValidationOptions) error {
	if rawURL == "" {
		return reject("empty", "URL cannot be empty", rawURL)
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return reject("parse", fmt.Sprintf("failed to parse URL: %v", err), rawURL)
	}

	switch {
	case u.Scheme == "":
		return reject("scheme", "URL scheme is required", rawURL)
	case u.Scheme != "http" && u.Scheme != "https":
		return reject("scheme", "only HTTP and HTTPS schemes are allowed", rawURL)
	case opts.RequireHTTPS && u.Scheme != "https":
		return reject("scheme", "HTTPS is required", rawURL)
	case u.Host == "":
		return reject("host", "URL host is required", rawURL)
	case strings.ContainsAny(u.Host, " \t\n\r"):
		return reject("host", "host contains invalid characters", rawURL)
	case len(u.Host) > opts.MaxHostnameLength:
		return reject("hostname_length",
			fmt.Sprintf("hostname too long (%d chars, max %d)", len(u.Host), opts.MaxHostnameLength), rawURL)
	}

	return screenAddress(ctx, u.Hostname(), rawURL, opts)
}

// screenAddress resolves hostname and applies the localhost/private-range
// policy against every address it resolves to, so a public name pointing at
// an internal address is caught the same as a literal internal IP.
func screenAddress(ctx context.Context, hostname, rawURL string, opts ValidationOptions) error {
	if hostname == "" {
		return reject("host", "cannot extract hostname", rawURL)
	}
	if !opts.AllowLocalhost && isLocalhost(hostname) {
		return reject("localhost", "localhost access not allowed", rawURL)
	}

	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	addrs, err := net.DefaultResolver.LookupIPAddr(ctx, hostname)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return reject("dns_timeout", "DNS resolution timed out", rawURL)
		}
		return reject("dns", fmt.Sprintf("DNS resolution failed: %v", err), rawURL)
	}
	if len(addrs) == 0 {
		return reject("dns", "no IP addresses found", rawURL)
	}

	if !opts.AllowPrivateNetworks {
		for _, addr := range addrs {
			for _, n := range privateNets {
				if n.Contains(addr.IP) {
					return reject("private_network", "private network access not allowed", rawURL)
				}
			}
		}
	}
	return nil
}

func isLocalhost(hostname string) bool {
	return hostname == "localhost" ||
		hostname == "127.0.0.1" ||
		hostname == "::1" ||
		strings.HasSuffix(hostname, ".localhost")
}
