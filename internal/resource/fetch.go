// ABOUTME: The fetch boundary — retrieves a URL's HTML on behalf of the
// ABOUTME: extraction client, screening out responses that can't be parsed.
package resource

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// fetchTimeout bounds a single fetch attempt end to end.
const fetchTimeout = 10 * time.Second

// maxContentLength is the largest response body a fetch will accept, in
// bytes. The DOM bridge has no size limit of its own; this bound exists at
// the fetch boundary only.
const maxContentLength = 10 * 1024 * 1024

// defaultHeaders make the request look like a plain browser fetch. A
// caller-supplied header of the same name wins.
var defaultHeaders = map[string]string{
	"User-Agent":                "scopeforge/1.0 (+https://github.com/ashgrove-dev/scopeforge)",
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	"Accept-Language":           "en-US,en;q=0.5",
	"Upgrade-Insecure-Requests": "1",
}

func mergeHeaders(custom map[string]string) map[string]string {
	merged := make(map[string]string, len(defaultHeaders)+len(custom))
	for k, v := range defaultHeaders {
		merged[k] = v
	}
	for k, v := range custom {
		merged[k] = v
	}
	return merged
}

// FetchResult is the outcome of a fetch attempt: either a Response or an
// error message, never both. Fetch-level problems are data, not Go errors,
// so the caller can relay the origin's failure verbatim.
type FetchResult struct {
	Response *Response
	Message  string
}

// IsError reports whether the fetch failed.
func (fr *FetchResult) IsError() bool { return fr.Response == nil }

// Fetch retrieves rawURL with client (plus any extra headers) and screens
// the response: non-200 statuses, binary content types, and oversized
// bodies all come back as an error-carrying FetchResult. The returned Go
// error is reserved for programming mistakes (a nil client).
func Fetch(ctx context.Context, rawURL string, headers map[string]string, client *HTTPClient) (*FetchResult, error) {
	if client == nil {
		return nil, fmt.Errorf("resource: Fetch requires an HTTPClient")
	}

	withHeaders := &HTTPClient{Client: client.Client, Headers: mergeHeaders(headers)}
	response, err := withHeaders.Get(ctx, rawURL)
	if err != nil {
		return &FetchResult{Message: fmt.Sprintf("HTTP request failed: %v", err)}, nil
	}

	if msg := screenResponse(response); msg != "" {
		return &FetchResult{Message: msg}, nil
	}
	return &FetchResult{Response: response}, nil
}

// screenResponse returns a rejection message for responses the parser
// should never see, or "" when the response is usable.
func screenResponse(response *Response) string {
	if response.StatusCode != 200 {
		return fmt.Sprintf("resource returned status %d; only 200 responses are parsed", response.StatusCode)
	}

	contentType := response.GetContentType()
	if !IsTextContent(contentType) {
		return fmt.Sprintf("content-type %q does not look like HTML or text", contentType)
	}

	if cl := response.GetHeader("Content-Length"); cl != "" {
		if n, err := strconv.ParseInt(cl, 10, 64); err == nil && n > maxContentLength {
			return fmt.Sprintf("content too large: %d bytes (max %d)", n, maxContentLength)
		}
	}
	if len(response.Body) > maxContentLength {
		return fmt.Sprintf("content too large: body exceeds %d bytes", maxContentLength)
	}
	return ""
}

// IsTextContent reports whether contentType names a format the fetch
// boundary will hand onward as HTML: text/html, XHTML, XML, or plain text.
// An empty content type is given the benefit of the doubt.
func IsTextContent(contentType string) bool {
	if contentType == "" {
		return true
	}
	contentType = strings.ToLower(contentType)
	for _, allowed := range []string{"text/html", "application/xhtml", "text/plain", "application/xml", "text/xml"} {
		if strings.Contains(contentType, allowed) {
			return true
		}
	}
	return false
}
