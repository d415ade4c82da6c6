// Package scopeforge extracts scoped, formatted content from web pages.
//
// Given raw HTML (or a URL to fetch), it resolves a requested Scope
// against the document's DOM and renders the result as HTML, Markdown,
// or plain text. Six scope kinds are supported: Main (the page's primary
// content, noise stripped), Full (the whole cleaned document), Selector
// (caller-supplied CSS include/exclude lists), Function (sandboxed JS
// evaluated against a restricted DOM bridge), Auto (delegates to a
// caller-supplied handler, falling back to Main), and Handler (a named
// caller-supplied scope).
//
// # Basic Usage
//
//	client := scopeforge.New()
//	res, err := client.Extract(context.Background(), "https://example.com/article", scopeforge.MainScope(), scopeforge.FormatMarkdown)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Content)
//
// # Configuration
//
//	client := scopeforge.New(
//	    scopeforge.WithTimeout(30 * time.Second),
//	    scopeforge.WithUserAgent("MyApp/1.0"),
//	)
//
// # Extracting from pre-fetched HTML
//
//	html := "<html>...</html>"
//	res, err := client.ExtractHTML(context.Background(), html, "https://example.com", scopeforge.MainScope(), scopeforge.FormatText)
//
// # Function scopes
//
// Function scopes run user-supplied JavaScript inside a built-in sandbox:
// a time-boxed goja VM whose only capability is the DOM query/traversal
// api object. No configuration is needed:
//
//	scope := scopeforge.FunctionScope(`(api, url) => api.$("h1").text`, 0)
//	res, err := client.ExtractHTML(ctx, html, url, scope, scopeforge.FormatText)
//
// # Error Handling
//
// Errors are typed for programmatic handling via *scopeforge.ExtractError:
//
//	res, err := client.Extract(ctx, url, scope, format)
//	if err != nil {
//	    var extractErr *scopeforge.ExtractError
//	    if errors.As(err, &extractErr) {
//	        switch extractErr.Code {
//	        case scopeforge.ErrInvalidScope:
//	            // Handle malformed scope
//	        case scopeforge.ErrFunctionScope:
//	            // Handle sandbox failure/timeout
//	        case scopeforge.ErrHandlerUnavailable:
//	            // Handle missing handler collaborator
//	        }
//	    }
//	}
//
// # Thread Safety
//
// Client is thread-safe and should be reused across goroutines.
package scopeforge
