package scopeforge

import (
	"context"

	"github.com/ashgrove-dev/scopeforge/internal/core"
)

// Extractor is the interface a Client satisfies. Implement it to create
// mock extractors for testing.
type Extractor interface {
	Extract(ctx context.Context, url string, scope core.Scope, format core.Format) (*core.ExtractionResult, error)
	ExtractHTML(ctx context.Context, html, sourceURL string, scope core.Scope, format core.Format) (*core.ExtractionResult, error)
}

// Ensure Client implements Extractor.
var _ Extractor = (*Client)(nil)
