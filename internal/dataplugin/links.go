package dataplugin

import (
	"strings"

	"github.com/ashgrove-dev/scopeforge/internal/bridge"
	"github.com/ashgrove-dev/scopeforge/internal/cleaners"
	"github.com/ashgrove-dev/scopeforge/internal/core"
)

// Link is one anchor with a non-empty href found in the document.
type Link struct {
	Href string `json:"href"`
	Text string `json:"text"`
}

// Links derives every outbound anchor in the document. BaseURL, when set,
// resolves protocol-relative and relative hrefs to absolute ones.
type Links struct {
	BaseURL string
}

func (Links) Name() string { return "links" }

func (l Links) Derive(_ core.ExtractionResult, b *bridge.DomBridge) (any, error) {
	var out []Link
	for _, ns := range b.QueryAll("a[href]") {
		href := ns.Attrs["href"]
		if strings.TrimSpace(href) == "" {
			continue
		}
		out = append(out, Link{Href: cleaners.ResolveURL(href, l.BaseURL), Text: ns.Text})
	}
	return out, nil
}
