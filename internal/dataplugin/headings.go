package dataplugin

import (
	"strconv"

	"github.com/ashgrove-dev/scopeforge/internal/bridge"
	"github.com/ashgrove-dev/scopeforge/internal/core"
)

// Heading is one h1-h6 element found in the document, in document order.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Headings derives the document's heading outline.
type Headings struct{}

func (Headings) Name() string { return "headings" }

func (Headings) Derive(_ core.ExtractionResult, b *bridge.DomBridge) (any, error) {
	var out []Heading
	for _, ns := range b.QueryAll("h1, h2, h3, h4, h5, h6") {
		level, err := strconv.Atoi(ns.Tag[1:])
		if err != nil {
			continue
		}
		out = append(out, Heading{Level: level, Text: ns.Text})
	}
	return out, nil
}
