// ABOUTME: Data plugins — optional, core-agnostic collaborators that walk
// ABOUTME: the bridge after extraction to derive side information.
package dataplugin

import (
	"github.com/ashgrove-dev/scopeforge/internal/bridge"
	"github.com/ashgrove-dev/scopeforge/internal/core"
)

// Plugin derives arbitrary structured data from an extraction's result and
// the live bridge it was produced from. Plugins never mutate the bridge
// and never influence the extraction itself; they run strictly after it.
type Plugin interface {
	Name() string
	Derive(result core.ExtractionResult, b *bridge.DomBridge) (any, error)
}
