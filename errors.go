package scopeforge

import "github.com/ashgrove-dev/scopeforge/internal/core"

// ExtractError, ErrorCode, and the error-code constants are re-exported
// from internal/core so callers never need to import it directly.
type (
	ExtractError = core.ExtractError
	ErrorCode    = core.ErrorCode
)

const (
	ErrInvalidScope       = core.ErrInvalidScope
	ErrFunctionScope      = core.ErrFunctionScope
	ErrHandlerUnavailable = core.ErrHandlerUnavailable
)
