package handlers

import (
	"github.com/retrogameshop/storefront-platform/internal/errors"
)

// userMessage unwraps the human-readable message from an application error.
// Anything else collapses to a generic line so internals never leak.
func userMessage(err error) string {
	if appErr, ok := errors.IsAppError(err); ok {
		return appErr.Message
	}

	return "Er ging iets mis"
}
