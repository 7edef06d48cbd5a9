package commands

import (
	"context"
	"time"

	"github.com/goliatone/go-sdui/internal/logging"
	"github.com/goliatone/go-sdui/pkg/interfaces"
)

// DefaultCommandTimeout matches the editor's configured default.
const DefaultCommandTimeout = 30 * time.Second

// executionScope prepares the context one command runs in: never nil,
// bounded by timeout when positive, and carrying the document slot that
// ReportDocument writes to.
func executionScope(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc, *DocumentRef) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, slot := withDocumentSlot(ctx)
	if timeout <= 0 {
		return ctx, func() {}, slot
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	return ctx, cancel, slot
}

// EnsureLogger returns logger, or a no-op logger when nil.
func EnsureLogger(logger interfaces.Logger) interfaces.Logger {
	return logging.Ensure(logger)
}
