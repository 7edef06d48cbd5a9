package commands

import (
	"context"
	"errors"
	"time"

	command "github.com/goliatone/go-command"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-sdui/internal/logging"
	"github.com/goliatone/go-sdui/pkg/interfaces"
)

// TelemetryStatus is the outcome of one editor command.
type TelemetryStatus string

const (
	TelemetryStatusApplied   TelemetryStatus = "applied"
	TelemetryStatusRejected  TelemetryStatus = "rejected"
	TelemetryStatusCancelled TelemetryStatus = "cancelled"
)

// DocumentRef names the document state a command left behind.
type DocumentRef struct {
	SchemaID string
	PageID   string
	Revision string
}

func (d DocumentRef) fields() map[string]any {
	out := map[string]any{}
	if d.SchemaID != "" {
		out["schema_id"] = d.SchemaID
	}
	if d.PageID != "" {
		out["page_id"] = d.PageID
	}
	if d.Revision != "" {
		out["revision"] = d.Revision
	}
	return out
}

type documentKey struct{}

// ReportDocument records the document a command produced. Handlers read it
// back after execution and hand it to telemetry. Outside a Handler it is a
// no-op.
func ReportDocument(ctx context.Context, ref DocumentRef) {
	if ctx == nil {
		return
	}
	if slot, ok := ctx.Value(documentKey{}).(*DocumentRef); ok && slot != nil {
		*slot = ref
	}
}

func withDocumentSlot(ctx context.Context) (context.Context, *DocumentRef) {
	slot := &DocumentRef{}
	return context.WithValue(ctx, documentKey{}, slot), slot
}

// TelemetryInfo is handed to telemetry callbacks after every execution.
type TelemetryInfo struct {
	Command   string
	Operation string
	Fields    map[string]any
	Document  DocumentRef
	Duration  time.Duration
	Error     error
	Status    TelemetryStatus
}

// Telemetry observes command outcomes.
type Telemetry[T command.Message] func(ctx context.Context, msg T, info TelemetryInfo)

// DefaultTelemetry logs outcomes as sdui.command.* entries.
func DefaultTelemetry[T command.Message](logger interfaces.Logger) Telemetry[T] {
	logger = EnsureLogger(logger)
	return func(_ context.Context, _ T, info TelemetryInfo) {
		logOutcome(logger, info)
	}
}

func logOutcome(logger interfaces.Logger, info TelemetryInfo) {
	entry := logging.WithFields(logging.WithFields(logger, info.Fields), info.Document.fields())
	args := []any{"duration_ms", info.Duration.Milliseconds()}
	switch info.Status {
	case TelemetryStatusApplied:
		entry.Info("sdui.command.applied", args...)
	case TelemetryStatusCancelled:
		entry.Warn("sdui.command.cancelled", append(args, "error", info.Error)...)
	default:
		var typed *goerrors.Error
		if errors.As(info.Error, &typed) {
			args = append(args, "category", string(typed.Category), "text_code", typed.TextCode)
		}
		entry.Error("sdui.command.rejected", append(args, "error", info.Error)...)
	}
}
