package mutation

import (
	"errors"

	"github.com/gabriel-vasile/mimetype"

	"github.com/goliatone/go-sdui/internal/schema"
	"github.com/goliatone/go-sdui/internal/validation"
)

// Imported is the outcome of a successful import.
type Imported struct {
	Schema        *schema.Schema
	InitialPageID string
	Format        schema.Format
}

// ImportSchema normalizes a legacy-wrapped or flattened document. Failures are
// reported as *ImportError. An empty pages array is replaced by the default
// welcome page. The initial page is the first page, falling back to
// navigation.initialPageId.
func (m *Model) ImportSchema(raw []byte) (Imported, error) {
	if err := sniffJSON(raw); err != nil {
		return Imported{}, m.importFailed(err)
	}

	doc, format, err := schema.Parse(raw)
	if err != nil {
		return Imported{}, m.importFailed(classifyParseError(err))
	}
	if err := validation.ValidateDocument(raw); err != nil {
		return Imported{}, m.importFailed(&ImportError{Reason: ReasonInvalid, Cause: err})
	}
	if err := schema.CheckPageIDs(doc); err != nil {
		return Imported{}, m.importFailed(&ImportError{Reason: ReasonDuplicateIDs, Cause: err})
	}
	if err := schema.CheckComponentIDs(doc); err != nil {
		return Imported{}, m.importFailed(&ImportError{Reason: ReasonDuplicateIDs, Cause: err})
	}
	if len(doc.Pages) == 0 {
		doc.Pages = []schema.Page{schema.DefaultPage()}
	}

	initial := doc.Pages[0].ID
	if initial == "" {
		initial = doc.Navigation.InitialPageID
	}
	m.logger.Info("mutation.import.completed",
		"schema_id", doc.ID,
		"format", string(format),
		"pages", len(doc.Pages),
		"initial_page_id", initial,
	)
	return Imported{Schema: doc, InitialPageID: initial, Format: format}, nil
}

func (m *Model) importFailed(err *ImportError) error {
	m.logger.Warn("mutation.import.failed", "reason", err.Reason, "error", err.Cause)
	return err
}

// sniffJSON rejects binary payloads before any JSON decoding.
func sniffJSON(raw []byte) *ImportError {
	detected := mimetype.Detect(raw)
	for mt := detected; mt != nil; mt = mt.Parent() {
		if mt.Is("text/plain") {
			return nil
		}
	}
	return &ImportError{Reason: ReasonNotJSON, Cause: errors.New(detected.String())}
}

func classifyParseError(err error) *ImportError {
	switch {
	case errors.Is(err, schema.ErrMissingPages):
		return &ImportError{Reason: ReasonMissingPages, Cause: err}
	default:
		return &ImportError{Reason: ReasonMalformed, Cause: err}
	}
}

// ImportSchema applies Model.ImportSchema.
func ImportSchema(raw []byte) (Imported, error) {
	return defaultModel.ImportSchema(raw)
}
