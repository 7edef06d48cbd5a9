package mutation

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// TextCodeImportInvalid tags import failures in categorized errors.
const TextCodeImportInvalid = "SDUI_IMPORT_INVALID"

// Import failure reasons.
const (
	ReasonNotJSON      = "not a JSON document"
	ReasonMalformed    = "malformed document"
	ReasonMissingPages = "document has no pages array"
	ReasonInvalid      = "document failed structural validation"
	ReasonDuplicateIDs = "duplicate page or component ids"
)

// ImportError reports a document that could not be imported. The previous
// document stays current when an import fails.
type ImportError struct {
	Reason string
	Cause  error
}

func (e *ImportError) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause == nil {
		return "import: " + e.Reason
	}
	return "import: " + e.Reason + ": " + e.Cause.Error()
}

func (e *ImportError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Categorized returns the failure as a bad-input go-errors value.
func (e *ImportError) Categorized() *goerrors.Error {
	return goerrors.Wrap(e, goerrors.CategoryBadInput, e.Reason).
		WithTextCode(TextCodeImportInvalid)
}

// IsImportError reports whether err carries an ImportError.
func IsImportError(err error) bool {
	var target *ImportError
	return errors.As(err, &target)
}
