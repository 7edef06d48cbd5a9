package schema

import "errors"

var (
	ErrMalformedDocument    = errors.New("schema: malformed document")
	ErrMissingPages         = errors.New("schema: document has no pages array")
	ErrDuplicatePageID      = errors.New("schema: duplicate page id")
	ErrDuplicateComponentID = errors.New("schema: duplicate component id")
)
