package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Format names the wire shape a document was read from.
type Format string

const (
	FormatFlattened Format = "flattened"
	FormatLegacy    Format = "legacy"
)

// Parse decodes a flattened document or a legacy {success, data} wrapper into
// the canonical Schema. Documents without a pages array are rejected with
// ErrMissingPages. A missing id falls back to the slug, then to
// DefaultSchemaID.
func Parse(data []byte) (*Schema, Format, error) {
	root, err := decodeObject(data)
	if err != nil {
		return nil, "", err
	}

	format := FormatFlattened
	body := data
	if inner, ok := legacyBody(root.members); ok {
		format = FormatLegacy
		body = inner
	} else if !isArray(root.members["pages"]) {
		return nil, "", ErrMissingPages
	}

	var doc Schema
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, "", err
	}
	if doc.ID == "" {
		doc.ID = doc.Slug
	}
	if doc.ID == "" {
		doc.ID = DefaultSchemaID
	}
	return &doc, format, nil
}

// legacyBody returns the data member of a wrapper whose success flag is true
// and whose data carries a pages array.
func legacyBody(members map[string]json.RawMessage) (json.RawMessage, bool) {
	if isArray(members["pages"]) {
		return nil, false
	}
	var success bool
	if raw, ok := members["success"]; !ok || json.Unmarshal(raw, &success) != nil || !success {
		return nil, false
	}
	data, ok := members["data"]
	if !ok {
		return nil, false
	}
	inner, err := decodeObject(data)
	if err != nil || !isArray(inner.members["pages"]) {
		return nil, false
	}
	return data, true
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

// Export writes the canonical flattened document, indented with two spaces.
func Export(s *Schema) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("schema: export nil document")
	}
	compacted, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compacted, "", "  "); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// Equal reports whether two documents serialize to the same JSON.
func Equal(a, b *Schema) bool {
	if a == nil || b == nil {
		return a == b
	}
	left, err := json.Marshal(a)
	if err != nil {
		return false
	}
	right, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return bytes.Equal(left, right)
}

// Fingerprint returns the compact canonical serialization used to derive
// cache keys.
func Fingerprint(s *Schema) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("schema: fingerprint nil document")
	}
	return json.Marshal(s)
}

// CheckPageIDs reports the first page id that appears more than once.
func CheckPageIDs(s *Schema) error {
	if s == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(s.Pages))
	for _, page := range s.Pages {
		if _, dup := seen[page.ID]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicatePageID, page.ID)
		}
		seen[page.ID] = struct{}{}
	}
	return nil
}

// CheckComponentIDs reports the first component id used more than once
// anywhere in the document.
func CheckComponentIDs(s *Schema) error {
	if s == nil {
		return nil
	}
	seen := map[string]struct{}{}
	for _, page := range s.Pages {
		for _, comp := range page.Components {
			if _, dup := seen[comp.ID]; dup {
				return fmt.Errorf("%w: %q on page %q", ErrDuplicateComponentID, comp.ID, page.ID)
			}
			seen[comp.ID] = struct{}{}
		}
	}
	return nil
}
