package mutation

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-sdui/internal/schema"
)

// Settings carries the document-level fields edited outside the canvas.
type Settings struct {
	ID          string
	Name        string
	Version     string
	Description string
	Slug        string
	IsPublic    bool
	Permissions []string
	Statuses    []string
}

// SettingsOf reads the editable settings of doc. Permissions and statuses
// that are not string arrays read as empty.
func SettingsOf(doc *schema.Schema) Settings {
	if doc == nil {
		return Settings{}
	}
	return Settings{
		ID:          doc.ID,
		Name:        doc.Name,
		Version:     doc.Version,
		Description: doc.Description,
		Slug:        doc.Slug,
		IsPublic:    doc.IsPublic,
		Permissions: stringList(doc.Permissions),
		Statuses:    stringList(doc.Statuses),
	}
}

// UpdateSettings writes settings onto a copy of doc. The slug is normalized;
// permission and status lists are trimmed with blanks and duplicates dropped.
// A list that reads the same as the stored one leaves the stored value
// untouched, so absent keys stay absent and non-string entries survive.
func (m *Model) UpdateSettings(doc *schema.Schema, settings Settings) (*schema.Schema, error) {
	next := doc.Clone()
	if next == nil {
		next = schema.Default(m.now())
	}
	id := strings.TrimSpace(settings.ID)
	if id == "" {
		return nil, fmt.Errorf("mutation: settings id is required")
	}

	slugValue := strings.TrimSpace(settings.Slug)
	if slugValue != "" {
		normalized, err := slug.Normalize(slugValue)
		if err != nil {
			return nil, fmt.Errorf("mutation: normalize slug %q: %w", slugValue, err)
		}
		slugValue = normalized
	}

	permissions, err := editedList(next.Permissions, settings.Permissions)
	if err != nil {
		return nil, err
	}
	statuses, err := editedList(next.Statuses, settings.Statuses)
	if err != nil {
		return nil, err
	}

	next.ID = id
	next.Name = settings.Name
	next.Version = settings.Version
	next.Description = settings.Description
	next.Slug = slugValue
	next.IsPublic = settings.IsPublic
	next.Permissions = permissions
	next.Statuses = statuses
	m.logger.Debug("mutation.settings.updated", "schema_id", id, "slug", slugValue)
	return next, nil
}

// UpdateSettings applies Model.UpdateSettings.
func UpdateSettings(doc *schema.Schema, settings Settings) (*schema.Schema, error) {
	return defaultModel.UpdateSettings(doc, settings)
}

func editedList(stored json.RawMessage, values []string) (json.RawMessage, error) {
	cleaned := uniqueStrings(values)
	if slices.Equal(cleaned, stringList(stored)) {
		return stored, nil
	}
	return json.Marshal(cleaned)
}

func uniqueStrings(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		if _, dup := seen[trimmed]; dup {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}

func stringList(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var values []string
	if err := json.Unmarshal(raw, &values); err != nil {
		return []string{}
	}
	return uniqueStrings(values)
}
