package mutation

import "github.com/goliatone/go-sdui/internal/schema"

// DefaultProps returns the starting props for a freshly inserted component.
// Unknown types start with an empty bag.
func DefaultProps(componentType string) map[string]any {
	switch componentType {
	case schema.TypeText:
		return map[string]any{"text": "Sample Text", "style": map[string]any{}}
	case schema.TypeHeading:
		return map[string]any{"text": "Sample Heading", "style": map[string]any{}}
	case schema.TypeButton:
		return map[string]any{"title": "Button", "variant": "primary"}
	case schema.TypeTextInput:
		return map[string]any{
			"label":          "Input Label",
			"placeholder":    "Enter text...",
			"keyboardType":   "default",
			"autoCapitalize": "words",
		}
	case schema.TypeTextarea:
		return map[string]any{
			"label":          "Textarea Label",
			"placeholder":    "Enter text...",
			"rows":           3,
			"autoCapitalize": "sentences",
		}
	case schema.TypeDatePicker:
		return map[string]any{"label": "Select Date", "placeholder": "Select date"}
	case schema.TypeImage:
		return map[string]any{"source": "https://via.placeholder.com/150"}
	case schema.TypeSpacer:
		return map[string]any{"size": 16}
	default:
		return map[string]any{}
	}
}
