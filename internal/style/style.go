// Package style flattens the declarative style objects found in component
// props into concrete style declarations.
package style

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Style is a flat set of style declarations keyed by camelCase property name.
type Style map[string]any

var sides = []struct{ key, suffix string }{
	{"top", "Top"},
	{"bottom", "Bottom"},
	{"left", "Left"},
	{"right", "Right"},
}

// passthrough properties are copied when truthy.
var passthrough = []string{
	"backgroundColor",
	"borderRadius",
	"width",
	"height",
	"flex",
	"alignItems",
	"justifyContent",
}

// Resolve flattens decl. margin and padding accept a number, applied as a
// single declaration, or a {top,bottom,left,right} object expanded into
// directional declarations for the sides present. Directional keys already in
// decl are kept, which makes Resolve idempotent.
func Resolve(decl map[string]any) Style {
	out := Style{}
	if decl == nil {
		return out
	}
	for _, box := range []string{"margin", "padding"} {
		resolveBox(out, box, decl)
	}
	for _, key := range passthrough {
		if value, ok := decl[key]; ok && truthy(value) {
			out[key] = value
		}
	}
	return out
}

func resolveBox(out Style, box string, decl map[string]any) {
	for _, side := range sides {
		if value, ok := decl[box+side.suffix]; ok && value != nil {
			out[box+side.suffix] = value
		}
	}

	value, ok := decl[box]
	if !ok {
		return
	}
	if isNumber(value) {
		out[box] = value
		return
	}
	edges, ok := value.(map[string]any)
	if !ok {
		return
	}
	for _, side := range sides {
		if v, ok := edges[side.key]; ok && v != nil {
			out[box+side.suffix] = v
		}
	}
}

// Merge overlays other on a copy of s.
func (s Style) Merge(other Style) Style {
	out := make(Style, len(s)+len(other))
	maps.Copy(out, s)
	maps.Copy(out, other)
	return out
}

// With returns a copy of s with key set to value.
func (s Style) With(key string, value any) Style {
	return s.Merge(Style{key: value})
}

// Keys returns the property names in sorted order.
func (s Style) Keys() []string {
	return slices.Sorted(maps.Keys(s))
}

// String returns the value for key formatted as text.
func (s Style) String(key string) string {
	value, ok := s[key]
	if !ok {
		return ""
	}
	return formatScalar(value)
}

// CSS renders s as an inline CSS declaration list with sorted properties.
// Numbers get a px unit unless the property is unitless.
func (s Style) CSS() string {
	if len(s) == 0 {
		return ""
	}
	var b strings.Builder
	for i, key := range s.Keys() {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(kebab(key))
		b.WriteString(": ")
		b.WriteString(cssValue(key, s[key]))
		b.WriteByte(';')
	}
	return b.String()
}

var unitless = map[string]bool{
	"flex":       true,
	"fontWeight": true,
	"lineHeight": true,
	"opacity":    true,
	"zIndex":     true,
}

func cssValue(key string, value any) string {
	if f, ok := number(value); ok && !unitless[key] {
		if f == 0 {
			return "0"
		}
		return formatFloat(f) + "px"
	}
	return formatScalar(value)
}

func kebab(name string) string {
	var b strings.Builder
	for _, r := range name {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte('-')
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func formatScalar(value any) string {
	if f, ok := number(value); ok {
		return formatFloat(f)
	}
	switch typed := value.(type) {
	case string:
		return typed
	case nil:
		return ""
	default:
		return fmt.Sprint(typed)
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func isNumber(value any) bool {
	_, ok := number(value)
	return ok
}

func number(value any) (float64, bool) {
	switch typed := value.(type) {
	case json.Number:
		f, err := typed.Float64()
		return f, err == nil
	case float64:
		return typed, true
	case float32:
		return float64(typed), true
	case int:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case int32:
		return float64(typed), true
	default:
		return 0, false
	}
}

func truthy(value any) bool {
	if f, ok := number(value); ok {
		return f != 0 && !math.IsNaN(f)
	}
	switch typed := value.(type) {
	case nil:
		return false
	case bool:
		return typed
	case string:
		return typed != ""
	default:
		return true
	}
}
