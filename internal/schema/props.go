package schema

import (
	"encoding/json"
	"math"
)

// Props is the typed view of a component's props bag. Each variant keeps the
// members it does not model in Extra, and Encode returns the full bag.
type Props interface {
	ComponentType() string
	Encode() map[string]any
}

// TextProps backs text components.
type TextProps struct {
	Text  *string
	Style map[string]any
	Extra map[string]any
}

// HeadingProps backs heading components.
type HeadingProps struct {
	Text  *string
	Style map[string]any
	Extra map[string]any
}

// ButtonProps backs button components.
type ButtonProps struct {
	Title   *string
	Variant *string
	Style   map[string]any
	Extra   map[string]any
}

// TextInputProps backs single line inputs.
type TextInputProps struct {
	Label          *string
	Placeholder    *string
	KeyboardType   *string
	AutoCapitalize *string
	Style          map[string]any
	Extra          map[string]any
}

// TextareaProps backs multi line inputs.
type TextareaProps struct {
	Label          *string
	Placeholder    *string
	Rows           *int
	AutoCapitalize *string
	Style          map[string]any
	Extra          map[string]any
}

// DatePickerProps backs date inputs.
type DatePickerProps struct {
	Label       *string
	Placeholder *string
	Style       map[string]any
	Extra       map[string]any
}

// ImageProps backs image components.
type ImageProps struct {
	Source *string
	Style  map[string]any
	Extra  map[string]any
}

// SpacerProps backs spacer components.
type SpacerProps struct {
	Size  *float64
	Style map[string]any
	Extra map[string]any
}

// OpaqueProps carries the bag of a type the renderer does not know.
type OpaqueProps struct {
	Type   string
	Values map[string]any
}

func (TextProps) ComponentType() string       { return TypeText }
func (HeadingProps) ComponentType() string    { return TypeHeading }
func (ButtonProps) ComponentType() string     { return TypeButton }
func (TextInputProps) ComponentType() string  { return TypeTextInput }
func (TextareaProps) ComponentType() string   { return TypeTextarea }
func (DatePickerProps) ComponentType() string { return TypeDatePicker }
func (ImageProps) ComponentType() string      { return TypeImage }
func (SpacerProps) ComponentType() string     { return TypeSpacer }
func (p OpaqueProps) ComponentType() string   { return p.Type }

// DecodeProps returns the typed variant for c.Type. Members whose value does
// not have the modelled JSON type stay in Extra untouched.
func DecodeProps(c Component) Props {
	bag := CloneProps(c.Props)
	switch c.Type {
	case TypeText:
		return TextProps{Text: takeString(bag, "text"), Style: takeStyle(bag), Extra: bag}
	case TypeHeading:
		return HeadingProps{Text: takeString(bag, "text"), Style: takeStyle(bag), Extra: bag}
	case TypeButton:
		return ButtonProps{
			Title:   takeString(bag, "title"),
			Variant: takeString(bag, "variant"),
			Style:   takeStyle(bag),
			Extra:   bag,
		}
	case TypeTextInput:
		return TextInputProps{
			Label:          takeString(bag, "label"),
			Placeholder:    takeString(bag, "placeholder"),
			KeyboardType:   takeString(bag, "keyboardType"),
			AutoCapitalize: takeString(bag, "autoCapitalize"),
			Style:          takeStyle(bag),
			Extra:          bag,
		}
	case TypeTextarea:
		return TextareaProps{
			Label:          takeString(bag, "label"),
			Placeholder:    takeString(bag, "placeholder"),
			Rows:           takeInt(bag, "rows"),
			AutoCapitalize: takeString(bag, "autoCapitalize"),
			Style:          takeStyle(bag),
			Extra:          bag,
		}
	case TypeDatePicker:
		return DatePickerProps{
			Label:       takeString(bag, "label"),
			Placeholder: takeString(bag, "placeholder"),
			Style:       takeStyle(bag),
			Extra:       bag,
		}
	case TypeImage:
		return ImageProps{Source: takeString(bag, "source"), Style: takeStyle(bag), Extra: bag}
	case TypeSpacer:
		return SpacerProps{Size: takeFloat(bag, "size"), Style: takeStyle(bag), Extra: bag}
	default:
		return OpaqueProps{Type: c.Type, Values: bag}
	}
}

func (p TextProps) Encode() map[string]any {
	out := CloneProps(p.Extra)
	putString(out, "text", p.Text)
	putStyle(out, p.Style)
	return out
}

func (p HeadingProps) Encode() map[string]any {
	out := CloneProps(p.Extra)
	putString(out, "text", p.Text)
	putStyle(out, p.Style)
	return out
}

func (p ButtonProps) Encode() map[string]any {
	out := CloneProps(p.Extra)
	putString(out, "title", p.Title)
	putString(out, "variant", p.Variant)
	putStyle(out, p.Style)
	return out
}

func (p TextInputProps) Encode() map[string]any {
	out := CloneProps(p.Extra)
	putString(out, "label", p.Label)
	putString(out, "placeholder", p.Placeholder)
	putString(out, "keyboardType", p.KeyboardType)
	putString(out, "autoCapitalize", p.AutoCapitalize)
	putStyle(out, p.Style)
	return out
}

func (p TextareaProps) Encode() map[string]any {
	out := CloneProps(p.Extra)
	putString(out, "label", p.Label)
	putString(out, "placeholder", p.Placeholder)
	if p.Rows != nil {
		out["rows"] = *p.Rows
	}
	putString(out, "autoCapitalize", p.AutoCapitalize)
	putStyle(out, p.Style)
	return out
}

func (p DatePickerProps) Encode() map[string]any {
	out := CloneProps(p.Extra)
	putString(out, "label", p.Label)
	putString(out, "placeholder", p.Placeholder)
	putStyle(out, p.Style)
	return out
}

func (p ImageProps) Encode() map[string]any {
	out := CloneProps(p.Extra)
	putString(out, "source", p.Source)
	putStyle(out, p.Style)
	return out
}

func (p SpacerProps) Encode() map[string]any {
	out := CloneProps(p.Extra)
	if p.Size != nil {
		out["size"] = *p.Size
	}
	putStyle(out, p.Style)
	return out
}

func (p OpaqueProps) Encode() map[string]any {
	return CloneProps(p.Values)
}

// WithProps returns a copy of c whose props bag is p.Encode().
func (c Component) WithProps(p Props) Component {
	out := c.Clone()
	out.Props = p.Encode()
	return out
}

func takeString(bag map[string]any, key string) *string {
	value, ok := bag[key].(string)
	if !ok {
		return nil
	}
	delete(bag, key)
	return &value
}

func takeStyle(bag map[string]any) map[string]any {
	style, ok := bag["style"].(map[string]any)
	if !ok {
		return nil
	}
	delete(bag, "style")
	return style
}

func takeFloat(bag map[string]any, key string) *float64 {
	value, ok := NumberValue(bag[key])
	if !ok {
		return nil
	}
	delete(bag, key)
	return &value
}

func takeInt(bag map[string]any, key string) *int {
	value, ok := NumberValue(bag[key])
	if !ok || value != math.Trunc(value) {
		return nil
	}
	delete(bag, key)
	n := int(value)
	return &n
}

func putString(out map[string]any, key string, value *string) {
	if value != nil {
		out[key] = *value
	}
}

func putStyle(out map[string]any, style map[string]any) {
	if style != nil {
		out["style"] = cloneMap(style)
	}
}

// NumberValue converts the numeric shapes found in decoded or constructed
// props into a float64.
func NumberValue(value any) (float64, bool) {
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
