package render

import (
	"strconv"

	"github.com/goliatone/go-sdui/internal/actions"
	"github.com/goliatone/go-sdui/internal/logging"
	"github.com/goliatone/go-sdui/internal/schema"
	"github.com/goliatone/go-sdui/internal/style"
	"github.com/goliatone/go-sdui/internal/themes"
	"github.com/goliatone/go-sdui/pkg/interfaces"
)

// Context carries the transient state and callbacks a component renders with.
type Context struct {
	// FormData maps input component ids to their current values.
	FormData         map[string]string
	OnFormDataChange func(componentID, value string)
	OnAction         func(actions.Token)
	Theme            themes.Theme
	Logger           interfaces.Logger
}

const (
	colorBlack  = "#000000"
	colorWhite  = "#FFFFFF"
	colorBorder = "#E0E0E0"
)

var (
	textDefaults = style.Style{
		"fontSize":   16,
		"fontWeight": "normal",
		"color":      colorBlack,
		"textAlign":  "left",
		"lineHeight": 1.4,
	}
	headingDefaults = style.Style{
		"fontSize":   24,
		"fontWeight": "bold",
		"color":      colorBlack,
		"textAlign":  "left",
		"lineHeight": 1.2,
		"margin":     0,
	}
	buttonBase = style.Style{
		"borderRadius":   8,
		"alignItems":     "center",
		"justifyContent": "center",
		"flexDirection":  "row",
		"padding":        "12px 16px",
		"minWidth":       44,
		"minHeight":      44,
		"borderWidth":    1,
		"borderStyle":    "solid",
		"cursor":         "pointer",
		"display":        "flex",
	}
	buttonLabelBase = style.Style{
		"fontWeight": "600",
		"textAlign":  "center",
		"fontSize":   16,
	}
	fieldContainer = style.Style{
		"marginBottom": 16,
		"width":        "100%",
	}
	fieldLabel = style.Style{
		"display":      "block",
		"marginBottom": 8,
		"fontSize":     14,
		"fontWeight":   "600",
		"color":        colorBlack,
	}
	inputBase = style.Style{
		"width":           "100%",
		"borderWidth":     1,
		"borderStyle":     "solid",
		"borderColor":     colorBorder,
		"borderRadius":    8,
		"padding":         12,
		"fontSize":        16,
		"backgroundColor": colorWhite,
		"outline":         "none",
	}
	imageDefaults = style.Style{
		"width":        "100%",
		"height":       200,
		"objectFit":    "cover",
		"borderRadius": 8,
		"margin":       0,
		"padding":      0,
	}
)

const (
	defaultTextareaRows = 3
	defaultSpacerSize   = 16.0
)

// RenderComponent dispatches on c.Type. Unknown types render a visible
// placeholder. The component is never modified.
func RenderComponent(c schema.Component, ctx Context) *Node {
	switch props := schema.DecodeProps(c).(type) {
	case schema.TextProps:
		return &Node{
			Kind:        KindText,
			ComponentID: c.ID,
			Text:        deref(props.Text),
			Style:       textDefaults.Merge(style.Resolve(props.Style)),
		}
	case schema.HeadingProps:
		return &Node{
			Kind:        KindHeading,
			ComponentID: c.ID,
			Text:        deref(props.Text),
			Style:       headingDefaults.Merge(style.Resolve(props.Style)),
		}
	case schema.ButtonProps:
		return renderButton(c, props, ctx)
	case schema.TextInputProps:
		input := inputNode(c, ctx, KindInput)
		input.Attrs["type"] = "text"
		input.Attrs["autocapitalize"] = orDefault(props.AutoCapitalize, "off")
		setAttr(input.Attrs, "placeholder", props.Placeholder)
		if mode := inputMode(deref(props.KeyboardType)); mode != "" {
			input.Attrs["inputmode"] = mode
		}
		return field(c, props.Label, input)
	case schema.TextareaProps:
		input := inputNode(c, ctx, KindTextarea)
		input.Style = input.Style.With("resize", "vertical")
		rows := defaultTextareaRows
		if props.Rows != nil {
			rows = *props.Rows
		}
		input.Attrs["rows"] = strconv.Itoa(rows)
		input.Attrs["autocapitalize"] = orDefault(props.AutoCapitalize, "sentences")
		setAttr(input.Attrs, "placeholder", props.Placeholder)
		return field(c, props.Label, input)
	case schema.DatePickerProps:
		input := inputNode(c, ctx, KindInput)
		input.Attrs["type"] = "date"
		setAttr(input.Attrs, "placeholder", props.Placeholder)
		return field(c, props.Label, input)
	case schema.ImageProps:
		return &Node{
			Kind:        KindImage,
			ComponentID: c.ID,
			Attrs:       map[string]string{"src": deref(props.Source), "alt": ""},
			Style:       imageDefaults.Merge(style.Resolve(props.Style)),
		}
	case schema.SpacerProps:
		size := defaultSpacerSize
		if props.Size != nil {
			size = *props.Size
		}
		return &Node{
			Kind:        KindSpacer,
			ComponentID: c.ID,
			Style:       style.Style{"width": "100%", "height": size},
		}
	default:
		logging.Ensure(ctx.Logger).Warn("render.component.unsupported", "component_id", c.ID, "type", c.Type)
		return &Node{
			Kind:        KindUnsupported,
			ComponentID: c.ID,
			Text:        "Unsupported component: " + c.Type,
		}
	}
}

func renderButton(c schema.Component, props schema.ButtonProps, ctx Context) *Node {
	primary := ctx.Theme.PrimaryColor
	if primary == "" {
		primary = themes.DefaultPrimaryColor
	}
	secondary := ctx.Theme.SecondaryColor
	if secondary == "" {
		secondary = themes.DefaultSecondaryColor
	}

	var frame, label style.Style
	switch deref(props.Variant) {
	case "secondary":
		frame = style.Style{"backgroundColor": secondary, "borderColor": secondary}
		label = style.Style{"color": colorWhite}
	case "outline":
		frame = style.Style{"backgroundColor": "transparent", "borderColor": primary}
		label = style.Style{"color": primary}
	default:
		frame = style.Style{"backgroundColor": primary, "borderColor": primary}
		label = style.Style{"color": colorWhite}
	}

	node := &Node{
		Kind:        KindButton,
		ComponentID: c.ID,
		Style:       buttonBase.Merge(frame).Merge(style.Resolve(props.Style)),
		Children: []*Node{{
			Kind:  KindButtonLabel,
			Text:  deref(props.Title),
			Style: buttonLabelBase.Merge(label),
		}},
	}

	token, ok := actions.Resolve(c.Action)
	if !ok {
		return node
	}
	node.Action = token
	if ctx.OnAction != nil {
		onAction := ctx.OnAction
		node.OnClick = func() { onAction(token) }
	}
	return node
}

func inputNode(c schema.Component, ctx Context, kind Kind) *Node {
	id := c.ID
	node := &Node{
		Kind:        kind,
		ComponentID: id,
		Value:       ctx.FormData[id],
		Style:       inputBase.Merge(nil),
		Attrs:       map[string]string{},
	}
	if ctx.OnFormDataChange != nil {
		onChange := ctx.OnFormDataChange
		node.OnChange = func(value string) { onChange(id, value) }
	}
	return node
}

func field(c schema.Component, label *string, input *Node) *Node {
	container := &Node{
		Kind:        KindField,
		ComponentID: c.ID,
		Style:       fieldContainer.Merge(nil),
	}
	if text := deref(label); text != "" {
		container.Children = append(container.Children, &Node{
			Kind:  KindLabel,
			Text:  text,
			Style: fieldLabel.Merge(nil),
		})
	}
	container.Children = append(container.Children, input)
	return container
}

// inputMode maps React Native keyboard types onto HTML inputmode values.
func inputMode(keyboardType string) string {
	switch keyboardType {
	case "email-address":
		return "email"
	case "numeric", "number-pad":
		return "numeric"
	case "decimal-pad":
		return "decimal"
	case "phone-pad":
		return "tel"
	case "url":
		return "url"
	default:
		return ""
	}
}

func setAttr(attrs map[string]string, key string, value *string) {
	if value != nil && *value != "" {
		attrs[key] = *value
	}
}

func orDefault(value *string, fallback string) string {
	if value == nil || *value == "" {
		return fallback
	}
	return *value
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
