package render

import (
	"encoding/json"
	"testing"

	"github.com/goliatone/go-sdui/internal/actions"
	"github.com/goliatone/go-sdui/internal/schema"
	"github.com/goliatone/go-sdui/internal/themes"
)

type warnRecorder struct {
	noopLogger
	warnings []string
}

func component(t *testing.T, raw string) schema.Component {
	t.Helper()
	var c schema.Component
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		t.Fatalf("decode component: %v", err)
	}
	return c
}

func TestRenderTextAppliesDefaultsAndOverrides(t *testing.T) {
	c := component(t, `{"id":"t1","type":"text","props":{"text":"Hello","style":{"margin":4,"backgroundColor":"#EEE"}}}`)
	node := RenderComponent(c, Context{})

	if node.Kind != KindText || node.Text != "Hello" {
		t.Fatalf("unexpected node %+v", node)
	}
	if node.Style["fontSize"] != 16 || node.Style["lineHeight"] != 1.4 {
		t.Fatalf("expected text defaults, got %v", node.Style)
	}
	if node.Style["backgroundColor"] != "#EEE" {
		t.Fatalf("expected resolved style override, got %v", node.Style)
	}
	if node.Style["margin"] != json.Number("4") {
		t.Fatalf("expected numeric margin, got %v", node.Style["margin"])
	}
}

func TestRenderHeadingWithoutTextIsEmpty(t *testing.T) {
	node := RenderComponent(component(t, `{"id":"h","type":"heading"}`), Context{})
	if node.Kind != KindHeading || node.Text != "" {
		t.Fatalf("unexpected heading %+v", node)
	}
	if node.Style["fontSize"] != 24 || node.Style["fontWeight"] != "bold" || node.Style["margin"] != 0 {
		t.Fatalf("expected heading defaults, got %v", node.Style)
	}
}

func TestRenderButtonVariants(t *testing.T) {
	theme := themes.Theme{PrimaryColor: "#111111", SecondaryColor: "#222222"}
	cases := []struct {
		variant, background, border, text string
	}{
		{"primary", "#111111", "#111111", "#FFFFFF"},
		{"secondary", "#222222", "#222222", "#FFFFFF"},
		{"outline", "transparent", "#111111", "#111111"},
		{"fancy", "#111111", "#111111", "#FFFFFF"},
	}
	for _, tc := range cases {
		c := schema.Component{ID: "b", Type: schema.TypeButton, Props: map[string]any{"title": "Go", "variant": tc.variant}}
		node := RenderComponent(c, Context{Theme: theme})
		if node.Style["backgroundColor"] != tc.background || node.Style["borderColor"] != tc.border {
			t.Fatalf("%s: unexpected frame %v", tc.variant, node.Style)
		}
		if node.Style["borderRadius"] != 8 || node.Style["padding"] != "12px 16px" || node.Style["minHeight"] != 44 {
			t.Fatalf("%s: missing base style %v", tc.variant, node.Style)
		}
		label := node.Children[0]
		if label.Text != "Go" || label.Style["color"] != tc.text {
			t.Fatalf("%s: unexpected label %+v", tc.variant, label)
		}
	}
}

func TestRenderButtonDefaultsToBuiltInTheme(t *testing.T) {
	node := RenderComponent(schema.Component{ID: "b", Type: schema.TypeButton, Props: map[string]any{}}, Context{})
	if node.Style["backgroundColor"] != themes.DefaultPrimaryColor {
		t.Fatalf("expected default primary, got %v", node.Style["backgroundColor"])
	}
}

func TestRenderButtonDispatchesResolvedToken(t *testing.T) {
	var got []actions.Token
	c := component(t, `{"id":"b","type":"button","props":{"title":"Next"},"action":{"type":"@pushPage","params":{"pageId":"p2"}}}`)
	node := RenderComponent(c, Context{OnAction: func(token actions.Token) { got = append(got, token) }})

	if !node.Click() {
		t.Fatalf("expected click handler")
	}
	if len(got) != 1 || got[0] != "@pushPage:p2" {
		t.Fatalf("unexpected tokens %v", got)
	}
	if node.Action != "@pushPage:p2" {
		t.Fatalf("expected token on node, got %q", node.Action)
	}
}

func TestRenderButtonWithoutActionIsInert(t *testing.T) {
	called := false
	c := schema.Component{ID: "b", Type: schema.TypeButton, Props: map[string]any{"title": "Idle"}}
	node := RenderComponent(c, Context{OnAction: func(actions.Token) { called = true }})
	if node.Click() || called {
		t.Fatalf("expected inert button")
	}
}

func TestRenderInputsBindToComponentID(t *testing.T) {
	var changes [][2]string
	ctx := Context{
		FormData:         map[string]string{"email": "a@b.c"},
		OnFormDataChange: func(id, value string) { changes = append(changes, [2]string{id, value}) },
	}

	field := RenderComponent(component(t, `{"id":"email","type":"text-input","props":{"label":"Email","name":"ignored","keyboardType":"email-address"}}`), ctx)
	if field.Kind != KindField || len(field.Children) != 2 {
		t.Fatalf("expected label and input, got %+v", field)
	}
	label, input := field.Children[0], field.Children[1]
	if label.Text != "Email" || label.Style["fontSize"] != 14 || label.Style["fontWeight"] != "600" {
		t.Fatalf("unexpected label %+v", label)
	}
	if input.Value != "a@b.c" || input.Attrs["type"] != "text" || input.Attrs["autocapitalize"] != "off" || input.Attrs["inputmode"] != "email" {
		t.Fatalf("unexpected input %+v", input)
	}
	input.Change("x@y.z")
	if len(changes) != 1 || changes[0] != [2]string{"email", "x@y.z"} {
		t.Fatalf("unexpected changes %v", changes)
	}

	area := RenderComponent(schema.Component{ID: "bio", Type: schema.TypeTextarea, Props: map[string]any{}}, ctx)
	if len(area.Children) != 1 {
		t.Fatalf("expected no label without text, got %d children", len(area.Children))
	}
	textarea := area.Children[0]
	if textarea.Kind != KindTextarea || textarea.Value != "" || textarea.Attrs["rows"] != "3" || textarea.Attrs["autocapitalize"] != "sentences" {
		t.Fatalf("unexpected textarea %+v", textarea)
	}

	rows := RenderComponent(component(t, `{"id":"bio","type":"textarea","props":{"rows":6}}`), ctx)
	if rows.Children[0].Attrs["rows"] != "6" {
		t.Fatalf("expected rows 6, got %v", rows.Children[0].Attrs)
	}

	date := RenderComponent(schema.Component{ID: "dob", Type: schema.TypeDatePicker, Props: map[string]any{"placeholder": "Select date"}}, ctx)
	if date.Children[0].Attrs["type"] != "date" || date.Children[0].Attrs["placeholder"] != "Select date" {
		t.Fatalf("unexpected date input %+v", date.Children[0])
	}
}

func TestRenderImageAndSpacer(t *testing.T) {
	img := RenderComponent(component(t, `{"id":"i","type":"image","props":{"source":"https://x/y.png","style":{"height":120}}}`), Context{})
	if img.Attrs["src"] != "https://x/y.png" || img.Style["objectFit"] != "cover" || img.Style["width"] != "100%" {
		t.Fatalf("unexpected image %+v", img)
	}
	if img.Style["height"] != json.Number("120") {
		t.Fatalf("expected height override, got %v", img.Style["height"])
	}

	spacer := RenderComponent(schema.Component{ID: "s", Type: schema.TypeSpacer, Props: map[string]any{}}, Context{})
	if spacer.Style["height"] != 16.0 || spacer.Text != "" || len(spacer.Children) != 0 {
		t.Fatalf("unexpected spacer %+v", spacer)
	}
	sized := RenderComponent(component(t, `{"id":"s","type":"spacer","props":{"size":40}}`), Context{})
	if sized.Style["height"] != 40.0 {
		t.Fatalf("expected size 40, got %v", sized.Style["height"])
	}
}

func TestRenderUnknownTypeIsVisiblePlaceholder(t *testing.T) {
	rec := &warnRecorder{}
	node := RenderComponent(schema.Component{ID: "x", Type: "carousel", Props: map[string]any{}}, Context{Logger: rec})
	if node.Kind != KindUnsupported || node.Text != "Unsupported component: carousel" {
		t.Fatalf("unexpected placeholder %+v", node)
	}
	if len(rec.warnings) != 1 {
		t.Fatalf("expected a warning, got %v", rec.warnings)
	}
}

func TestRenderComponentDoesNotMutateInput(t *testing.T) {
	c := component(t, `{"id":"b","type":"button","props":{"title":"Go","style":{"margin":{"top":2}}},"action":"@toast"}`)
	before, _ := json.Marshal(c)
	node := RenderComponent(c, Context{})
	node.Style["color"] = "changed"
	after, _ := json.Marshal(c)
	if string(before) != string(after) {
		t.Fatalf("component mutated:\n%s\n%s", before, after)
	}
}
