package schema

import (
	"bytes"
	"encoding/json"
	"strings"
)

// ActionKind identifies which of the three wire shapes an action was read from.
type ActionKind int

const (
	// ActionName is a plain string naming a zero-argument action ("@toast").
	ActionName ActionKind = iota
	// ActionObject is a structured {type, params} object.
	ActionObject
	// ActionEncoded is a string holding a serialized action object.
	ActionEncoded
)

func (k ActionKind) String() string {
	switch k {
	case ActionObject:
		return "object"
	case ActionEncoded:
		return "encoded"
	default:
		return "name"
	}
}

// Action is the value of a component's action field. It marshals back to the
// shape it was read from.
type Action struct {
	kind ActionKind
	text string
	body map[string]any
	raw  json.RawMessage
}

// NameAction builds a plain string action.
func NameAction(name string) *Action {
	return &Action{kind: ActionName, text: name}
}

// ObjectAction builds a structured action. Params may be nil.
func ObjectAction(actionType string, params map[string]any) *Action {
	body := map[string]any{"type": actionType}
	if params != nil {
		body["params"] = cloneMap(params)
	}
	return &Action{kind: ActionObject, body: body}
}

// ObjectActionFromBody builds a structured action from a full object,
// including top-level members other than type and params.
func ObjectActionFromBody(body map[string]any) *Action {
	return &Action{kind: ActionObject, body: cloneMap(body)}
}

// EncodedAction wraps a string that carries a serialized action object. When
// the text does not decode to an object with a string type it is treated as
// a plain name.
func EncodedAction(text string) *Action {
	if body, ok := decodeActionText(text); ok {
		return &Action{kind: ActionEncoded, text: text, body: body}
	}
	return NameAction(text)
}

// Kind reports the wire shape.
func (a *Action) Kind() ActionKind {
	if a == nil {
		return ActionName
	}
	return a.kind
}

// Text returns the raw string for name and encoded actions.
func (a *Action) Text() string {
	if a == nil {
		return ""
	}
	return a.text
}

// Type returns the action type. Name actions report their text.
func (a *Action) Type() string {
	if a == nil {
		return ""
	}
	if a.kind == ActionName {
		return a.text
	}
	value, _ := a.body["type"].(string)
	return value
}

// Params returns a copy of the params object, or nil.
func (a *Action) Params() map[string]any {
	if a == nil {
		return nil
	}
	params, _ := a.body["params"].(map[string]any)
	return cloneMap(params)
}

// Field returns a top-level member of an object or encoded action.
func (a *Action) Field(key string) (any, bool) {
	if a == nil || a.body == nil {
		return nil, false
	}
	value, ok := a.body[key]
	return value, ok
}

// Body returns a copy of the full action object, or nil for name actions.
func (a *Action) Body() map[string]any {
	if a == nil {
		return nil
	}
	return cloneMap(a.body)
}

// Clone returns a deep copy.
func (a *Action) Clone() *Action {
	if a == nil {
		return nil
	}
	return &Action{kind: a.kind, text: a.text, body: cloneMap(a.body), raw: cloneRaw(a.raw)}
}

// JSON returns the compact serialization of an object action, keeping the
// member order it was read with. Encoded actions return their decoded object
// compacted; name actions return the JSON string.
func (a *Action) JSON() string {
	if a == nil {
		return ""
	}
	switch a.kind {
	case ActionObject:
		if a.raw != nil {
			return string(a.raw)
		}
		encoded, err := marshalActionBody(a.body)
		if err != nil {
			return ""
		}
		return string(encoded)
	case ActionEncoded:
		return string(compact(json.RawMessage(strings.TrimSpace(a.text))))
	default:
		encoded, _ := json.Marshal(a.text)
		return string(encoded)
	}
}

func (a *Action) MarshalJSON() ([]byte, error) {
	if a == nil {
		return []byte("null"), nil
	}
	if a.kind == ActionObject {
		if a.raw != nil {
			return cloneRaw(a.raw), nil
		}
		return marshalActionBody(a.body)
	}
	return json.Marshal(a.text)
}

func (a *Action) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return err
		}
		*a = *EncodedAction(text)
		return nil
	}
	var body map[string]any
	if err := decodeGeneric(trimmed, &body); err != nil {
		return err
	}
	if body == nil {
		body = map[string]any{}
	}
	*a = Action{kind: ActionObject, body: body, raw: compact(trimmed)}
	return nil
}

// marshalActionBody writes type and params first, then the remaining members
// sorted by key.
func marshalActionBody(body map[string]any) ([]byte, error) {
	w := newFieldWriter()
	if value, ok := body["type"]; ok {
		w.field("type", value)
	}
	if value, ok := body["params"]; ok {
		w.field("params", value)
	}
	rest := make(map[string]json.RawMessage, len(body))
	for key, value := range body {
		if key == "type" || key == "params" {
			continue
		}
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		rest[key] = encoded
	}
	w.extras(rest)
	return w.bytes()
}

func decodeActionText(text string) (map[string]any, bool) {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "{") {
		return nil, false
	}
	var body map[string]any
	if err := decodeGeneric([]byte(trimmed), &body); err != nil || body == nil {
		return nil, false
	}
	if _, ok := body["type"].(string); !ok {
		return nil, false
	}
	return body, true
}
