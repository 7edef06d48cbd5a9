package schema

import (
	"bytes"
	"encoding/json"
	"maps"
)

func cloneMap(input map[string]any) map[string]any {
	if input == nil {
		return nil
	}
	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = cloneValue(value)
	}
	return out
}

func cloneSlice(input []any) []any {
	if input == nil {
		return nil
	}
	out := make([]any, len(input))
	for i, value := range input {
		out[i] = cloneValue(value)
	}
	return out
}

func cloneValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return cloneMap(typed)
	case []any:
		return cloneSlice(typed)
	default:
		return value
	}
}

func cloneRaw(raw json.RawMessage) json.RawMessage {
	if raw == nil {
		return nil
	}
	return bytes.Clone(raw)
}

func cloneRawMap(input map[string]json.RawMessage) map[string]json.RawMessage {
	if input == nil {
		return nil
	}
	out := make(map[string]json.RawMessage, len(input))
	for key, value := range input {
		out[key] = cloneRaw(value)
	}
	return out
}

func cloneKeys(input keySet) keySet {
	if input == nil {
		return nil
	}
	return maps.Clone(input)
}

// decodeGeneric decodes arbitrary JSON keeping numbers as json.Number so
// values re-encode byte for byte.
func decodeGeneric(data []byte, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(dst)
}

// CloneProps deep copies a props bag. Nil input yields an empty bag.
func CloneProps(props map[string]any) map[string]any {
	if props == nil {
		return map[string]any{}
	}
	return cloneMap(props)
}
