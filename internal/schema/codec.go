package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

// keySet records which known keys were present in a decoded document so that
// zero values read from the wire are written back, and zero values that were
// never there are not invented.
type keySet map[string]struct{}

func (k keySet) has(key string) bool {
	_, ok := k[key]
	return ok
}

// object is a JSON object whose members are consumed as known fields are read.
// Whatever remains becomes the Extra bag of the owning value.
type object struct {
	members map[string]json.RawMessage
	seen    keySet
}

func decodeObject(data []byte) (*object, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: expected JSON object", ErrMalformedDocument)
	}
	members := map[string]json.RawMessage{}
	if err := json.Unmarshal(trimmed, &members); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	return &object{members: members, seen: keySet{}}, nil
}

// take decodes key into dst. A value with an unexpected shape stays in the
// remainder and is written back verbatim.
func (o *object) take(key string, dst any) bool {
	raw, ok := o.members[key]
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false
	}
	delete(o.members, key)
	o.seen[key] = struct{}{}
	return true
}

// takeOptional is take for members where null carries no meaning of its own;
// a null stays in the remainder.
func (o *object) takeOptional(key string, dst any) bool {
	if raw, ok := o.members[key]; ok && string(bytes.TrimSpace(raw)) == "null" {
		return false
	}
	return o.take(key, dst)
}

// takeRaw removes key and returns its compacted value.
func (o *object) takeRaw(key string) (json.RawMessage, bool) {
	raw, ok := o.members[key]
	if !ok {
		return nil, false
	}
	delete(o.members, key)
	o.seen[key] = struct{}{}
	return compact(raw), true
}

func (o *object) rest() map[string]json.RawMessage {
	if len(o.members) == 0 {
		return nil
	}
	out := make(map[string]json.RawMessage, len(o.members))
	for key, raw := range o.members {
		out[key] = compact(raw)
	}
	return out
}

func compact(raw json.RawMessage) json.RawMessage {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return bytes.Clone(raw)
	}
	return buf.Bytes()
}

// fieldWriter emits a JSON object with known members first, in call order,
// followed by the remainder sorted by key.
type fieldWriter struct {
	buf     bytes.Buffer
	written keySet
	err     error
}

func newFieldWriter() *fieldWriter {
	w := &fieldWriter{written: keySet{}}
	w.buf.WriteByte('{')
	return w
}

func (w *fieldWriter) field(key string, value any) {
	if w.err != nil {
		return
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		w.err = fmt.Errorf("schema: encode %q: %w", key, err)
		return
	}
	w.raw(key, encoded)
}

// fieldIf writes value when the key was read from the wire or the value is
// set locally.
func (w *fieldWriter) fieldIf(key string, value any, present keySet, set bool) {
	if set || present.has(key) {
		w.field(key, value)
	}
}

func (w *fieldWriter) raw(key string, value json.RawMessage) {
	if w.err != nil || w.written.has(key) {
		return
	}
	if len(w.written) > 0 {
		w.buf.WriteByte(',')
	}
	name, _ := json.Marshal(key)
	w.buf.Write(name)
	w.buf.WriteByte(':')
	w.buf.Write(value)
	w.written[key] = struct{}{}
}

func (w *fieldWriter) extras(extra map[string]json.RawMessage) {
	keys := make([]string, 0, len(extra))
	for key := range extra {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		w.raw(key, extra[key])
	}
}

func (w *fieldWriter) bytes() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	w.buf.WriteByte('}')
	return w.buf.Bytes(), nil
}
