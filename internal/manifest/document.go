package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Document is a JSON object that remembers the order of its keys.
type Document struct {
	keys   []string
	values map[string]json.RawMessage
}

// New returns an empty document.
func New() *Document {
	return &Document{values: make(map[string]json.RawMessage)}
}

// Keys returns the document keys in order.
func (d *Document) Keys() []string {
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

// Len returns the number of keys.
func (d *Document) Len() int { return len(d.keys) }

// Has reports whether key is present.
func (d *Document) Has(key string) bool {
	_, ok := d.values[key]
	return ok
}

// Raw returns the encoded value stored under key.
func (d *Document) Raw(key string) (json.RawMessage, bool) {
	v, ok := d.values[key]
	return v, ok
}

// Get decodes the value stored under key into v. A missing key leaves v untouched.
func (d *Document) Get(key string, v any) error {
	raw, ok := d.values[key]
	if !ok {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decoding %q: %w", key, err)
	}
	return nil
}

// Set encodes v under key. An existing key keeps its position; a new key is appended.
func (d *Document) Set(key string, v any) error {
	raw, err := encodeValue(v)
	if err != nil {
		return fmt.Errorf("encoding %q: %w", key, err)
	}
	d.setRaw(key, raw)
	return nil
}

// Delete removes key if present.
func (d *Document) Delete(key string) {
	if _, ok := d.values[key]; !ok {
		return
	}
	delete(d.values, key)
	for i, k := range d.keys {
		if k == key {
			d.keys = append(d.keys[:i], d.keys[i+1:]...)
			break
		}
	}
}

// Clone returns a deep copy.
func (d *Document) Clone() *Document {
	c := New()
	for _, k := range d.keys {
		raw := make(json.RawMessage, len(d.values[k]))
		copy(raw, d.values[k])
		c.setRaw(k, raw)
	}
	return c
}

// String returns the string stored under key, or "" when absent or not a string.
func (d *Document) String(key string) string {
	var s string
	if err := d.Get(key, &s); err != nil {
		return ""
	}
	return s
}

// Strings returns the string array stored under key. Non-string items are skipped.
func (d *Document) Strings(key string) []string {
	var items []any
	if err := d.Get(key, &items); err != nil || items == nil {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// StringMap returns the string-valued object stored under key.
func (d *Document) StringMap(key string) map[string]string {
	var m map[string]any
	if err := d.Get(key, &m); err != nil || m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}

// Bool returns the boolean stored under key and whether one was present.
func (d *Document) Bool(key string) (value, ok bool) {
	var b *bool
	if err := d.Get(key, &b); err != nil || b == nil {
		return false, false
	}
	return *b, true
}

// Author returns the author field collapsed to "name <email>". Structured
// authors without an email collapse to the bare name.
func (d *Document) Author() string {
	raw, ok := d.values["author"]
	if !ok {
		return ""
	}
	return PersonString(raw)
}

// PersonString collapses an npm person value (string or {name, email}) to a string.
func PersonString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var p struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := json.Unmarshal(raw, &p); err != nil || p.Name == "" {
		return ""
	}
	if p.Email == "" {
		return p.Name
	}
	return p.Name + " <" + p.Email + ">"
}

// MarshalJSON encodes the document compactly, in key order.
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range d.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := encodeValue(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(d.values[k])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object, recording key order. Repeated keys keep
// their first position and last value.
func (d *Document) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("manifest must be a JSON object")
	}

	d.keys = nil
	d.values = make(map[string]json.RawMessage)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected token %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("decoding %q: %w", key, err)
		}
		var compact bytes.Buffer
		if err := json.Compact(&compact, raw); err != nil {
			return fmt.Errorf("decoding %q: %w", key, err)
		}
		d.setRaw(key, compact.Bytes())
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// Indent encodes the document with the given number of spaces per level and
// a trailing newline.
func (d *Document) Indent(spaces int) ([]byte, error) {
	if spaces <= 0 {
		spaces = 2
	}
	compact, err := d.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", strings.Repeat(" ", spaces)); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func (d *Document) setRaw(key string, raw json.RawMessage) {
	if d.values == nil {
		d.values = make(map[string]json.RawMessage)
	}
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = raw
}

// encodeValue marshals v without HTML escaping, so "Name <email>" stays readable.
func encodeValue(v any) (json.RawMessage, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
