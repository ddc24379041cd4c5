// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// CustomFieldsKey is the record key that holds attributes the portfolio
// schema does not define.
const CustomFieldsKey = "custom_fields"

// AppRecord is one application converted from a single data row. Built-in
// attributes keep the order in which they were first set; custom fields are
// serialized last under "custom_fields", and only when at least one exists.
//
// The zero value is an empty record ready for use.
type AppRecord struct {
	keys   []string
	values map[string]any

	customKeys []string
	custom     map[string]string
}

// Set stores a built-in attribute. Setting an existing attribute replaces its
// value but keeps its original position.
func (r *AppRecord) Set(attr string, value any) {
	if r.values == nil {
		r.values = make(map[string]any)
	}
	if _, ok := r.values[attr]; !ok {
		r.keys = append(r.keys, attr)
	}
	r.values[attr] = value
}

// SetCustom stores a custom field. Later values for the same name win.
func (r *AppRecord) SetCustom(name, value string) {
	if r.custom == nil {
		r.custom = make(map[string]string)
	}
	if _, ok := r.custom[name]; !ok {
		r.customKeys = append(r.customKeys, name)
	}
	r.custom[name] = value
}

// Get returns the value of a built-in attribute.
func (r AppRecord) Get(attr string) (any, bool) {
	v, ok := r.values[attr]
	return v, ok
}

// Attributes returns the built-in attribute names in insertion order.
func (r AppRecord) Attributes() []string {
	return append([]string(nil), r.keys...)
}

// CustomFields returns a copy of the custom fields, or nil when there are none.
func (r AppRecord) CustomFields() map[string]string {
	if len(r.custom) == 0 {
		return nil
	}
	out := make(map[string]string, len(r.custom))
	for k, v := range r.custom {
		out[k] = v
	}
	return out
}

// HasCustomFields reports whether the record carries a custom_fields object.
func (r AppRecord) HasCustomFields() bool {
	return len(r.custom) > 0
}

// IsEmpty reports whether no cell of the source row produced a value.
func (r AppRecord) IsEmpty() bool {
	return len(r.values) == 0 && len(r.custom) == 0
}

// MarshalJSON writes the record as a JSON object with built-in attributes in
// insertion order followed by custom_fields.
func (r AppRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeMember(&buf, k, r.values[k]); err != nil {
			return nil, err
		}
	}
	if len(r.custom) > 0 {
		if len(r.keys) > 0 {
			buf.WriteByte(',')
		}
		if err := writeKey(&buf, CustomFieldsKey); err != nil {
			return nil, err
		}
		buf.WriteByte('{')
		for i, k := range r.customKeys {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeMember(&buf, k, r.custom[k]); err != nil {
				return nil, err
			}
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// encode marshals v without HTML escaping so URLs and free text survive as
// written in the source sheet.
func encode(v any) ([]byte, error) {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(b.Bytes(), []byte("\n")), nil
}

func writeKey(buf *bytes.Buffer, key string) error {
	k, err := encode(key)
	if err != nil {
		return fmt.Errorf("encoding key %q: %w", key, err)
	}
	buf.Write(k)
	buf.WriteByte(':')
	return nil
}

func writeMember(buf *bytes.Buffer, key string, value any) error {
	if err := writeKey(buf, key); err != nil {
		return err
	}
	v, err := encode(value)
	if err != nil {
		return fmt.Errorf("encoding value of %q: %w", key, err)
	}
	buf.Write(v)
	return nil
}

// Document is the import payload accepted by the portfolio sync command.
type Document struct {
	// Apps holds one record per data row, in source order.
	Apps []AppRecord `json:"apps"`
}

// NewDocument returns a document whose apps list serializes as [] when empty.
func NewDocument() Document {
	return Document{Apps: []AppRecord{}}
}

// CustomFieldRows counts records that carry custom fields.
func (d Document) CustomFieldRows() int {
	n := 0
	for _, a := range d.Apps {
		if a.HasCustomFields() {
			n++
		}
	}
	return n
}
