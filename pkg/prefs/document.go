package prefs

import (
	"bytes"
	"reflect"
	"sort"

	"github.com/nikmy/gameprefs/pkg/errors"
)

// Value is one preferences struct in format-native tree form: whatever the
// active Format yields when it decodes into `any` (maps, slices, scalars).
type Value = any

// Document is the unit written to and read from a Storage: one Value per
// TypeKey. Keys iterate in sorted order.
type Document struct {
	entries map[TypeKey]Value
}

func NewDocument() *Document {
	return &Document{entries: make(map[TypeKey]Value)}
}

func (d *Document) Get(key TypeKey) (Value, bool) {
	v, ok := d.entries[key]
	return v, ok
}

func (d *Document) Set(key TypeKey, v Value) {
	d.entries[key] = v
}

func (d *Document) Delete(key TypeKey) {
	delete(d.entries, key)
}

func (d *Document) Len() int {
	return len(d.entries)
}

func (d *Document) Keys() []TypeKey {
	keys := make([]TypeKey, 0, len(d.entries))
	for k := range d.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Clone copies the key set. Values are shared; they are replaced, never
// edited in place.
func (d *Document) Clone() *Document {
	c := &Document{entries: make(map[TypeKey]Value, len(d.entries))}
	for k, v := range d.entries {
		c.entries[k] = v
	}
	return c
}

// Equal compares two documents structurally.
func (d *Document) Equal(other *Document) bool {
	return reflect.DeepEqual(d.entries, other.entries)
}

// Map returns a plain map view, suitable for any marshaller.
func (d *Document) Map() map[string]any {
	m := make(map[string]any, len(d.entries))
	for k, v := range d.entries {
		m[string(k)] = v
	}
	return m
}

// EncodeDocument renders d with format f.
func EncodeDocument(f Format, d *Document) ([]byte, error) {
	data, err := f.Marshal(d.Map())
	if err != nil {
		return nil, errors.WrapFailf(err, "encode %s document", f.Name())
	}
	return data, nil
}

// DecodeDocument parses data written by EncodeDocument with the same format.
// Blank input is an empty document.
func DecodeDocument(f Format, data []byte) (*Document, error) {
	d := NewDocument()
	if len(bytes.TrimSpace(data)) == 0 {
		return d, nil
	}

	var m map[string]any
	if err := f.Unmarshal(data, &m); err != nil {
		return nil, errors.WrapFailf(err, "decode %s document", f.Name())
	}
	for k, v := range m {
		d.entries[TypeKey(k)] = v
	}
	return d, nil
}
