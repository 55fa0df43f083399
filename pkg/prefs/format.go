package prefs

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a text encoding for documents. Implementations must round-trip
// numbers, strings, pointers (optionals), nested structs and types
// implementing encoding.TextMarshaler/TextUnmarshaler (enums).
type Format interface {
	Name() string
	// Extension is used for the preferences file name, without the dot.
	Extension() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

var (
	TOML Format = tomlFormat{}
	JSON Format = jsonFormat{}
	YAML Format = yamlFormat{}
)

// FormatByName resolves "toml", "json" and "yaml"/"yml".
func FormatByName(name string) (Format, bool) {
	switch strings.ToLower(name) {
	case "toml":
		return TOML, true
	case "json":
		return JSON, true
	case "yaml", "yml":
		return YAML, true
	default:
		return nil, false
	}
}

type tomlFormat struct{}

func (tomlFormat) Name() string      { return "toml" }
func (tomlFormat) Extension() string { return "toml" }

func (tomlFormat) Marshal(v any) ([]byte, error) {
	return toml.Marshal(v)
}

func (tomlFormat) Unmarshal(data []byte, v any) error {
	return toml.Unmarshal(data, v)
}

type jsonFormat struct{}

func (jsonFormat) Name() string      { return "json" }
func (jsonFormat) Extension() string { return "json" }

func (jsonFormat) Marshal(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// Unmarshal keeps numbers as json.Number so 64-bit integers survive a trip
// through an untyped tree.
func (jsonFormat) Unmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}

type yamlFormat struct{}

func (yamlFormat) Name() string      { return "yaml" }
func (yamlFormat) Extension() string { return "yaml" }

func (yamlFormat) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

func (yamlFormat) Unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}

// Values are wrapped in a one-key table before encoding so that scalars and
// lists work in formats whose documents must be tables (TOML).
const wrapKey = "value"

type wrapped[T any] struct {
	Value T `json:"value" toml:"value" yaml:"value"`
}

func encodeValue[T any](f Format, v T) (Value, error) {
	data, err := f.Marshal(wrapped[T]{Value: v})
	if err != nil {
		return nil, err
	}

	var tree map[string]any
	if err := f.Unmarshal(data, &tree); err != nil {
		return nil, err
	}
	return tree[wrapKey], nil
}

// decodeValue decodes tree onto base, so fields absent from tree keep the
// values base already has. An explicit nil clears a pointer field.
func decodeValue[T any](f Format, tree Value, base T) (T, error) {
	return decodeOnto(f, tree, base, false)
}

// decodeStored decodes a tree read back from storage. In formats that leave
// nil pointers out, a missing pointer field was nil when it was written.
func decodeStored[T any](f Format, tree Value, base T) (T, error) {
	return decodeOnto(f, tree, base, true)
}

func decodeOnto[T any](f Format, tree Value, base T, absentIsNil bool) (T, error) {
	data, err := f.Marshal(map[string]any{wrapKey: tree})
	if err != nil {
		return base, err
	}

	out := wrapped[T]{Value: base}
	if err := f.Unmarshal(data, &out); err != nil {
		return base, err
	}

	if o, ok := f.(nilOmitter); ok {
		clearNils(reflect.ValueOf(&out.Value).Elem(), tree, o.TagKey(), absentIsNil)
	}
	return out.Value, nil
}
