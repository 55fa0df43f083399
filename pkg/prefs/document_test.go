package prefs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDocument_Basics(t *testing.T) {
	d := NewDocument()
	d.Set("b", 2)
	d.Set("a", 1)
	d.Set("c", 3)
	d.Delete("c")

	require.Equal(t, 2, d.Len())
	require.Equal(t, []TypeKey{"a", "b"}, d.Keys())

	v, ok := d.Get("a")
	require.True(t, ok)
	require.Equal(t, 1, v)

	_, ok = d.Get("c")
	require.False(t, ok)
}

func TestDocument_CloneIsIndependent(t *testing.T) {
	d := NewDocument()
	d.Set("a", 1)

	c := d.Clone()
	c.Set("b", 2)

	require.Equal(t, 1, d.Len())
	require.Equal(t, 2, c.Len())
	require.False(t, d.Equal(c))

	c.Delete("b")
	require.True(t, d.Equal(c))
}

func TestDecodeDocument(t *testing.T) {
	tests := [...]struct {
		name    string
		format  Format
		input   string
		want    []TypeKey
		wantErr bool
	}{
		{name: "empty toml", format: TOML, input: "", want: []TypeKey{}},
		{name: "blank json", format: JSON, input: "  \n", want: []TypeKey{}},
		{name: "toml tables", format: TOML, input: "[A]\nx = 1\n[B]\ny = 'z'\n", want: []TypeKey{"A", "B"}},
		{name: "json object", format: JSON, input: `{"B": {"y": 1}, "A": 2}`, want: []TypeKey{"A", "B"}},
		{name: "yaml mapping", format: YAML, input: "A:\n  x: 1\n", want: []TypeKey{"A"}},
		{name: "broken toml", format: TOML, input: "[A\nx = ", wantErr: true},
		{name: "broken json", format: JSON, input: "{", wantErr: true},
		{name: "json array", format: JSON, input: "[1, 2]", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := DecodeDocument(tt.format, []byte(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, d.Keys())
		})
	}
}

func TestEncodeDocument_TOMLUsesTables(t *testing.T) {
	v, err := encodeValue(TOML, ExampleSettings{FieldU32: 5})
	require.NoError(t, err)

	d := NewDocument()
	d.Set(TypeKeyOf[ExampleSettings](), v)

	data, err := EncodeDocument(TOML, d)
	require.NoError(t, err)
	require.Contains(t, string(data), "[ExampleSettings]")
	require.Contains(t, string(data), "field_u32 = 5")

	back, err := DecodeDocument(TOML, data)
	require.NoError(t, err)
	require.True(t, d.Equal(back))
}
