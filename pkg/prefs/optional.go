package prefs

import (
	"reflect"
	"strings"
)

// nilOmitter is implemented by formats that drop nil pointers instead of
// writing them. TagKey names the struct tag the format reads field names from.
type nilOmitter interface {
	TagKey() string
}

func (tomlFormat) TagKey() string { return "toml" }

// clearNils sets pointers in v to nil where tree holds an explicit nil. With
// absentIsNil, pointers whose key is missing from tree are cleared as well.
func clearNils(v reflect.Value, tree Value, tag string, absentIsNil bool) {
	switch v.Kind() {
	case reflect.Ptr:
		if tree == nil {
			v.Set(reflect.Zero(v.Type()))
			return
		}
		if !v.IsNil() {
			clearNils(v.Elem(), tree, tag, absentIsNil)
		}
	case reflect.Struct:
		if m, ok := tree.(map[string]any); ok {
			clearStructNils(v, m, tag, absentIsNil)
		}
	}
}

func clearStructNils(v reflect.Value, m map[string]any, tag string, absentIsNil bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		name := sf.Tag.Get(tag)
		if name == "-" {
			continue
		}
		if comma := strings.IndexByte(name, ','); comma >= 0 {
			name = name[:comma]
		}

		f := v.Field(i)
		if sf.Anonymous && name == "" {
			if f.Kind() == reflect.Struct {
				clearStructNils(f, m, tag, absentIsNil)
			}
			continue
		}
		if name == "" {
			name = sf.Name
		}

		sub, ok := lookupField(m, name)
		if !ok && !absentIsNil {
			continue
		}
		clearNils(f, sub, tag, absentIsNil)
	}
}

// lookupField matches keys the way decoders do: exact first, then ignoring case.
func lookupField(m map[string]any, name string) (Value, bool) {
	if v, ok := m[name]; ok {
		return v, true
	}
	for k, v := range m {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return nil, false
}
