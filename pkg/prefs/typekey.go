package prefs

import (
	"reflect"
)

// TypeKey names a registered preferences type inside a Document. It must stay
// stable across releases, otherwise stored values are silently orphaned.
type TypeKey string

// Keyed lets a type pick its own TypeKey, e.g. to avoid a clash between two
// packages that both declare a type called Settings.
type Keyed interface {
	PreferencesKey() string
}

// Defaulter supplies the value used when nothing is stored for a type.
type Defaulter[T any] interface {
	Default() T
}

// TypeKeyOf returns the key T is stored under: PreferencesKey() when T
// implements Keyed, otherwise the short type name.
func TypeKeyOf[T any]() TypeKey {
	var zero T
	if k, ok := any(zero).(Keyed); ok {
		return TypeKey(k.PreferencesKey())
	}
	if k, ok := any(&zero).(Keyed); ok {
		return TypeKey(k.PreferencesKey())
	}

	t := typeOf[T]()
	if t.Name() != "" {
		return TypeKey(t.Name())
	}
	return TypeKey(t.String())
}

func defaultOf[T any]() T {
	var zero T
	if d, ok := any(zero).(Defaulter[T]); ok {
		return d.Default()
	}
	if d, ok := any(&zero).(Defaulter[T]); ok {
		return d.Default()
	}
	return zero
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
