package ecs

import (
	"reflect"
)

// Tick is a monotonically increasing change counter. Every system run gets
// its own tick, so "changed since my last run" is a plain comparison.
type Tick uint64

type cell struct {
	value   any
	added   Tick
	mutated Tick
}

// World owns the resources of one App.
type World struct {
	resources map[reflect.Type]*cell
	tick      Tick
}

func NewWorld() *World {
	return &World{resources: make(map[reflect.Type]*cell), tick: 1}
}

// Tick returns the tick of the currently running system, or the last one
// handed out when called between systems.
func (w *World) Tick() Tick {
	return w.tick
}

func (w *World) advance() Tick {
	w.tick++
	return w.tick
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// InsertResource stores value as the T resource, replacing any previous one.
// The resource counts as added at the current tick.
func InsertResource[T any](w *World, value *T) *T {
	if value == nil {
		value = new(T)
	}
	w.resources[typeOf[T]()] = &cell{value: value, added: w.tick}
	return value
}

// InitResource returns the T resource, inserting a zero value first if needed.
func InitResource[T any](w *World) *T {
	if v, ok := GetResource[T](w); ok {
		return v
	}
	return InsertResource[T](w, nil)
}

func GetResource[T any](w *World) (*T, bool) {
	c, ok := w.resources[typeOf[T]()]
	if !ok {
		return nil, false
	}
	return c.value.(*T), true
}

func HasResource[T any](w *World) bool {
	_, ok := w.resources[typeOf[T]()]
	return ok
}

func RemoveResource[T any](w *World) bool {
	t := typeOf[T]()
	_, ok := w.resources[t]
	delete(w.resources, t)
	return ok
}

func lookup[T any](w *World) (*cell, bool) {
	c, ok := w.resources[typeOf[T]()]
	return c, ok
}
