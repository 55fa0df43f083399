package prefs

import (
	"github.com/nikmy/gameprefs/pkg/ecs"
)

// Resource is the ECS resource holding the live value of a preferences type.
type Resource[T any] struct {
	Value T
}

// Preferences is the typed accessor systems use. Reads through Get leave the
// resource clean; Mut, Set and Update mark it for the next save.
type Preferences[T any] struct {
	res ecs.Mut[Resource[T]]
}

// Param returns the accessor for T in the running system, false when T is not
// registered (or not loaded yet).
func Param[T any](ctx *ecs.Context) (Preferences[T], bool) {
	res, ok := ecs.ResMut[Resource[T]](ctx)
	if !ok {
		return Preferences[T]{}, false
	}
	return Preferences[T]{res: res}, true
}

func (p Preferences[T]) Key() TypeKey { return TypeKeyOf[T]() }

func (p Preferences[T]) Get() T {
	return p.res.Get().Value
}

// Ref points at the live value without marking it changed. Writing through it
// is not detected.
func (p Preferences[T]) Ref() *T {
	return &p.res.Get().Value
}

func (p Preferences[T]) Mut() *T {
	return &p.res.GetMut().Value
}

func (p Preferences[T]) Set(v T) {
	p.res.GetMut().Value = v
}

func (p Preferences[T]) Update(fn func(v *T)) {
	fn(p.Mut())
}

// IsChanged reports whether the value was loaded or written since this
// system's previous run.
func (p Preferences[T]) IsChanged() bool {
	return p.res.IsChanged()
}
