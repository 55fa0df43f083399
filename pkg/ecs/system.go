package ecs

import (
	"github.com/nikmy/gameprefs/pkg/logger"
)

// System is one unit of scheduled work.
type System func(ctx *Context)

// Condition gates a System. It is evaluated with the system's own Context,
// so change queries inside it are relative to the system's previous evaluation.
type Condition func(ctx *Context) bool

// Context is what a running system sees.
type Context struct {
	World *World

	app     *App
	lastRun Tick
	thisRun Tick
}

// LastRun is the tick of the previous evaluation of this system (0 if never).
func (c *Context) LastRun() Tick { return c.lastRun }

// ThisRun is the tick assigned to the current run.
func (c *Context) ThisRun() Tick { return c.thisRun }

func (c *Context) Logger() logger.Logger { return c.app.log }

// Exit asks the App to stop after the current update.
func (c *Context) Exit() { c.app.Exit() }

// Ref is a read-only view of a resource with change information.
type Ref[T any] struct {
	value   *T
	cell    *cell
	lastRun Tick
}

func (r Ref[T]) Get() *T { return r.value }

// IsAdded reports whether the resource was (re)inserted since the last run.
func (r Ref[T]) IsAdded() bool { return r.cell.added > r.lastRun }

// IsMutated reports whether a system wrote the resource since the last run.
// Insertion alone does not count.
func (r Ref[T]) IsMutated() bool { return r.cell.mutated > r.lastRun }

// IsChanged is IsAdded or IsMutated.
func (r Ref[T]) IsChanged() bool { return r.IsAdded() || r.IsMutated() }

// Mut is a writable view of a resource. Only GetMut, Set and SetChanged mark
// the resource as mutated.
type Mut[T any] struct {
	Ref[T]
	thisRun Tick
}

func (m Mut[T]) GetMut() *T {
	m.cell.mutated = m.thisRun
	return m.value
}

func (m Mut[T]) Set(v T) {
	*m.GetMut() = v
}

func (m Mut[T]) SetChanged() {
	m.cell.mutated = m.thisRun
}

// BypassChangeDetection gives write access without marking the resource.
func (m Mut[T]) BypassChangeDetection() *T {
	return m.value
}

func Res[T any](ctx *Context) (Ref[T], bool) {
	c, ok := lookup[T](ctx.World)
	if !ok {
		return Ref[T]{}, false
	}
	return Ref[T]{value: c.value.(*T), cell: c, lastRun: ctx.lastRun}, true
}

func ResMut[T any](ctx *Context) (Mut[T], bool) {
	ref, ok := Res[T](ctx)
	if !ok {
		return Mut[T]{}, false
	}
	return Mut[T]{Ref: ref, thisRun: ctx.thisRun}, true
}

func ResourceExists[T any]() Condition {
	return func(ctx *Context) bool {
		return HasResource[T](ctx.World)
	}
}

func ResourceAdded[T any]() Condition {
	return func(ctx *Context) bool {
		r, ok := Res[T](ctx)
		return ok && r.IsAdded()
	}
}

func ResourceChanged[T any]() Condition {
	return func(ctx *Context) bool {
		r, ok := Res[T](ctx)
		return ok && r.IsChanged()
	}
}

func ResourceMutated[T any]() Condition {
	return func(ctx *Context) bool {
		r, ok := Res[T](ctx)
		return ok && r.IsMutated()
	}
}

func Not(cond Condition) Condition {
	return func(ctx *Context) bool { return !cond(ctx) }
}

func And(conds ...Condition) Condition {
	return func(ctx *Context) bool {
		for _, c := range conds {
			if !c(ctx) {
				return false
			}
		}
		return true
	}
}
