package builder

// Builder applies setters to a value in order. After the first failing
// MaybeUse the remaining MaybeUse calls are skipped and Get reports the error.
func New[T any]() *Builder[T] {
	return &Builder[T]{
		Obj: new(T),
	}
}

// From starts from an existing value instead of the zero value.
func From[T any](v T) *Builder[T] {
	return &Builder[T]{
		Obj: &v,
	}
}

type Builder[T any] struct {
	Obj *T
	Err error
}

func (b *Builder[T]) Use(setter func(b *T)) *Builder[T] {
	setter(b.Obj)
	return b
}

func (b *Builder[T]) MaybeUse(setter func(b *T) error) *Builder[T] {
	if b.Err == nil {
		b.Err = setter(b.Obj)
	}
	return b
}

// If applies setter only when cond holds.
func (b *Builder[T]) If(cond bool, setter func(b *T)) *Builder[T] {
	if cond {
		setter(b.Obj)
	}
	return b
}

func (b *Builder[T]) Get() (*T, error) {
	return b.Obj, b.Err
}
