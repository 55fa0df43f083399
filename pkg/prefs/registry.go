package prefs

import (
	"reflect"

	"github.com/nikmy/gameprefs/pkg/ecs"
	"github.com/nikmy/gameprefs/pkg/errors"
	"github.com/nikmy/gameprefs/pkg/logger"
)

// Registry is the per-App preferences state: the registered types, the
// document mirroring the backend, and the backend itself. It lives in the
// App's World as a resource and is created by the first Register or Plugin.
type Registry struct {
	entries map[TypeKey]*entry
	order   []TypeKey
	doc     *Document
	storage Storage
	log     logger.Logger
	loaded  bool
}

// entry captures T at registration time so the registry can work with an
// open set of types without reflection on the values.
type entry struct {
	key     TypeKey
	typ     reflect.Type
	assign  func(w *ecs.World, r *Registry)
	encode  func(w *ecs.World, f Format) (Value, error)
	mutated func(ctx *ecs.Context) bool
	apply   func(ctx *ecs.Context, f Format, v Value) error
}

func newRegistry(log logger.Logger) *Registry {
	return &Registry{
		entries: make(map[TypeKey]*entry),
		doc:     NewDocument(),
		storage: memoryOnly{},
		log:     log,
	}
}

// RegistryOf returns the registry of the App owning w, if any.
func RegistryOf(w *ecs.World) (*Registry, bool) {
	return ecs.GetResource[Registry](w)
}

// registryFor returns the App's registry, creating it and its sync systems
// on first use.
func registryFor(app *ecs.App) *Registry {
	if reg, ok := RegistryOf(app.World()); ok {
		return reg
	}

	reg := ecs.InsertResource(app.World(), newRegistry(app.Logger().With("prefs")))
	addSyncSystems(app)

	if app.Started() {
		reg.load(app.World())
	}
	return reg
}

// useStorage swaps the backend. Only allowed before the document was loaded.
func (r *Registry) useStorage(s Storage) {
	if r.loaded {
		r.log.Warnf("preferences already loaded from %s, ignoring storage %s", r.storage.Location(), s.Location())
		return
	}
	r.storage = s
}

// Storage is the backend in use.
func (r *Registry) Storage() Storage { return r.storage }

// Format is the storage's format, used for every value tree.
func (r *Registry) Format() Format { return r.storage.Format() }

// Persistent is false when nothing is ever written anywhere.
func (r *Registry) Persistent() bool { return !isMemoryOnly(r.storage) }

// Loaded reports whether the Load step already ran.
func (r *Registry) Loaded() bool { return r.loaded }

// Keys lists registered types in registration order.
func (r *Registry) Keys() []TypeKey {
	out := make([]TypeKey, len(r.order))
	copy(out, r.order)
	return out
}

// IsRegistered reports whether a type is registered under key.
func (r *Registry) IsRegistered(key TypeKey) bool {
	_, ok := r.entries[key]
	return ok
}

// Document returns a copy of the cached document.
func (r *Registry) Document() *Document {
	return r.doc.Clone()
}

// EncodeDocument renders the cached document in the storage's format.
func (r *Registry) EncodeDocument() ([]byte, error) {
	return EncodeDocument(r.Format(), r.doc)
}

func (r *Registry) add(app *ecs.App, e *entry) error {
	if existing, ok := r.entries[e.key]; ok {
		err := &RegistrationError{Key: e.key, Existing: existing.typ, Duplicate: e.typ}
		r.log.Warn(err)
		return err
	}

	r.entries[e.key] = e
	r.order = append(r.order, e.key)
	r.log.Debugf("registered preferences %q (%s)", e.key, e.typ)

	if r.loaded {
		e.assign(app.World(), r)
	}
	return nil
}

// LoadFromBackend replaces the cached document with the stored one. On
// failure the cache becomes empty and the error is returned.
func (r *Registry) LoadFromBackend() error {
	doc, err := r.storage.Read()
	if err != nil {
		r.doc = NewDocument()
		return err
	}
	r.doc = doc
	if r.Persistent() {
		r.log.Infof("loaded %d preferences entries from %s", doc.Len(), r.storage.Location())
	}
	return nil
}

// SaveToBackend writes the cached document.
func (r *Registry) SaveToBackend() error {
	if err := r.storage.Write(r.doc); err != nil {
		return err
	}
	if r.Persistent() {
		r.log.Debugf("saved preferences to %s", r.storage.Location())
	}
	return nil
}

// SerializeAll encodes every registered resource into the cached document and
// returns a copy of it. A type that fails to encode keeps its previous entry.
// Entries of types not registered in this run are left alone.
func (r *Registry) SerializeAll(w *ecs.World) *Document {
	r.encodeInto(w, r.doc)
	return r.doc.Clone()
}

// Snapshot is SerializeAll without touching the cached document: it shows
// what the next save would write.
func (r *Registry) Snapshot(w *ecs.World) *Document {
	doc := r.doc.Clone()
	r.encodeInto(w, doc)
	return doc
}

func (r *Registry) encodeInto(w *ecs.World, doc *Document) {
	f := r.Format()
	for _, key := range r.order {
		v, err := r.entries[key].encode(w, f)
		if err != nil {
			r.log.Error(&EncodeError{Key: key, Err: err})
			continue
		}
		doc.Set(key, v)
	}
}

// Apply decodes v onto the live value of key, as if a system had written it.
// Fields missing from v keep their current values.
func (r *Registry) Apply(ctx *ecs.Context, key TypeKey, v Value) error {
	e, ok := r.entries[key]
	if !ok {
		return errors.Errorf("preferences %q are not registered", key)
	}
	if err := e.apply(ctx, r.Format(), v); err != nil {
		return &DecodeError{Key: key, Err: err}
	}
	return nil
}

func (r *Registry) anyMutated(ctx *ecs.Context) bool {
	for _, key := range r.order {
		if r.entries[key].mutated(ctx) {
			return true
		}
	}
	return false
}

// load is the body of the Load step.
func (r *Registry) load(w *ecs.World) {
	if err := r.LoadFromBackend(); err != nil {
		r.log.Error(errors.WrapFail(err, "load preferences, starting with defaults"))
	}
	r.loaded = true

	for _, key := range r.order {
		r.entries[key].assign(w, r)
	}
}

// save is the body of the Save step.
func (r *Registry) save(w *ecs.World) {
	r.SerializeAll(w)
	if err := r.SaveToBackend(); err != nil {
		r.log.Error(err)
	}
}

// initialValue decodes the stored entry for key onto a fresh default.
func initialValue[T any](r *Registry, key TypeKey, def func() T) T {
	stored, ok := r.doc.Get(key)
	if !ok {
		return def()
	}

	v, err := decodeStored(r.Format(), stored, def())
	if err != nil {
		r.log.Warn(&DecodeError{Key: key, Err: err})
		return def()
	}
	return v
}

func newEntry[T any](key TypeKey, def func() T) *entry {
	return &entry{
		key: key,
		typ: typeOf[T](),
		assign: func(w *ecs.World, r *Registry) {
			ecs.InsertResource(w, &Resource[T]{Value: initialValue(r, key, def)})
		},
		encode: func(w *ecs.World, f Format) (Value, error) {
			res, ok := ecs.GetResource[Resource[T]](w)
			if !ok {
				return nil, errors.Errorf("resource for %q is missing", key)
			}
			return encodeValue(f, res.Value)
		},
		mutated: func(ctx *ecs.Context) bool {
			res, ok := ecs.Res[Resource[T]](ctx)
			return ok && res.IsMutated()
		},
		apply: func(ctx *ecs.Context, f Format, v Value) error {
			res, ok := ecs.ResMut[Resource[T]](ctx)
			if !ok {
				return errors.Errorf("resource for %q is missing", key)
			}
			next, err := decodeValue(f, v, res.Get().Value)
			if err != nil {
				return err
			}
			res.GetMut().Value = next
			return nil
		},
	}
}

// Register makes T a preferences type of app. The Resource[T] holds the
// stored value when one exists and decodes, otherwise T's default (its
// Default method when it implements Defaulter[T], else the zero value).
//
// Registering a key twice keeps the first registration; the returned
// *RegistrationError is also logged and may be ignored.
func Register[T any](app *ecs.App) error {
	return registryFor(app).add(app, newEntry[T](TypeKeyOf[T](), defaultOf[T]))
}

// RegisterWithDefault is Register with an explicit default value.
func RegisterWithDefault[T any](app *ecs.App, value T) error {
	def := func() T { return value }
	return registryFor(app).add(app, newEntry[T](TypeKeyOf[T](), def))
}

// IsRegistered reports whether T was registered in app.
func IsRegistered[T any](app *ecs.App) bool {
	reg, ok := RegistryOf(app.World())
	return ok && reg.IsRegistered(TypeKeyOf[T]())
}
