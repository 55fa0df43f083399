package prefs

import (
	"github.com/nikmy/gameprefs/pkg/ecs"
	"github.com/nikmy/gameprefs/pkg/errors"
)

// StorageType selects the backend a Plugin builds.
type StorageType struct {
	kind    storageKind
	dir     string
	format  Format
	store   KeyValueStore
	storage Storage
}

type storageKind int

const (
	kindNone storageKind = iota
	kindDefault
	kindFile
	kindKeyValue
	kindCustom
)

// NoStorage keeps preferences in memory only.
func NoStorage() StorageType { return StorageType{kind: kindNone} }

// DefaultStorage is the platform default: a TOML file under the user's
// preference directory on native targets, browser local storage on js/wasm.
func DefaultStorage() StorageType { return StorageType{kind: kindDefault} }

// FileSystemWithParentDirectory stores {dir}/{app}/preferences.toml.
func FileSystemWithParentDirectory(dir string) StorageType {
	return StorageType{kind: kindFile, dir: dir, format: TOML}
}

// FileSystemWithFormat uses the preference directory with another format.
func FileSystemWithFormat(format Format) StorageType {
	return StorageType{kind: kindFile, format: format}
}

func FileSystemWithParentDirectoryAndFormat(dir string, format Format) StorageType {
	return StorageType{kind: kindFile, dir: dir, format: format}
}

// KeyValue stores the whole document as JSON under {app}_preferences.
func KeyValue(store KeyValueStore) StorageType {
	return StorageType{kind: kindKeyValue, store: store}
}

// Custom uses storage as is. The app name is ignored.
func Custom(storage Storage) StorageType {
	return StorageType{kind: kindCustom, storage: storage}
}

func (s StorageType) String() string {
	switch s.kind {
	case kindNone:
		return "none"
	case kindDefault:
		return "default"
	case kindFile:
		return "file"
	case kindKeyValue:
		return "key-value"
	case kindCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// Plugin enables persistence for the App it is added to. Without it the
// registry works in memory only.
type Plugin struct {
	appName     string
	orgName     string
	storageType StorageType
}

// PersistedWithAppName persists to the platform default storage for name.
func PersistedWithAppName(name string) Plugin {
	return Plugin{appName: name, storageType: DefaultStorage()}
}

func (p Plugin) WithOrgName(org string) Plugin {
	p.orgName = org
	return p
}

func (p Plugin) WithStorageType(t StorageType) Plugin {
	p.storageType = t
	return p
}

func (p Plugin) WithoutStorage() Plugin {
	return p.WithStorageType(NoStorage())
}

// FullAppName is "{org}.{app}", or just the app name without an org.
func (p Plugin) FullAppName() string {
	if p.orgName == "" {
		return p.appName
	}
	return p.orgName + "." + p.appName
}

func (p Plugin) StorageType() StorageType { return p.storageType }

// ResolveStorage builds the storage the plugin would install.
func (p Plugin) ResolveStorage() (Storage, error) {
	t := p.storageType
	name := p.FullAppName()

	switch t.kind {
	case kindNone:
		return memoryOnly{}, nil
	case kindDefault:
		if name == "" {
			return nil, errors.Error("default storage needs an app name")
		}
		return platformDefaultStorage(name)
	case kindFile:
		format := t.format
		if format == nil {
			format = TOML
		}
		if t.dir == "" {
			if name == "" {
				return nil, errors.Error("file storage without a directory needs an app name")
			}
			dir, err := PreferenceDir()
			if err != nil {
				return nil, err
			}
			return NewFileStorage(preferencesPath(dir, name, format), format), nil
		}
		return NewFileStorage(preferencesPath(t.dir, name, format), format), nil
	case kindKeyValue:
		if t.store == nil {
			return nil, errors.Error("key-value storage without a store")
		}
		if name == "" {
			return nil, errors.Error("key-value storage needs an app name")
		}
		return NewKeyValueStorage(t.store, storageKey(name)), nil
	case kindCustom:
		if t.storage == nil {
			return nil, errors.Error("custom storage is nil")
		}
		return t.storage, nil
	default:
		return nil, errors.Errorf("unknown storage type %d", t.kind)
	}
}

// Build implements ecs.Plugin. A storage that can't be resolved leaves the
// registry in memory.
func (p Plugin) Build(app *ecs.App) {
	reg := registryFor(app)
	if app.Started() {
		app.Logger().Warnf("preferences plugin added after startup, storage %s ignored", p.storageType)
		return
	}

	storage, err := p.ResolveStorage()
	if err != nil {
		reg.log.Error(errors.WrapFail(err, "resolve preferences storage, keeping them in memory"))
		return
	}
	reg.useStorage(storage)
	reg.log.Infof("preferences of %q stored in %s", p.FullAppName(), storage.Location())
}

func storageKey(app string) string {
	return app + "_preferences"
}
