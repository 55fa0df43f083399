//go:build js && wasm

package prefs

import (
	"path"

	"github.com/nikmy/gameprefs/pkg/errors"
)

// LocalStorage persists to window.localStorage.
func LocalStorage() StorageType { return KeyValue(BrowserLocalStorage()) }

// SessionStorage persists to window.sessionStorage, cleared with the tab.
func SessionStorage() StorageType { return KeyValue(BrowserSessionStorage()) }

func PreferenceDir() (string, error) {
	return "", errors.Error("no preference directory in the browser")
}

func preferencesPath(dir, app string, format Format) string {
	return path.Join(dir, app, "preferences."+format.Extension())
}

func platformDefaultStorage(app string) (Storage, error) {
	return NewKeyValueStorage(BrowserLocalStorage(), storageKey(app)), nil
}
