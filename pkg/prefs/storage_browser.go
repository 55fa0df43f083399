//go:build js && wasm

package prefs

import (
	"syscall/js"

	"github.com/nikmy/gameprefs/pkg/errors"
)

// browserStore wraps window.localStorage or window.sessionStorage.
type browserStore struct {
	name string
}

func BrowserLocalStorage() KeyValueStore   { return browserStore{name: "localStorage"} }
func BrowserSessionStorage() KeyValueStore { return browserStore{name: "sessionStorage"} }

func (b browserStore) String() string {
	switch b.name {
	case "sessionStorage":
		return "SessionStorage"
	default:
		return "LocalStorage"
	}
}

func (b browserStore) object() (js.Value, error) {
	v := js.Global().Get(b.name)
	if v.IsUndefined() || v.IsNull() {
		return js.Value{}, errors.Errorf("%s is not available", b.name)
	}
	return v, nil
}

// call turns a thrown DOMException (quota, security) into an error.
func (b browserStore) call(method string, args ...any) (res js.Value, err error) {
	obj, err := b.object()
	if err != nil {
		return js.Value{}, err
	}
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("%s.%s: %v", b.name, method, r)
		}
	}()
	return obj.Call(method, args...), nil
}

func (b browserStore) GetItem(key string) (string, bool, error) {
	v, err := b.call("getItem", key)
	if err != nil {
		return "", false, err
	}
	if v.IsNull() || v.IsUndefined() {
		return "", false, nil
	}
	return v.String(), true, nil
}

func (b browserStore) SetItem(key, value string) error {
	_, err := b.call("setItem", key, value)
	return err
}

func (b browserStore) RemoveItem(key string) error {
	_, err := b.call("removeItem", key)
	return err
}
