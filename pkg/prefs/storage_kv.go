package prefs

import (
	"fmt"
	"sync"

	"github.com/nikmy/gameprefs/pkg/errors"
)

// KeyValueStore is the browser-storage shaped boundary: string keys, string
// values, one call per operation.
type KeyValueStore interface {
	GetItem(key string) (value string, ok bool, err error)
	SetItem(key, value string) error
	RemoveItem(key string) error
}

// KeyValueStorage keeps the whole document as JSON under a single key.
type KeyValueStorage struct {
	store KeyValueStore
	key   string
}

func NewKeyValueStorage(store KeyValueStore, key string) *KeyValueStorage {
	return &KeyValueStorage{store: store, key: key}
}

func (s *KeyValueStorage) Key() string    { return s.key }
func (s *KeyValueStorage) Format() Format { return JSON }

func (s *KeyValueStorage) Location() string {
	if named, ok := s.store.(fmt.Stringer); ok {
		return named.String() + ":" + s.key
	}
	return s.key
}

func (s *KeyValueStorage) Read() (*Document, error) {
	raw, ok, err := s.store.GetItem(s.key)
	if err != nil {
		return nil, &StorageReadError{Location: s.Location(), Err: err}
	}
	if !ok {
		return NewDocument(), nil
	}

	doc, err := DecodeDocument(JSON, []byte(raw))
	if err != nil {
		return nil, &StorageReadError{Location: s.Location(), Err: err}
	}
	return doc, nil
}

func (s *KeyValueStorage) Write(doc *Document) error {
	data, err := EncodeDocument(JSON, doc)
	if err != nil {
		return &StorageWriteError{Location: s.Location(), Err: err}
	}
	if err := s.store.SetItem(s.key, string(data)); err != nil {
		return &StorageWriteError{Location: s.Location(), Err: err}
	}
	return nil
}

func (s *KeyValueStorage) Remove() error {
	return errors.WrapFailf(s.store.RemoveItem(s.key), "remove %s", s.Location())
}

// MemoryKeyValueStore is a KeyValueStore living in process memory. It stands
// in for browser storage outside js/wasm, and in tests.
type MemoryKeyValueStore struct {
	mu    sync.RWMutex
	items map[string]string
}

func NewMemoryKeyValueStore() *MemoryKeyValueStore {
	return &MemoryKeyValueStore{items: make(map[string]string)}
}

func (m *MemoryKeyValueStore) GetItem(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.items[key]
	return v, ok, nil
}

func (m *MemoryKeyValueStore) SetItem(key, value string) error {
	m.mu.Lock()
	m.items[key] = value
	m.mu.Unlock()
	return nil
}

func (m *MemoryKeyValueStore) RemoveItem(key string) error {
	m.mu.Lock()
	delete(m.items, key)
	m.mu.Unlock()
	return nil
}

func (m *MemoryKeyValueStore) String() string { return "MemoryStorage" }
