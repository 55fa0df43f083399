package prefs

// Storage persists a whole Document. Exactly one is active per registry.
type Storage interface {
	// Read returns the stored document, or an empty one when nothing was
	// stored yet. Other failures are *StorageReadError.
	Read() (*Document, error)
	// Write replaces the stored document. Failures are *StorageWriteError.
	Write(doc *Document) error
	// Format is the encoding the document's values are kept in.
	Format() Format
	// Location describes where the data goes, for logs.
	Location() string
}

// Remover is implemented by storages that can delete what they stored.
type Remover interface {
	Remove() error
}

// memoryOnly keeps nothing: reads are empty and writes are dropped. It backs
// apps that never add the Plugin.
type memoryOnly struct{}

func (memoryOnly) Read() (*Document, error) { return NewDocument(), nil }
func (memoryOnly) Write(*Document) error    { return nil }
func (memoryOnly) Format() Format           { return JSON }
func (memoryOnly) Location() string         { return "memory (not persisted)" }

func isMemoryOnly(s Storage) bool {
	_, ok := s.(memoryOnly)
	return ok
}
