package core

import "context"

// NoteStore persists note documents, one record per note.
type NoteStore interface {
	// SaveNote writes or overwrites the full note document keyed by its ID.
	SaveNote(ctx context.Context, n Note) error

	// DeleteNote removes the note document. Deleting an absent note is not
	// an error; it returns (false, nil).
	DeleteNote(ctx context.Context, id string) (bool, error)

	// LoadNotes enumerates all note documents. Documents that fail to parse
	// are skipped, not fatal.
	LoadNotes(ctx context.Context) ([]Note, error)
}

// AssetStore persists binary image assets. Assets are immutable: created
// once under a fresh name, then only deleted.
type AssetStore interface {
	// SaveImage writes a new blob under a freshly generated filename and
	// returns the embeddable reference string. It never overwrites.
	SaveImage(ctx context.Context, data []byte) (string, error)

	// DeleteImage resolves the reference to a bare filename and deletes the
	// blob. Returns (false, nil) if the asset is already absent.
	DeleteImage(ctx context.Context, ref string) (bool, error)

	// ListImages enumerates the bare filenames of all assets on disk,
	// creating the asset namespace if absent.
	ListImages(ctx context.Context) ([]string, error)
}

// Store is the storage gateway contract: one abstraction both platform
// backends satisfy. It owns no state beyond its on-disk namespaces.
type Store interface {
	NoteStore
	AssetStore

	// Initialize ensures the underlying storage is ready (directories,
	// socket, schema).
	Initialize(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}

// FolderStore persists the folder collection as a single ordered document
// in a lightweight key-value namespace, distinct from note storage.
type FolderStore interface {
	LoadFolders(ctx context.Context) ([]Folder, error)
	SaveFolders(ctx context.Context, folders []Folder) error
}

// Watchable is implemented by stores that can observe external changes to
// the note namespace.
type Watchable interface {
	// Watch emits events for note documents matching pattern until ctx is
	// cancelled.
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}
