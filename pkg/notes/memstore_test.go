package notes_test

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/inkpad-app/inkpad/pkg/core"
)

// memStore is an in-memory core.Store and core.FolderStore used to observe
// exactly which storage calls the collection makes.
type memStore struct {
	mu      sync.Mutex
	notes   map[string]core.Note
	images  map[string][]byte
	folders []core.Folder

	deletedImages []string // every DeleteImage attempt, in order
	folderSaves   int
	noteSaves     []string // note ids passed to SaveNote, in order
	ops           []string // interleaved write operations, in order

	failSaveNote    bool
	failDeleteImage map[string]bool
}

func newMemStore() *memStore {
	return &memStore{
		notes:           make(map[string]core.Note),
		images:          make(map[string][]byte),
		failDeleteImage: make(map[string]bool),
	}
}

func (m *memStore) Initialize(ctx context.Context) error { return nil }
func (m *memStore) Close() error                         { return nil }

func (m *memStore) SaveNote(ctx context.Context, n core.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failSaveNote {
		return errors.New("disk full")
	}
	m.notes[n.ID] = n
	m.noteSaves = append(m.noteSaves, n.ID)
	m.ops = append(m.ops, "save-note:"+n.ID)
	return nil
}

func (m *memStore) DeleteNote(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.notes[id]; !ok {
		return false, nil
	}
	delete(m.notes, id)
	return true, nil
}

func (m *memStore) LoadNotes(ctx context.Context) ([]core.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]core.Note, 0, len(m.notes))
	for _, n := range m.notes {
		out = append(out, n)
	}
	return out, nil
}

func (m *memStore) SaveImage(ctx context.Context, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	name := uuid.NewString() + ".png"
	m.images[name] = data
	return core.AssetRef(name), nil
}

func (m *memStore) DeleteImage(ctx context.Context, ref string) (bool, error) {
	name, err := core.BareFilename(ref)
	if err != nil {
		return false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.deletedImages = append(m.deletedImages, name)
	if m.failDeleteImage[name] {
		return false, fmt.Errorf("io error deleting %s", name)
	}
	if _, ok := m.images[name]; !ok {
		return false, nil
	}
	delete(m.images, name)
	return true, nil
}

func (m *memStore) ListImages(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, 0, len(m.images))
	for name := range m.images {
		out = append(out, name)
	}
	return out, nil
}

func (m *memStore) LoadFolders(ctx context.Context) ([]core.Folder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]core.Folder(nil), m.folders...), nil
}

func (m *memStore) SaveFolders(ctx context.Context, folders []core.Folder) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.folders = append([]core.Folder(nil), folders...)
	m.folderSaves++
	m.ops = append(m.ops, "save-folders")
	return nil
}

func (m *memStore) deleteAttempts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.deletedImages...)
}

func (m *memStore) plantImage(name string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.images[name] = []byte("blob")
	return core.AssetRef(name)
}

func (m *memStore) hasImage(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.images[name]
	return ok
}
