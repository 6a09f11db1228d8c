package sandbox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/inkpad-app/inkpad/pkg/core"
)

const (
	notesDir  = "notes"
	imagesDir = "images"

	// selfEventWindow is how long a path written by this store is excluded
	// from watch events, so the watcher does not echo our own saves.
	selfEventWindow = time.Second
)

// Store implements core.Store on a sandboxed app-local directory. Note
// documents live under notes/, image blobs under images/. Each namespace is
// owned exclusively by this store.
type Store struct {
	Path   string
	config Config

	mu            sync.RWMutex
	watcherActive bool
	recentWrites  map[string]time.Time
}

// Config holds the configuration for the sandbox store.
type Config struct {
	Path   string
	Logger *slog.Logger
}

// NewStore creates a filesystem-backed store rooted at config.Path.
func NewStore(config Config) *Store {
	return &Store{
		Path:         config.Path,
		config:       config,
		recentWrites: make(map[string]time.Time),
	}
}

// Initialize creates the note and image namespaces.
func (s *Store) Initialize(ctx context.Context) error {
	for _, dir := range []string{s.notesPath(), s.imagesPath()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return nil
}

// Close releases resources. The filesystem store holds none.
func (s *Store) Close() error { return nil }

func (s *Store) notesPath() string  { return filepath.Join(s.Path, notesDir) }
func (s *Store) imagesPath() string { return filepath.Join(s.Path, imagesDir) }

// validateNoteID guards every path built from a caller-supplied id. Ids
// with separators could escape the notes namespace.
func validateNoteID(id string) error {
	if id == "" {
		return fmt.Errorf("note has no ID")
	}
	if strings.ContainsAny(id, `/\`) {
		return fmt.Errorf("invalid note ID %q", id)
	}
	return nil
}

// SaveNote writes or overwrites the note document keyed by its ID.
func (s *Store) SaveNote(ctx context.Context, n core.Note) error {
	if err := validateNoteID(n.ID); err != nil {
		return err
	}

	if err := os.MkdirAll(s.notesPath(), 0o755); err != nil {
		return fmt.Errorf("failed to create notes directory: %w", err)
	}

	data, err := json.MarshalIndent(n, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize note: %w", err)
	}

	fullPath := filepath.Join(s.notesPath(), n.ID+".json")
	s.markWrite(fullPath)

	if s.config.Logger != nil {
		s.config.Logger.Debug("writing note to disk", "id", n.ID, "path", fullPath)
	}

	if err := writeFileAtomic(fullPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write note: %w", err)
	}
	return nil
}

// DeleteNote removes the note document. Absence is not an error.
func (s *Store) DeleteNote(ctx context.Context, id string) (bool, error) {
	if err := validateNoteID(id); err != nil {
		return false, err
	}

	fullPath := filepath.Join(s.notesPath(), id+".json")

	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		if s.config.Logger != nil {
			s.config.Logger.Debug("note already absent", "id", id)
		}
		return false, nil
	}

	s.markWrite(fullPath)
	if err := os.Remove(fullPath); err != nil {
		return false, fmt.Errorf("failed to remove note: %w", err)
	}
	return true, nil
}

// LoadNotes enumerates all note documents. A document that fails to parse
// is logged and skipped; it never aborts the whole load.
func (s *Store) LoadNotes(ctx context.Context) ([]core.Note, error) {
	if err := os.MkdirAll(s.notesPath(), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create notes directory: %w", err)
	}

	entries, err := os.ReadDir(s.notesPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read notes directory: %w", err)
	}

	var notes []core.Note
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		if strings.HasPrefix(e.Name(), TempFilePrefix) {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.notesPath(), e.Name()))
		if err != nil {
			if s.config.Logger != nil {
				s.config.Logger.Warn("failed to read note document", "file", e.Name(), "error", err)
			}
			continue
		}

		var n core.Note
		if err := json.Unmarshal(data, &n); err != nil {
			if s.config.Logger != nil {
				s.config.Logger.Warn("skipping unparseable note document", "file", e.Name(), "error", err)
			}
			continue
		}
		if n.ID == "" {
			// Recover the ID from the filename for documents written by
			// older builds.
			n.ID = strings.TrimSuffix(e.Name(), ".json")
		}
		notes = append(notes, n)
	}
	return notes, nil
}

// SaveImage writes a new blob under a fresh uuid filename and returns the
// embeddable reference. It never overwrites an existing asset.
func (s *Store) SaveImage(ctx context.Context, data []byte) (string, error) {
	if err := os.MkdirAll(s.imagesPath(), 0o755); err != nil {
		return "", fmt.Errorf("failed to create images directory: %w", err)
	}

	name := uuid.NewString() + sniffExt(data)
	fullPath := filepath.Join(s.imagesPath(), name)

	if err := writeFileAtomic(fullPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}

	if s.config.Logger != nil {
		s.config.Logger.Debug("saved image", "file", name, "bytes", len(data))
	}
	return core.AssetRef(name), nil
}

// DeleteImage resolves ref to a bare filename and deletes the blob.
// Deleting an absent asset returns (false, nil).
func (s *Store) DeleteImage(ctx context.Context, ref string) (bool, error) {
	name, err := core.BareFilename(ref)
	if err != nil {
		return false, err
	}

	fullPath := filepath.Join(s.imagesPath(), name)
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		if s.config.Logger != nil {
			s.config.Logger.Debug("image already absent", "file", name)
		}
		return false, nil
	}

	if err := os.Remove(fullPath); err != nil {
		return false, fmt.Errorf("failed to remove image: %w", err)
	}
	return true, nil
}

// ListImages enumerates the bare filenames of all stored assets.
func (s *Store) ListImages(ctx context.Context) ([]string, error) {
	if err := os.MkdirAll(s.imagesPath(), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create images directory: %w", err)
	}

	entries, err := os.ReadDir(s.imagesPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read images directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), TempFilePrefix) {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// markWrite records a path we are about to touch so the watch worker can
// suppress the resulting filesystem event.
func (s *Store) markWrite(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recentWrites[path] = time.Now()
}

// isSelfWrite reports whether path was written by this store within the
// suppression window, pruning stale entries as it goes.
func (s *Store) isSelfWrite(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for p, at := range s.recentWrites {
		if now.Sub(at) > selfEventWindow {
			delete(s.recentWrites, p)
		}
	}

	_, ok := s.recentWrites[path]
	return ok
}

var magicTable = []struct {
	prefix []byte
	ext    string
}{
	{[]byte("\x89PNG"), ".png"},
	{[]byte("\xff\xd8\xff"), ".jpg"},
	{[]byte("GIF8"), ".gif"},
}

// sniffExt picks a file extension from the blob's magic bytes. Unknown
// formats fall back to .png, matching what editors paste most often.
func sniffExt(data []byte) string {
	for _, m := range magicTable {
		if bytes.HasPrefix(data, m.prefix) {
			return m.ext
		}
	}
	if len(data) >= 12 && bytes.Equal(data[:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP")) {
		return ".webp"
	}
	return ".png"
}
