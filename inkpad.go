package inkpad

import (
	"context"
	"log/slog"
	"time"

	"github.com/inkpad-app/inkpad/internal/platform"
	"github.com/inkpad-app/inkpad/pkg/core"
	"github.com/inkpad-app/inkpad/pkg/notes"
)

// --- Types ---

// Note is a public alias for the note document.
type Note = core.Note

// NoteType is a public alias for the note type enum.
type NoteType = core.NoteType

// NoteUpdate is a public alias for a partial note update.
type NoteUpdate = core.NoteUpdate

// Folder is a public alias for the folder record.
type Folder = core.Folder

// FolderUpdate is a public alias for a partial folder update.
type FolderUpdate = notes.FolderUpdate

// Collection is a public alias for the note collection.
type Collection = notes.Collection

// GCReport is a public alias for a garbage collection report.
type GCReport = notes.Report

// App is a public alias for a wired application instance.
type App = platform.App

// Note types.
const (
	TypeText      = core.TypeText
	TypeChecklist = core.TypeChecklist
	TypeImage     = core.TypeImage
)

// --- Configuration ---

// Option defines a functional option for configuring the app.
type Option = platform.Option

// WithLogger sets the logger used by every wired component.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithDataDir overrides the app-local data directory.
func WithDataDir(dir string) Option {
	return platform.WithDataDir(dir)
}

// WithStore injects a custom storage gateway.
func WithStore(store core.Store) Option {
	return platform.WithStore(store)
}

// WithFolderStore injects a custom folder store.
func WithFolderStore(folders core.FolderStore) Option {
	return platform.WithFolderStore(folders)
}

// WithBackend forces a specific storage backend by name ("sandbox" or "host").
func WithBackend(name string) Option {
	return platform.WithBackend(name)
}

// WithHostSocket sets the unix socket of the privileged host channel.
func WithHostSocket(socket string) Option {
	return platform.WithHostSocket(socket)
}

// WithGCDelay overrides the startup delay of the orphaned-asset scan.
func WithGCDelay(delay time.Duration) Option {
	return platform.WithGCDelay(delay)
}

// WithoutGC disables the startup orphaned-asset scan.
func WithoutGC() Option {
	return platform.WithoutGC()
}

// --- Factory ---

// New builds a fully wired App: storage backend, folder store and loaded
// note collection. Close the App when done.
func New(ctx context.Context, opts ...Option) (*App, error) {
	return platform.New(ctx, opts...)
}

// DefaultDataDir returns the app-local data directory.
func DefaultDataDir() (string, error) {
	return platform.DefaultDataDir()
}

// --- Assets ---

// AssetRef builds the canonical reference string for a stored asset file.
func AssetRef(filename string) string {
	return core.AssetRef(filename)
}

// BareFilename resolves an asset reference to the bare filename on disk.
func BareFilename(ref string) (string, error) {
	return core.BareFilename(ref)
}
