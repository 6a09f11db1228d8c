package platform

import (
	"log/slog"
	"time"

	"github.com/inkpad-app/inkpad/pkg/core"
	"github.com/inkpad-app/inkpad/pkg/notes"
)

// Backend names accepted by WithBackend.
const (
	BackendSandbox = "sandbox"
	BackendHost    = "host"
)

// options holds the internal configuration for the platform factory.
type options struct {
	store      core.Store
	folders    core.FolderStore
	logger     *slog.Logger
	dataDir    string
	backend    string
	hostSocket string
	gcDelay    time.Duration
	gcDisabled bool
}

// Option defines a functional option for configuring the app.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		gcDelay: notes.DefaultGCDelay,
	}
}

// WithLogger sets the logger used by every wired component.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithDataDir overrides the app-local data directory. By default the
// platform data directory is used (see DefaultDataDir).
func WithDataDir(dir string) Option {
	return func(o *options) {
		o.dataDir = dir
	}
}

// WithStore injects a custom storage gateway (e.g. mock). If provided,
// backend selection is skipped entirely.
func WithStore(store core.Store) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithFolderStore injects a custom folder store. If provided, the default
// SQLite store under the data directory is skipped.
func WithFolderStore(folders core.FolderStore) Option {
	return func(o *options) {
		o.folders = folders
	}
}

// WithBackend forces a specific storage backend by name ("sandbox" or
// "host"), overriding auto-detection.
func WithBackend(name string) Option {
	return func(o *options) {
		o.backend = name
	}
}

// WithHostSocket sets the unix socket of the privileged host channel and
// implies the host backend unless WithBackend says otherwise.
func WithHostSocket(socket string) Option {
	return func(o *options) {
		o.hostSocket = socket
	}
}

// WithGCDelay overrides how long after startup the orphaned-asset scan
// runs.
func WithGCDelay(delay time.Duration) Option {
	return func(o *options) {
		o.gcDelay = delay
	}
}

// WithoutGC disables the startup orphaned-asset scan. Useful for tests and
// for one-shot CLI invocations that should not mutate assets implicitly.
func WithoutGC() Option {
	return func(o *options) {
		o.gcDisabled = true
	}
}
