// Package platform wires the storage backends, the folder store and the
// note collection into a running app. It owns backend selection: a
// privileged host channel when one is reachable, the sandboxed filesystem
// store otherwise.
package platform

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/inkpad-app/inkpad/pkg/adapters/hostchan"
	"github.com/inkpad-app/inkpad/pkg/adapters/kvstore"
	"github.com/inkpad-app/inkpad/pkg/adapters/sandbox"
	"github.com/inkpad-app/inkpad/pkg/core"
	"github.com/inkpad-app/inkpad/pkg/notes"
)

// EnvHostSocket names the environment variable that points at the host
// storage socket. When set and reachable, the host backend is preferred.
const EnvHostSocket = "INKPAD_HOST_SOCKET"

// App is a fully wired application instance.
type App struct {
	Collection *notes.Collection
	Store      core.Store
	Backend    string

	folders core.FolderStore
}

// New builds an App: selects a storage backend, opens the folder store,
// loads the collection and schedules the orphaned-asset scan.
func New(ctx context.Context, opts ...Option) (*App, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	dataDir := o.dataDir
	if dataDir == "" {
		var err error
		dataDir, err = DefaultDataDir()
		if err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	store, backend, err := selectStore(o, dataDir)
	if err != nil {
		return nil, err
	}
	if err := store.Initialize(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize %s backend: %w", backend, err)
	}

	folders := o.folders
	if folders == nil {
		kv, err := kvstore.Open(filepath.Join(dataDir, "folders.db"))
		if err != nil {
			store.Close()
			return nil, err
		}
		folders = kv
	}

	col := notes.New(store, folders, o.logger)
	if err := col.Load(ctx); err != nil {
		closeFolderStore(folders)
		store.Close()
		return nil, err
	}

	if o.logger != nil {
		o.logger.Info("storage ready", "backend", backend, "data_dir", dataDir)
	}

	if !o.gcDisabled {
		notes.NewScanner(store, o.logger).RunAfter(ctx, o.gcDelay)
	}

	return &App{
		Collection: col,
		Store:      store,
		Backend:    backend,
		folders:    folders,
	}, nil
}

// Close releases the storage backend and the folder store.
func (a *App) Close() error {
	err := a.Store.Close()
	if ferr := closeFolderStore(a.folders); err == nil {
		err = ferr
	}
	return err
}

// selectStore resolves the storage backend. Precedence: injected store,
// explicit backend name, host socket (option or environment), sandbox.
func selectStore(o *options, dataDir string) (core.Store, string, error) {
	if o.store != nil {
		return o.store, "injected", nil
	}

	socket := o.hostSocket
	if socket == "" {
		socket = os.Getenv(EnvHostSocket)
	}

	backend := o.backend
	if backend == "" {
		if socket != "" {
			backend = BackendHost
		} else {
			backend = BackendSandbox
		}
	}

	switch backend {
	case BackendHost:
		if socket == "" {
			return nil, "", fmt.Errorf("host backend selected but no socket configured (set %s)", EnvHostSocket)
		}
		return hostchan.NewClient(socket, o.logger), BackendHost, nil
	case BackendSandbox:
		return sandbox.NewStore(sandbox.Config{
			Path:   dataDir,
			Logger: o.logger,
		}), BackendSandbox, nil
	default:
		return nil, "", fmt.Errorf("unknown backend: %s", backend)
	}
}

// DefaultDataDir returns the app-local data directory under the platform
// config root.
func DefaultDataDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve config directory: %w", err)
	}
	return filepath.Join(base, "inkpad"), nil
}

func closeFolderStore(folders core.FolderStore) error {
	if c, ok := folders.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
