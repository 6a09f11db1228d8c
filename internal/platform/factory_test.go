package platform

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkpad-app/inkpad/pkg/adapters/hostchan"
	"github.com/inkpad-app/inkpad/pkg/adapters/sandbox"
	"github.com/inkpad-app/inkpad/pkg/core"
)

func TestNewSandboxDefault(t *testing.T) {
	dir := t.TempDir()

	app, err := New(context.Background(), WithDataDir(dir), WithoutGC())
	require.NoError(t, err)
	defer app.Close()

	assert.Equal(t, BackendSandbox, app.Backend)
	assert.DirExists(t, filepath.Join(dir, "notes"))
	assert.DirExists(t, filepath.Join(dir, "images"))
	assert.FileExists(t, filepath.Join(dir, "folders.db"))
}

func TestNewCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "inkpad")

	app, err := New(context.Background(), WithDataDir(dir), WithoutGC())
	require.NoError(t, err)
	defer app.Close()

	assert.DirExists(t, dir)
}

func TestNewHostBackend(t *testing.T) {
	t.Run("Via Option", func(t *testing.T) {
		socket := startHost(t)

		app, err := New(context.Background(),
			WithDataDir(t.TempDir()),
			WithHostSocket(socket),
			WithoutGC(),
		)
		require.NoError(t, err)
		defer app.Close()

		assert.Equal(t, BackendHost, app.Backend)
		_, ok := app.Store.(*hostchan.Client)
		assert.True(t, ok)
	})

	t.Run("Via Environment", func(t *testing.T) {
		socket := startHost(t)
		t.Setenv(EnvHostSocket, socket)

		app, err := New(context.Background(), WithDataDir(t.TempDir()), WithoutGC())
		require.NoError(t, err)
		defer app.Close()

		assert.Equal(t, BackendHost, app.Backend)
	})

	t.Run("Explicit Sandbox Wins Over Socket", func(t *testing.T) {
		t.Setenv(EnvHostSocket, "/nonexistent.sock")

		app, err := New(context.Background(),
			WithDataDir(t.TempDir()),
			WithBackend(BackendSandbox),
			WithoutGC(),
		)
		require.NoError(t, err)
		defer app.Close()

		assert.Equal(t, BackendSandbox, app.Backend)
	})

	t.Run("Host Without Socket Fails", func(t *testing.T) {
		_, err := New(context.Background(),
			WithDataDir(t.TempDir()),
			WithBackend(BackendHost),
			WithoutGC(),
		)
		require.Error(t, err)
	})

	t.Run("Unreachable Host Fails Fast", func(t *testing.T) {
		_, err := New(context.Background(),
			WithDataDir(t.TempDir()),
			WithHostSocket(filepath.Join(t.TempDir(), "gone.sock")),
			WithoutGC(),
		)
		require.Error(t, err)
	})
}

func TestNewUnknownBackend(t *testing.T) {
	_, err := New(context.Background(),
		WithDataDir(t.TempDir()),
		WithBackend("carrier-pigeon"),
		WithoutGC(),
	)
	require.Error(t, err)
}

func TestNewInjectedStore(t *testing.T) {
	dir := t.TempDir()
	store := sandbox.NewStore(sandbox.Config{Path: dir})

	app, err := New(context.Background(),
		WithDataDir(t.TempDir()),
		WithStore(store),
		WithoutGC(),
	)
	require.NoError(t, err)
	defer app.Close()

	assert.Equal(t, "injected", app.Backend)
	assert.Same(t, store, app.Store.(*sandbox.Store))
}

func TestStartupGC(t *testing.T) {
	dir := t.TempDir()

	// Plant an orphaned asset before the app starts.
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "images"), 0o755))
	orphan := filepath.Join(dir, "images", "orphan.png")
	require.NoError(t, os.WriteFile(orphan, []byte("blob"), 0o644))

	app, err := New(context.Background(),
		WithDataDir(dir),
		WithGCDelay(10*time.Millisecond),
	)
	require.NoError(t, err)
	defer app.Close()

	require.Eventually(t, func() bool {
		_, err := os.Stat(orphan)
		return os.IsNotExist(err)
	}, 2*time.Second, 10*time.Millisecond)
}

func TestAppEndToEnd(t *testing.T) {
	ctx := context.Background()

	app, err := New(ctx, WithDataDir(t.TempDir()), WithoutGC())
	require.NoError(t, err)
	defer app.Close()

	n, err := app.Collection.AddNote(ctx, core.TypeText, "")
	require.NoError(t, err)

	body := "hello"
	require.NoError(t, app.Collection.UpdateNote(ctx, n.ID, core.NoteUpdate{Content: &body}))

	got, ok := app.Collection.Note(n.ID)
	require.True(t, ok)
	assert.Equal(t, "hello", got.Content)
}

// startHost runs a host channel server over a throwaway sandbox store and
// returns its socket path.
func startHost(t *testing.T) string {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	store := sandbox.NewStore(sandbox.Config{Path: t.TempDir()})
	require.NoError(t, store.Initialize(ctx))

	socket := filepath.Join(t.TempDir(), "host.sock")
	ln, err := hostchan.Listen(socket)
	require.NoError(t, err)

	srv := hostchan.NewServer(store, nil)
	go func() { _ = srv.Serve(ctx, ln) }()
	return socket
}
