package notes_test

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkpad-app/inkpad/pkg/adapters/kvstore"
	"github.com/inkpad-app/inkpad/pkg/adapters/sandbox"
	"github.com/inkpad-app/inkpad/pkg/core"
	"github.com/inkpad-app/inkpad/pkg/notes"
)

// setupScenario wires a collection over real adapters: a filesystem store
// for notes and images, SQLite for the folder document.
func setupScenario(t *testing.T) (*notes.Collection, *sandbox.Store) {
	t.Helper()
	ctx := context.Background()

	store := sandbox.NewStore(sandbox.Config{Path: t.TempDir()})
	require.NoError(t, store.Initialize(ctx))

	folders, err := kvstore.Open(filepath.Join(t.TempDir(), "folders.db"))
	require.NoError(t, err)
	t.Cleanup(func() { folders.Close() })

	col := notes.New(store, folders, nil)
	require.NoError(t, col.Load(ctx))
	return col, store
}

func TestImageNoteLifecycle(t *testing.T) {
	col, store := setupScenario(t)
	ctx := context.Background()

	refX, err := col.SaveImage(ctx, []byte("\x89PNG\r\n\x1a\nxxxx"))
	require.NoError(t, err)
	refY, err := col.SaveImage(ctx, []byte("\x89PNG\r\n\x1a\nyyyy"))
	require.NoError(t, err)

	n, err := col.AddNote(ctx, core.TypeImage, "")
	require.NoError(t, err)

	entries := []core.ImageEntry{
		{ID: "1", URL: refX, Name: "x"},
		{ID: "2", URL: refY, Name: "y"},
	}
	data, err := json.Marshal(entries)
	require.NoError(t, err)
	content := string(data)
	require.NoError(t, col.UpdateNote(ctx, n.ID, core.NoteUpdate{Content: &content}))

	files, err := store.ListImages(ctx)
	require.NoError(t, err)
	require.Len(t, files, 2)

	// Deleting the note removes both assets in the background.
	require.NoError(t, col.DeleteNote(ctx, n.ID))

	require.Eventually(t, func() bool {
		files, err := store.ListImages(ctx)
		return err == nil && len(files) == 0
	}, 2*time.Second, 10*time.Millisecond)

	// A follow-up pass finds nothing left to reclaim.
	report, err := col.GC(ctx)
	require.NoError(t, err)
	assert.Zero(t, report.Deleted)
	assert.Zero(t, report.Present)
}

func TestGCBackstopsMissedDeletes(t *testing.T) {
	col, store := setupScenario(t)
	ctx := context.Background()

	// An upload that never made it into any note's content.
	_, err := col.SaveImage(ctx, []byte("\x89PNG\r\n\x1a\nstray"))
	require.NoError(t, err)

	kept, err := col.SaveImage(ctx, []byte("\x89PNG\r\n\x1a\nkept"))
	require.NoError(t, err)
	n, err := col.AddNote(ctx, core.TypeText, "")
	require.NoError(t, err)
	content := "<p>embedded " + kept + "</p>"
	require.NoError(t, col.UpdateNote(ctx, n.ID, core.NoteUpdate{Content: &content}))

	report, err := col.GC(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Deleted)
	assert.Equal(t, 1, report.Live)

	files, err := store.ListImages(ctx)
	require.NoError(t, err)
	require.Len(t, files, 1)
	name, err := core.BareFilename(kept)
	require.NoError(t, err)
	assert.Equal(t, name, files[0])
}

func TestFolderDeletionKeepsNotes(t *testing.T) {
	col, _ := setupScenario(t)
	ctx := context.Background()

	work, err := col.AddFolder(ctx, "Work")
	require.NoError(t, err)
	inside, err := col.AddNote(ctx, core.TypeText, work.ID)
	require.NoError(t, err)

	require.NoError(t, col.DeleteFolder(ctx, work.ID))

	got, ok := col.Note(inside.ID)
	require.True(t, ok)
	assert.Empty(t, got.FolderID)
	assert.Empty(t, col.Folders())
}

func TestStateSurvivesReload(t *testing.T) {
	ctx := context.Background()
	notesPath := t.TempDir()
	dbPath := filepath.Join(t.TempDir(), "folders.db")

	store := sandbox.NewStore(sandbox.Config{Path: notesPath})
	require.NoError(t, store.Initialize(ctx))
	folders, err := kvstore.Open(dbPath)
	require.NoError(t, err)

	col := notes.New(store, folders, nil)
	require.NoError(t, col.Load(ctx))

	f, err := col.AddFolder(ctx, "Ideas")
	require.NoError(t, err)
	n, err := col.AddNote(ctx, core.TypeText, f.ID)
	require.NoError(t, err)
	body := "remember this"
	require.NoError(t, col.UpdateNote(ctx, n.ID, core.NoteUpdate{Content: &body}))
	require.NoError(t, folders.Close())

	// Fresh processes see exactly what was persisted.
	store2 := sandbox.NewStore(sandbox.Config{Path: notesPath})
	require.NoError(t, store2.Initialize(ctx))
	folders2, err := kvstore.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { folders2.Close() })

	col2 := notes.New(store2, folders2, nil)
	require.NoError(t, col2.Load(ctx))

	got, ok := col2.Note(n.ID)
	require.True(t, ok)
	assert.Equal(t, "remember this", got.Content)
	assert.Equal(t, f.ID, got.FolderID)

	list := col2.Folders()
	require.Len(t, list, 1)
	assert.Equal(t, "Ideas", list[0].Name)
}
