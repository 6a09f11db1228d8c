// Package notes holds the authoritative in-memory note/folder state and
// keeps it synchronized with the storage gateway on every mutation. It also
// hosts the reference scanner that reclaims orphaned image assets.
package notes

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/google/uuid"

	"github.com/inkpad-app/inkpad/pkg/core"
)

// DefaultTitle is the title assigned to freshly created notes.
const DefaultTitle = "New Note"

// Collection owns the in-memory note and folder collections. Notes persist
// individually through the storage gateway; folders persist as one whole
// ordered document in the folder store. All mutations go through Collection
// methods; no other component writes into either namespace.
type Collection struct {
	store   core.Store
	folders core.FolderStore
	logger  *slog.Logger

	mu         sync.RWMutex
	notes      []core.Note
	folderList []core.Folder
	activeID   string

	failed *failureLog
}

// New creates a Collection over the given stores. Call Load before use.
func New(store core.Store, folders core.FolderStore, logger *slog.Logger) *Collection {
	return &Collection{
		store:   store,
		folders: folders,
		logger:  logger,
		failed:  newFailureLog(64),
	}
}

// Load populates the in-memory state from storage. Notes are ordered
// freshest first (UpdatedAt descending); note order is derived, not stored.
func (c *Collection) Load(ctx context.Context) error {
	loaded, err := c.store.LoadNotes(ctx)
	if err != nil {
		return fmt.Errorf("failed to load notes: %w", err)
	}

	sort.SliceStable(loaded, func(i, j int) bool {
		return loaded[i].UpdatedAt > loaded[j].UpdatedAt
	})

	folderList, err := c.folders.LoadFolders(ctx)
	if err != nil {
		return fmt.Errorf("failed to load folders: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.notes = loaded
	c.folderList = folderList
	return nil
}

// Notes returns a snapshot of the note collection in display order.
func (c *Collection) Notes() []core.Note {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]core.Note, len(c.notes))
	copy(out, c.notes)
	return out
}

// Folders returns a snapshot of the folder collection in stored order.
func (c *Collection) Folders() []core.Folder {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]core.Folder, len(c.folderList))
	copy(out, c.folderList)
	return out
}

// Note returns the note with the given id.
func (c *Collection) Note(id string) (core.Note, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, n := range c.notes {
		if n.ID == id {
			return n, true
		}
	}
	return core.Note{}, false
}

// ActiveID returns the currently selected note id, if any.
func (c *Collection) ActiveID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.activeID
}

// SetActive marks a note as selected.
func (c *Collection) SetActive(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.activeID = id
}

// AddNote constructs a new note, inserts it at the front of the collection
// so it is immediately visible, selects it, then persists it. On a
// persistence failure the note stays in memory (it may not survive a
// restart); the error is returned alongside the note.
func (c *Collection) AddNote(ctx context.Context, t core.NoteType, folderID string) (core.Note, error) {
	if !t.Valid() {
		return core.Note{}, fmt.Errorf("unknown note type %q", t)
	}

	now := time.Now().UnixMilli()
	n := core.Note{
		ID:        uuid.NewString(),
		Title:     DefaultTitle,
		Type:      t,
		FolderID:  folderID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	// Image notes start as an empty serialized list so decoders and the GC
	// scanner never see malformed content for a brand-new note.
	if t == core.TypeImage {
		n.Content = "[]"
	}

	c.mu.Lock()
	c.notes = append([]core.Note{n}, c.notes...)
	c.activeID = n.ID
	c.mu.Unlock()

	if err := c.store.SaveNote(ctx, n); err != nil {
		if c.logger != nil {
			c.logger.Error("failed to persist new note", "id", n.ID, "error", err)
		}
		return n, err
	}
	return n, nil
}

// UpdateNote merges a partial update into the note and persists the result.
// Updating an unknown id is a no-op. For image notes whose content changes,
// assets referenced by the old content but not the new one are deleted in
// the background; the diff is computed against the pre-merge content.
func (c *Collection) UpdateNote(ctx context.Context, id string, upd core.NoteUpdate) error {
	c.mu.Lock()

	idx := -1
	for i := range c.notes {
		if c.notes[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		c.mu.Unlock()
		return nil
	}

	old := c.notes[idx]

	var removed []string
	if old.Type == core.TypeImage && upd.Content != nil && *upd.Content != old.Content {
		removed = diffRefs(refSet(old.Type, old.Content), refSet(old.Type, *upd.Content))
	}

	n := old
	if upd.Title != nil {
		n.Title = *upd.Title
	}
	if upd.Content != nil {
		n.Content = *upd.Content
	}
	if upd.FolderID != nil {
		n.FolderID = *upd.FolderID
	}
	n.UpdatedAt = stamp(old.UpdatedAt)

	c.notes[idx] = n
	c.mu.Unlock()

	for _, ref := range removed {
		c.backgroundDelete(ref)
	}

	if err := c.store.SaveNote(ctx, n); err != nil {
		return fmt.Errorf("failed to persist note %s: %w", id, err)
	}
	return nil
}

// DeleteNote removes the note from the collection and persists the
// deletion. Image notes have every referenced asset deleted in the
// background. Deleting an unknown id is a no-op.
func (c *Collection) DeleteNote(ctx context.Context, id string) error {
	c.mu.Lock()

	idx := -1
	for i := range c.notes {
		if c.notes[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		c.mu.Unlock()
		return nil
	}

	n := c.notes[idx]
	c.notes = append(c.notes[:idx], c.notes[idx+1:]...)
	if c.activeID == id {
		c.activeID = ""
	}
	c.mu.Unlock()

	if n.Type == core.TypeImage {
		for _, ref := range core.NoteAssetRefs(n) {
			c.backgroundDelete(ref)
		}
	}

	if _, err := c.store.DeleteNote(ctx, id); err != nil {
		return fmt.Errorf("failed to persist deletion of %s: %w", id, err)
	}
	return nil
}

// SaveImage stores pasted/uploaded image bytes and returns the embeddable
// reference. Exposed for editors; nothing ties the asset to a note until
// the editor writes the reference into content, which is why the GC pass is
// the backstop against orphans.
func (c *Collection) SaveImage(ctx context.Context, data []byte) (string, error) {
	return c.store.SaveImage(ctx, data)
}

// FailedDeletes returns the asset references whose background deletion
// failed since the last GC pass.
func (c *Collection) FailedDeletes() []string {
	return c.failed.snapshot()
}

// backgroundDelete deletes an asset without blocking the caller. Failures
// are captured in the failure log; the next GC pass reclaims the asset
// anyway, so a lost delete self-heals.
func (c *Collection) backgroundDelete(ref string) {
	lifecycle.Go(context.Background(), func(ctx context.Context) error {
		deleted, err := c.store.DeleteImage(ctx, ref)
		if err != nil {
			c.failed.add(ref)
			if c.logger != nil {
				c.logger.Warn("asset delete failed", "ref", ref, "error", err)
			}
			return nil
		}
		if !deleted && c.logger != nil {
			c.logger.Debug("asset already absent", "ref", ref)
		}
		return nil
	}, lifecycle.WithErrorHandler(func(err error) {
		c.failed.add(ref)
		if c.logger != nil {
			c.logger.Error("asset delete panic", "ref", ref, "error", err)
		}
	}))
}

// stamp returns the current unix-millisecond time, clamped so UpdatedAt
// never decreases even if the clock steps backwards.
func stamp(prev int64) int64 {
	now := time.Now().UnixMilli()
	if now < prev {
		return prev
	}
	return now
}

// refSet decodes content and returns its asset references as a set.
// Content that fails to decode contributes an empty set.
func refSet(t core.NoteType, raw string) map[string]struct{} {
	set := make(map[string]struct{})
	c, err := core.DecodeContent(t, raw)
	if err != nil {
		return set
	}
	for _, ref := range c.AssetRefs() {
		set[ref] = struct{}{}
	}
	return set
}

// diffRefs returns the references present in old but absent from new.
func diffRefs(old, new map[string]struct{}) []string {
	var out []string
	for ref := range old {
		if _, ok := new[ref]; !ok {
			out = append(out, ref)
		}
	}
	sort.Strings(out)
	return out
}
