package notes

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/inkpad-app/inkpad/pkg/core"
)

// FolderUpdate is a partial update applied to a folder.
type FolderUpdate struct {
	Name  *string
	Color *string
}

// AddFolder appends a new folder and rewrites the folder document.
func (c *Collection) AddFolder(ctx context.Context, name string) (core.Folder, error) {
	f := core.Folder{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UnixMilli(),
	}

	c.mu.Lock()
	c.folderList = append(c.folderList, f)
	snapshot := append([]core.Folder(nil), c.folderList...)
	c.mu.Unlock()

	if err := c.folders.SaveFolders(ctx, snapshot); err != nil {
		return f, fmt.Errorf("failed to persist folders: %w", err)
	}
	return f, nil
}

// UpdateFolder merges a partial update into the folder and rewrites the
// folder document. Updating an unknown id is a no-op.
func (c *Collection) UpdateFolder(ctx context.Context, id string, upd FolderUpdate) error {
	c.mu.Lock()

	idx := -1
	for i := range c.folderList {
		if c.folderList[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		c.mu.Unlock()
		return nil
	}

	if upd.Name != nil {
		c.folderList[idx].Name = *upd.Name
	}
	if upd.Color != nil {
		c.folderList[idx].Color = *upd.Color
	}
	snapshot := append([]core.Folder(nil), c.folderList...)
	c.mu.Unlock()

	if err := c.folders.SaveFolders(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to persist folders: %w", err)
	}
	return nil
}

// DeleteFolder unfiles every note in the folder, persisting each note
// individually, then removes the folder and rewrites the folder document.
// Unfiling happens strictly before folder removal so no persisted note ever
// references a folder that is already gone. The notes themselves survive.
func (c *Collection) DeleteFolder(ctx context.Context, id string) error {
	c.mu.Lock()
	var unfiled []core.Note
	for i := range c.notes {
		if c.notes[i].FolderID == id {
			c.notes[i].FolderID = ""
			c.notes[i].UpdatedAt = stamp(c.notes[i].UpdatedAt)
			unfiled = append(unfiled, c.notes[i])
		}
	}
	c.mu.Unlock()

	for _, n := range unfiled {
		if err := c.store.SaveNote(ctx, n); err != nil {
			return fmt.Errorf("failed to unfile note %s: %w", n.ID, err)
		}
	}

	c.mu.Lock()
	idx := -1
	for i := range c.folderList {
		if c.folderList[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		c.mu.Unlock()
		return nil
	}
	c.folderList = append(c.folderList[:idx], c.folderList[idx+1:]...)
	snapshot := append([]core.Folder(nil), c.folderList...)
	c.mu.Unlock()

	if err := c.folders.SaveFolders(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to persist folders: %w", err)
	}
	return nil
}

// ReorderFolders replaces the folder ordering wholesale and rewrites the
// folder document. Unknown ids are ignored; folders missing from the
// sequence keep their relative order at the end.
func (c *Collection) ReorderFolders(ctx context.Context, ids []string) error {
	c.mu.Lock()
	c.folderList = reorder(c.folderList, ids, func(f core.Folder) string { return f.ID })
	snapshot := append([]core.Folder(nil), c.folderList...)
	c.mu.Unlock()

	if err := c.folders.SaveFolders(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to persist folders: %w", err)
	}
	return nil
}

// ReorderNotes replaces the in-memory note ordering wholesale. Note order
// is a presentation concern and is not persisted; the stored collection
// stays flat and is re-sorted by UpdatedAt on the next load.
func (c *Collection) ReorderNotes(ids []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notes = reorder(c.notes, ids, func(n core.Note) string { return n.ID })
}

// reorder rebuilds items following the id sequence, appending leftovers in
// their original relative order.
func reorder[T any](items []T, ids []string, key func(T) string) []T {
	byID := make(map[string]int, len(items))
	for i, it := range items {
		byID[key(it)] = i
	}

	out := make([]T, 0, len(items))
	taken := make(map[string]bool, len(ids))
	for _, id := range ids {
		if i, ok := byID[id]; ok && !taken[id] {
			out = append(out, items[i])
			taken[id] = true
		}
	}
	for _, it := range items {
		if !taken[key(it)] {
			out = append(out, it)
		}
	}
	return out
}
