package notes

import (
	"github.com/aretw0/introspection"
)

// CollectionState exposes internal state for observability.
type CollectionState struct {
	Notes         int      `json:"notes"`
	Folders       int      `json:"folders"`
	ActiveID      string   `json:"active_id,omitempty"`
	FailedDeletes []string `json:"failed_deletes,omitempty"`
}

// State implements introspection.Introspectable.
func (c *Collection) State() any {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return CollectionState{
		Notes:         len(c.notes),
		Folders:       len(c.folderList),
		ActiveID:      c.activeID,
		FailedDeletes: c.failed.snapshot(),
	}
}

// ComponentType implements introspection.Component.
func (c *Collection) ComponentType() string {
	return "note-collection"
}

var _ introspection.Introspectable = (*Collection)(nil)
var _ introspection.Component = (*Collection)(nil)
