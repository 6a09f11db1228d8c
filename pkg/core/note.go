package core

// NoteType discriminates the content encoding of a note.
type NoteType string

const (
	TypeText      NoteType = "text"
	TypeChecklist NoteType = "checklist"
	TypeImage     NoteType = "image"
)

// Valid reports whether t is one of the known note types.
func (t NoteType) Valid() bool {
	switch t {
	case TypeText, TypeChecklist, TypeImage:
		return true
	}
	return false
}

// Note is the central entity of the domain.
// Content is an encoded payload whose schema depends on Type; use
// DecodeContent to obtain the typed form. Timestamps are unix milliseconds.
type Note struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Type      NoteType `json:"type"`
	FolderID  string   `json:"folderId,omitempty"`
	CreatedAt int64    `json:"createdAt"`
	UpdatedAt int64    `json:"updatedAt"`
}

// Folder groups notes. Deleting a folder never deletes its notes; they are
// unfiled instead (FolderID cleared).
type Folder struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color,omitempty"`
	CreatedAt int64  `json:"createdAt"`
}

// NoteUpdate is a partial update applied to a note. Nil fields are left
// untouched. FolderID uses a pointer so callers can distinguish "clear the
// folder" (pointer to empty string) from "leave as is" (nil).
type NoteUpdate struct {
	Title    *string
	Content  *string
	FolderID *string
}
