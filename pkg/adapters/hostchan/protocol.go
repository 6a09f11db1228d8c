// Package hostchan implements the desktop storage backend: a thin channel
// to the privileged host process that owns the real data directory. The
// wire format is one JSON request and one JSON response per connection over
// a unix domain socket, mirroring the shell's invoke/handle call pairs.
package hostchan

import "github.com/inkpad-app/inkpad/pkg/core"

// Operation names. One per storage gateway call.
const (
	OpPing         = "ping"
	OpSaveNote     = "save-note"
	OpDeleteNote   = "delete-note"
	OpLoadNotes    = "load-notes"
	OpSaveImage    = "save-image"
	OpDeleteImage  = "delete-image"
	OpGetAllImages = "get-all-images"
)

// errKindBadReference marks reference-resolution failures so they survive
// the hop as a structured condition instead of an opaque string.
const errKindBadReference = "bad-reference"

type request struct {
	Op   string     `json:"op"`
	ID   string     `json:"id,omitempty"`
	Note *core.Note `json:"note,omitempty"`
	Data []byte     `json:"data,omitempty"`
	Ref  string     `json:"ref,omitempty"`
}

type response struct {
	OK      bool        `json:"ok"`
	Error   string      `json:"error,omitempty"`
	ErrKind string      `json:"errKind,omitempty"`
	Deleted bool        `json:"deleted,omitempty"`
	Ref     string      `json:"ref,omitempty"`
	Notes   []core.Note `json:"notes,omitempty"`
	Files   []string    `json:"files,omitempty"`
}
