package core

import (
	"encoding/json"
	"fmt"
)

// Subtask is a nested item of a checklist entry.
type Subtask struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Checked bool   `json:"checked"`
}

// ChecklistItem is one entry of a checklist note.
type ChecklistItem struct {
	ID          string    `json:"id"`
	Text        string    `json:"text"`
	Checked     bool      `json:"checked"`
	Description string    `json:"description,omitempty"`
	Subtasks    []Subtask `json:"subtasks,omitempty"`
}

// ImageEntry is one entry of an image-collection note. URL is an asset
// reference resolvable via BareFilename.
type ImageEntry struct {
	ID   string `json:"id"`
	URL  string `json:"url"`
	Name string `json:"name"`
}

// Content is the decoded form of a note's content string. Exactly one
// variant is populated, matching the note's type.
type Content interface {
	// AssetRefs returns the bare filenames of all assets the content
	// references.
	AssetRefs() []string

	// Encode serializes the content back to its wire form.
	Encode() (string, error)
}

// TextContent is free-form markup produced by the rich editor.
type TextContent struct {
	Markup string
}

func (c TextContent) AssetRefs() []string { return ScanRefs(c.Markup) }

func (c TextContent) Encode() (string, error) { return c.Markup, nil }

// ChecklistContent is an ordered list of checklist items.
type ChecklistContent struct {
	Items []ChecklistItem
}

// AssetRefs scans item text and descriptions for embedded references.
// Checklists do not carry assets structurally, but pasted text may.
func (c ChecklistContent) AssetRefs() []string {
	var out []string
	for _, it := range c.Items {
		out = append(out, ScanRefs(it.Text)...)
		out = append(out, ScanRefs(it.Description)...)
		for _, st := range it.Subtasks {
			out = append(out, ScanRefs(st.Text)...)
		}
	}
	return out
}

func (c ChecklistContent) Encode() (string, error) {
	items := c.Items
	if items == nil {
		items = []ChecklistItem{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encode checklist: %w", err)
	}
	return string(b), nil
}

// ImageContent is an ordered collection of stored images.
type ImageContent struct {
	Images []ImageEntry
}

func (c ImageContent) AssetRefs() []string {
	var out []string
	for _, img := range c.Images {
		name, err := BareFilename(img.URL)
		if err != nil {
			continue
		}
		out = append(out, name)
	}
	return out
}

func (c ImageContent) Encode() (string, error) {
	images := c.Images
	if images == nil {
		images = []ImageEntry{}
	}
	b, err := json.Marshal(images)
	if err != nil {
		return "", fmt.Errorf("encode image list: %w", err)
	}
	return string(b), nil
}

// DecodeContent parses a note's content string according to its type.
// Checklist and image notes tolerate an empty string (treated as an empty
// list). Image notes additionally accept the legacy encoding, a plain list
// of reference strings, which is normalized to object entries without
// losing the URL.
func DecodeContent(t NoteType, raw string) (Content, error) {
	switch t {
	case TypeText:
		return TextContent{Markup: raw}, nil

	case TypeChecklist:
		if raw == "" {
			return ChecklistContent{}, nil
		}
		var items []ChecklistItem
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			return nil, fmt.Errorf("decode checklist: %w", err)
		}
		return ChecklistContent{Items: items}, nil

	case TypeImage:
		if raw == "" {
			return ImageContent{}, nil
		}
		var entries []ImageEntry
		if err := json.Unmarshal([]byte(raw), &entries); err == nil {
			return ImageContent{Images: entries}, nil
		}
		// Legacy format: ["inkpad://a.png", ...]
		var urls []string
		if err := json.Unmarshal([]byte(raw), &urls); err != nil {
			return nil, fmt.Errorf("decode image list: %w", err)
		}
		entries = make([]ImageEntry, 0, len(urls))
		for _, u := range urls {
			entries = append(entries, ImageEntry{ID: u, URL: u, Name: "Untitled Image"})
		}
		return ImageContent{Images: entries}, nil

	default:
		return nil, fmt.Errorf("decode content: unknown note type %q", t)
	}
}

// NoteAssetRefs returns the bare filenames referenced by a note's content.
// A content string that fails to decode contributes no references; callers
// that need to distinguish use DecodeContent directly.
func NoteAssetRefs(n Note) []string {
	c, err := DecodeContent(n.Type, n.Content)
	if err != nil {
		return nil
	}
	return c.AssetRefs()
}
