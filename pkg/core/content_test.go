package core

import (
	"encoding/json"
	"testing"
)

func TestDecodeContent(t *testing.T) {
	t.Run("Text Passes Through", func(t *testing.T) {
		c, err := DecodeContent(TypeText, "# hello inkpad://pic.png")
		if err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		refs := c.AssetRefs()
		if len(refs) != 1 || refs[0] != "pic.png" {
			t.Errorf("unexpected refs: %v", refs)
		}
	})

	t.Run("Empty Checklist", func(t *testing.T) {
		c, err := DecodeContent(TypeChecklist, "")
		if err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if len(c.(ChecklistContent).Items) != 0 {
			t.Error("expected no items")
		}
	})

	t.Run("Checklist With Subtasks", func(t *testing.T) {
		raw := `[{"id":"1","text":"buy milk","checked":false,"subtasks":[{"id":"1a","text":"skim","checked":true}]}]`
		c, err := DecodeContent(TypeChecklist, raw)
		if err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		items := c.(ChecklistContent).Items
		if len(items) != 1 || len(items[0].Subtasks) != 1 {
			t.Fatalf("unexpected items: %+v", items)
		}
		if !items[0].Subtasks[0].Checked {
			t.Error("subtask should be checked")
		}
	})

	t.Run("Empty Image Note", func(t *testing.T) {
		c, err := DecodeContent(TypeImage, "")
		if err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if len(c.AssetRefs()) != 0 {
			t.Error("expected no refs")
		}
	})

	t.Run("Image Object List", func(t *testing.T) {
		raw := `[{"id":"1","url":"inkpad://a.png","name":"A"},{"id":"2","url":"inkpad://b.png","name":"B"}]`
		c, err := DecodeContent(TypeImage, raw)
		if err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		refs := c.AssetRefs()
		if len(refs) != 2 || refs[0] != "a.png" || refs[1] != "b.png" {
			t.Errorf("unexpected refs: %v", refs)
		}
	})

	t.Run("Legacy String List Is Normalized", func(t *testing.T) {
		raw := `["inkpad://old.png"]`
		c, err := DecodeContent(TypeImage, raw)
		if err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		images := c.(ImageContent).Images
		if len(images) != 1 {
			t.Fatalf("expected 1 image, got %d", len(images))
		}
		if images[0].URL != "inkpad://old.png" {
			t.Errorf("URL lost in normalization: %+v", images[0])
		}
		if images[0].Name != "Untitled Image" {
			t.Errorf("expected default name, got %q", images[0].Name)
		}
	})

	t.Run("Malformed Image List Errors", func(t *testing.T) {
		if _, err := DecodeContent(TypeImage, "{not json"); err == nil {
			t.Error("expected decode error")
		}
	})

	t.Run("Unknown Type Errors", func(t *testing.T) {
		if _, err := DecodeContent(NoteType("video"), ""); err == nil {
			t.Error("expected decode error")
		}
	})
}

func TestEncodeRoundTrip(t *testing.T) {
	c := ImageContent{Images: []ImageEntry{{ID: "1", URL: "inkpad://a.png", Name: "A"}}}
	raw, err := c.Encode()
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	back, err := DecodeContent(TypeImage, raw)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(back.(ImageContent).Images) != 1 {
		t.Error("round trip lost entries")
	}
}

func TestEncodeEmptyListIsValidJSON(t *testing.T) {
	// A brand-new image note must encode to "[]", never "null", so loaders
	// and the GC scanner always see a well-formed list.
	raw, err := ImageContent{}.Encode()
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if raw != "[]" {
		t.Errorf("expected [], got %q", raw)
	}

	var entries []ImageEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		t.Errorf("empty encoding is not valid JSON: %v", err)
	}
}

func TestNoteAssetRefs(t *testing.T) {
	t.Run("Malformed Content Contributes Nothing", func(t *testing.T) {
		n := Note{ID: "x", Type: TypeImage, Content: "{broken"}
		if refs := NoteAssetRefs(n); refs != nil {
			t.Errorf("expected nil refs, got %v", refs)
		}
	})

	t.Run("Checklist Free Text Protects Assets", func(t *testing.T) {
		raw := `[{"id":"1","text":"see inkpad://keep.png","checked":false}]`
		n := Note{ID: "x", Type: TypeChecklist, Content: raw}
		refs := NoteAssetRefs(n)
		if len(refs) != 1 || refs[0] != "keep.png" {
			t.Errorf("unexpected refs: %v", refs)
		}
	})
}
