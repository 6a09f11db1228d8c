package kvstore_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/inkpad-app/inkpad/pkg/adapters/kvstore"
	"github.com/inkpad-app/inkpad/pkg/core"
)

func openStore(t *testing.T) *kvstore.Store {
	t.Helper()

	s, err := kvstore.Open(filepath.Join(t.TempDir(), "folders.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestGetPut(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	t.Run("Missing Key", func(t *testing.T) {
		_, err := s.Get(ctx, "nope")
		if !errors.Is(err, core.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Round Trip", func(t *testing.T) {
		if err := s.Put(ctx, "k", []byte("v1")); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		got, err := s.Get(ctx, "k")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if string(got) != "v1" {
			t.Errorf("expected v1, got %s", got)
		}
	})

	t.Run("Upsert Replaces", func(t *testing.T) {
		if err := s.Put(ctx, "k", []byte("v2")); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		got, _ := s.Get(ctx, "k")
		if string(got) != "v2" {
			t.Errorf("expected v2, got %s", got)
		}
	})

	t.Run("Delete Is Idempotent", func(t *testing.T) {
		if err := s.Delete(ctx, "k"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if err := s.Delete(ctx, "k"); err != nil {
			t.Fatalf("second Delete failed: %v", err)
		}
		if _, err := s.Get(ctx, "k"); !errors.Is(err, core.ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
	})
}

func TestFolderCollection(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	t.Run("Empty Store Has No Folders", func(t *testing.T) {
		folders, err := s.LoadFolders(ctx)
		if err != nil {
			t.Fatalf("LoadFolders failed: %v", err)
		}
		if len(folders) != 0 {
			t.Errorf("expected no folders, got %+v", folders)
		}
	})

	t.Run("Order Is Preserved", func(t *testing.T) {
		want := []core.Folder{
			{ID: "f2", Name: "Personal", Color: "#ff8800", CreatedAt: 2},
			{ID: "f1", Name: "Work", CreatedAt: 1},
		}
		if err := s.SaveFolders(ctx, want); err != nil {
			t.Fatalf("SaveFolders failed: %v", err)
		}

		got, err := s.LoadFolders(ctx)
		if err != nil {
			t.Fatalf("LoadFolders failed: %v", err)
		}
		if len(got) != 2 || got[0].ID != "f2" || got[1].ID != "f1" {
			t.Errorf("order not preserved: %+v", got)
		}
		if got[0].Color != "#ff8800" {
			t.Errorf("color lost: %+v", got[0])
		}
	})

	t.Run("Whole Document Rewrite", func(t *testing.T) {
		if err := s.SaveFolders(ctx, []core.Folder{{ID: "f3", Name: "Archive"}}); err != nil {
			t.Fatalf("SaveFolders failed: %v", err)
		}
		got, err := s.LoadFolders(ctx)
		if err != nil {
			t.Fatalf("LoadFolders failed: %v", err)
		}
		if len(got) != 1 || got[0].ID != "f3" {
			t.Errorf("expected only f3, got %+v", got)
		}
	})
}
