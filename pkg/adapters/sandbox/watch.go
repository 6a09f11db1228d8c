package sandbox

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/inkpad-app/inkpad/pkg/core"
)

// Watch observes external changes to the note namespace and emits events
// for note IDs matching pattern (doublestar glob, "" or "**/*" for all).
// The channel is closed when ctx is cancelled or the worker stops.
func (s *Store) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	events := make(chan core.Event, 16)

	w := newWatchWorker(s, pattern, events)
	if err := w.Start(ctx); err != nil {
		return nil, err
	}

	go func() {
		<-ctx.Done()
		_ = w.Stop(context.Background())
		close(events)
	}()

	return events, nil
}

func (s *Store) setWatcherActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watcherActive = active
}

// resolveID maps an absolute path inside the notes namespace back to a
// note ID.
func (s *Store) resolveID(path string) (string, error) {
	rel, err := filepath.Rel(s.notesPath(), path)
	if err != nil {
		return "", err
	}
	rel = filepath.ToSlash(rel)
	if strings.Contains(rel, "/") || !strings.HasSuffix(rel, ".json") {
		return "", fmt.Errorf("not a note document: %s", path)
	}
	return strings.TrimSuffix(rel, ".json"), nil
}
