package sandbox

import (
	"github.com/aretw0/introspection"

	"github.com/inkpad-app/inkpad/pkg/core"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Path          string `json:"path"`
	WatcherActive bool   `json:"watcher_active"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return StoreState{
		Path:          s.Path,
		WatcherActive: s.watcherActive,
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "sandbox-store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)

var _ core.Store = (*Store)(nil)
var _ core.Watchable = (*Store)(nil)
