package fs

import (
	"time"

	"github.com/aretw0/introspection"
)

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	Path          string     `json:"path"`
	ReadOnly      bool       `json:"read_only"`
	IndexLoaded   bool       `json:"index_loaded"`
	Notes         int        `json:"notes"`
	Users         int        `json:"users"`
	WatcherActive bool       `json:"watcher_active"`
	LastRebuild   *time.Time `json:"last_rebuild,omitempty"`
}

// State implements introspection.Introspectable.
// Counts are only reported once the index has been loaded; State never scans.
func (r *Repository) State() any {
	state := RepositoryState{
		Path:          r.Path,
		ReadOnly:      r.config.ReadOnly,
		IndexLoaded:   r.index.isLoaded(),
		WatcherActive: r.isWatcherActive(),
		LastRebuild:   r.index.rebuiltAt(),
	}
	if state.IndexLoaded {
		stats := r.index.stats()
		state.Notes = stats.Notes
		state.Users = stats.Users
	}
	return state
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "fs_repository"
}

// KeyStoreState exposes the key store configuration.
type KeyStoreState struct {
	Path     string `json:"path"`
	ReadOnly bool   `json:"read_only"`
}

// State implements introspection.Introspectable.
func (k *KeyStore) State() any {
	return KeyStoreState{Path: k.Path, ReadOnly: k.config.ReadOnly}
}

// ComponentType implements introspection.Component.
func (k *KeyStore) ComponentType() string {
	return "fs_key_store"
}

var (
	_ introspection.Introspectable = (*Repository)(nil)
	_ introspection.Component      = (*Repository)(nil)
	_ introspection.Introspectable = (*KeyStore)(nil)
	_ introspection.Component      = (*KeyStore)(nil)
)
