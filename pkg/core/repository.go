package core

import "context"

// KeyStore guarantees exactly one durable key per user.
type KeyStore interface {
	// GetOrCreate returns the persisted key for userID, generating and persisting
	// a new random key on first use. Concurrent first use must converge on one key.
	GetOrCreate(ctx context.Context, userID string) (Key, error)
}

// Repository stores opaque records namespaced by user.
// It knows nothing about encryption; NoteStore hands it sealed bytes.
type Repository interface {
	// Initialize ensures the underlying storage is ready (e.g. create directories).
	Initialize(ctx context.Context) error

	// Put atomically creates or replaces the record at (userID, name).
	Put(ctx context.Context, userID, name string, data []byte) error

	// Get returns the record at (userID, name) or ErrNotFound.
	Get(ctx context.Context, userID, name string) ([]byte, error)

	// Rename moves the record from oldName to newName, replacing any record
	// already at newName. Returns ErrNotFound if oldName does not exist.
	Rename(ctx context.Context, userID, oldName, newName string) error

	// Delete removes the record at (userID, name) or returns ErrNotFound.
	Delete(ctx context.Context, userID, name string) error

	// List returns the names of every record owned by userID, in no particular order.
	List(ctx context.Context, userID string) ([]string, error)

	// Stats returns aggregate counts. Implementations should answer it cheaply.
	Stats(ctx context.Context) (Stats, error)
}

// Watchable defines an interface for repositories that report external changes.
type Watchable interface {
	// Watch emits an Event for every note created, modified or deleted until ctx is done.
	Watch(ctx context.Context) (<-chan Event, error)
}
