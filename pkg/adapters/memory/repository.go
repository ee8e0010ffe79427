package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/aretw0/pasty/pkg/core"
)

// Repository keeps sealed records in nested maps keyed by user then name.
type Repository struct {
	mu      sync.RWMutex
	records map[string]map[string][]byte
}

// NewRepository creates an empty Repository.
func NewRepository() *Repository {
	return &Repository{records: make(map[string]map[string][]byte)}
}

// Initialize implements core.Repository.
func (r *Repository) Initialize(ctx context.Context) error { return nil }

// Put implements core.Repository.
func (r *Repository) Put(ctx context.Context, userID, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", core.ErrNoteStorage, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	notes, ok := r.records[userID]
	if !ok {
		notes = make(map[string][]byte)
		r.records[userID] = notes
	}
	notes[name] = clone(data)
	return nil
}

// Get implements core.Repository.
func (r *Repository) Get(ctx context.Context, userID, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrNoteStorage, err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	data, ok := r.records[userID][name]
	if !ok {
		return nil, core.ErrNotFound
	}
	return clone(data), nil
}

// Rename implements core.Repository.
func (r *Repository) Rename(ctx context.Context, userID, oldName, newName string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", core.ErrNoteStorage, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	notes := r.records[userID]
	data, ok := notes[oldName]
	if !ok {
		return core.ErrNotFound
	}
	delete(notes, oldName)
	notes[newName] = data
	return nil
}

// Delete implements core.Repository.
func (r *Repository) Delete(ctx context.Context, userID, name string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", core.ErrNoteStorage, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	notes := r.records[userID]
	if _, ok := notes[name]; !ok {
		return core.ErrNotFound
	}
	delete(notes, name)
	if len(notes) == 0 {
		delete(r.records, userID)
	}
	return nil
}

// List implements core.Repository.
func (r *Repository) List(ctx context.Context, userID string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrNoteStorage, err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.records[userID]))
	for name := range r.records[userID] {
		names = append(names, name)
	}
	return names, nil
}

// Stats implements core.Repository.
func (r *Repository) Stats(ctx context.Context) (core.Stats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := core.Stats{Users: len(r.records)}
	for _, notes := range r.records {
		stats.Notes += len(notes)
	}
	return stats, nil
}

// Raw returns the stored record without copying. Tests use it to tamper with ciphertext.
func (r *Repository) Raw(userID, name string) ([]byte, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	data, ok := r.records[userID][name]
	return data, ok
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "memory_repository"
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
