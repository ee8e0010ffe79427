package core

import (
	"context"
	"fmt"
)

// NoteStore encrypts, persists and enumerates notes, namespaced per user.
// Keys come from a KeyStore; sealed records go to a Repository.
type NoteStore struct {
	keys KeyStore
	repo Repository
}

// NewNoteStore creates a NoteStore over the given key store and repository.
func NewNoteStore(keys KeyStore, repo Repository) *NoteStore {
	return &NoteStore{keys: keys, repo: repo}
}

// Write seals plaintext under the user's key and stores it at (userID, name),
// replacing any previous content unconditionally.
func (s *NoteStore) Write(ctx context.Context, userID, name, plaintext string) error {
	if err := validateNames(userID, name); err != nil {
		return err
	}

	key, err := s.keys.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}

	record, err := Seal(key, []byte(plaintext))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNoteStorage, err)
	}

	return s.repo.Put(ctx, userID, name, record)
}

// Read returns the plaintext of (userID, name).
// A missing note is ErrNotFound; a record that fails to open is ErrDecryption.
func (s *NoteStore) Read(ctx context.Context, userID, name string) (string, error) {
	if err := validateNames(userID, name); err != nil {
		return "", err
	}

	record, err := s.repo.Get(ctx, userID, name)
	if err != nil {
		return "", err
	}

	key, err := s.keys.GetOrCreate(ctx, userID)
	if err != nil {
		return "", err
	}

	plaintext, err := Open(key, record)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// Rename moves the sealed record from oldName to newName without re-encrypting it.
func (s *NoteStore) Rename(ctx context.Context, userID, oldName, newName string) error {
	if err := validateNames(userID, oldName, newName); err != nil {
		return err
	}
	return s.repo.Rename(ctx, userID, oldName, newName)
}

// Delete removes (userID, name).
func (s *NoteStore) Delete(ctx context.Context, userID, name string) error {
	if err := validateNames(userID, name); err != nil {
		return err
	}
	return s.repo.Delete(ctx, userID, name)
}

// List returns every note name owned by userID, in no particular order.
func (s *NoteStore) List(ctx context.Context, userID string) ([]string, error) {
	if err := validateNames(userID); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, userID)
}

// Count returns the number of notes across all users.
func (s *NoteStore) Count(ctx context.Context) (int, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return 0, err
	}
	return stats.Notes, nil
}

// Stats returns aggregate counts across all users.
func (s *NoteStore) Stats(ctx context.Context) (Stats, error) {
	return s.repo.Stats(ctx)
}

func validateNames(userID string, names ...string) error {
	if userID == "" {
		return fmt.Errorf("%w: user id cannot be empty", ErrInvalidName)
	}
	for _, name := range names {
		if name == "" {
			return fmt.Errorf("%w: note name cannot be empty", ErrInvalidName)
		}
	}
	return nil
}
