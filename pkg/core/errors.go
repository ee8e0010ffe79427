package core

import "errors"

// Common errors.
var (
	// ErrNotFound indicates the requested note does not exist for this user.
	ErrNotFound = errors.New("note not found")

	// ErrDecryption indicates a stored record could not be opened with the user's key.
	// The record is corrupted, truncated, or was sealed under a different key.
	ErrDecryption = errors.New("note could not be decrypted")

	// ErrKeyStorage indicates the key store could not read or persist a key.
	ErrKeyStorage = errors.New("key storage failure")

	// ErrNoteStorage indicates the note repository could not read or persist a record.
	ErrNoteStorage = errors.New("note storage failure")

	// ErrInvalidName indicates an empty or unrepresentable user id or note name.
	ErrInvalidName = errors.New("invalid name")

	// ErrReadOnly indicates a write was attempted against a read-only store.
	ErrReadOnly = errors.New("store is in read-only mode")
)
