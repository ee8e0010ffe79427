package core

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
)

// Service is the façade the integration layer calls.
// It composes a KeyStore and a NoteStore and normalizes their outcomes.
type Service struct {
	keys   KeyStore
	repo   Repository
	notes  *NoteStore
	logger *slog.Logger
}

// NewService creates a new Service. A nil logger discards all output.
func NewService(keys KeyStore, repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		keys:   keys,
		repo:   repo,
		notes:  NewNoteStore(keys, repo),
		logger: logger,
	}
}

// GetOrCreateKey returns the user's key, generating it on first use.
func (s *Service) GetOrCreateKey(ctx context.Context, userID string) (Key, error) {
	if err := validateNames(userID); err != nil {
		return Key{}, err
	}
	key, err := s.keys.GetOrCreate(ctx, userID)
	if err != nil {
		s.report(ctx, "get key", userID, "", err)
		return Key{}, err
	}
	return key, nil
}

// CreateNote stores content under name, silently overwriting an existing note.
func (s *Service) CreateNote(ctx context.Context, userID, name, content string) error {
	err := s.notes.Write(ctx, userID, name, content)
	s.report(ctx, "create note", userID, name, err)
	return err
}

// ReadNote returns the decrypted content of a note.
func (s *Service) ReadNote(ctx context.Context, userID, name string) (string, error) {
	content, err := s.notes.Read(ctx, userID, name)
	s.report(ctx, "read note", userID, name, err)
	return content, err
}

// DownloadNote is ReadNote framed as a "<name>.txt" attachment.
func (s *Service) DownloadNote(ctx context.Context, userID, name string) (Attachment, error) {
	content, err := s.ReadNote(ctx, userID, name)
	if err != nil {
		return Attachment{}, err
	}
	return Attachment{
		Filename: name + ".txt",
		Content:  []byte(content),
	}, nil
}

// RenameNote changes a note's name. An existing note at newName is replaced.
func (s *Service) RenameNote(ctx context.Context, userID, oldName, newName string) error {
	err := s.notes.Rename(ctx, userID, oldName, newName)
	s.report(ctx, "rename note", userID, oldName, err)
	return err
}

// DeleteNote removes a note permanently.
func (s *Service) DeleteNote(ctx context.Context, userID, name string) error {
	err := s.notes.Delete(ctx, userID, name)
	s.report(ctx, "delete note", userID, name, err)
	return err
}

// ListNotes returns the user's note names sorted for display.
// A user without notes gets an empty, non-nil slice.
func (s *Service) ListNotes(ctx context.Context, userID string) ([]string, error) {
	names, err := s.notes.List(ctx, userID)
	if err != nil {
		s.report(ctx, "list notes", userID, "", err)
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	sort.Strings(names)
	return names, nil
}

// CountAllNotes returns the number of notes across every user.
// It exists for status reporting and must stay cheap.
func (s *Service) CountAllNotes(ctx context.Context) (int, error) {
	n, err := s.notes.Count(ctx)
	if err != nil {
		s.report(ctx, "count notes", "", "", err)
	}
	return n, err
}

// Stats returns aggregate counts across every user.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	stats, err := s.notes.Stats(ctx)
	if err != nil {
		s.report(ctx, "stats", "", "", err)
	}
	return stats, err
}

// Watch observes changes in the repository if supported.
func (s *Service) Watch(ctx context.Context) (<-chan Event, error) {
	w, ok := s.repo.(Watchable)
	if !ok {
		return nil, errors.New("repository does not support watching")
	}
	return w.Watch(ctx)
}

// report logs the outcome of an operation at a level matching the error class.
// Not-found is an expected outcome and stays at debug.
func (s *Service) report(ctx context.Context, op, userID, name string, err error) {
	if err == nil {
		s.logger.DebugContext(ctx, op, "user", userID, "note", name)
		return
	}

	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrInvalidName):
		s.logger.DebugContext(ctx, op+" rejected", "user", userID, "note", name, "reason", err)
	case errors.Is(err, ErrDecryption):
		s.logger.WarnContext(ctx, op+" failed", "user", userID, "note", name, "error", ErrDecryption)
	default:
		// Adapter causes can carry filesystem paths; they stay at debug.
		s.logger.ErrorContext(ctx, op+" failed", "user", userID, "error", failureClass(err))
		s.logger.DebugContext(ctx, op+" failure cause", "user", userID, "note", name, "error", err)
	}
}

var errUnclassified = errors.New("unclassified failure")

// failureClass reduces err to the sentinel it wraps.
func failureClass(err error) error {
	for _, class := range []error{ErrReadOnly, ErrKeyStorage, ErrNoteStorage} {
		if errors.Is(err, class) {
			return class
		}
	}
	return errUnclassified
}
