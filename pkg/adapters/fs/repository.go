package fs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/pasty/pkg/core"
)

// Repository implements core.Repository on the local filesystem.
//
// Layout:
//
//	<Path>/<hex(user)>/<hex(name)>.note
//
// Every write goes through a temp file in the same directory followed by a
// rename, so readers observe either the old record or the new one.
type Repository struct {
	Path   string
	config Config
	index  *index

	mu            sync.RWMutex
	watcherActive bool
}

// Config holds the configuration for the filesystem repository.
type Config struct {
	Path         string
	MustExist    bool
	ReadOnly     bool
	Logger       *slog.Logger
	EventBuffer  int         // Size of the Watch channel buffer. Zero means 100.
	ErrorHandler func(error) // Receives watcher runtime errors. Optional.
}

// NewRepository creates a new filesystem-backed repository.
func NewRepository(config Config) *Repository {
	if config.Logger == nil {
		config.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if config.EventBuffer <= 0 {
		config.EventBuffer = 100
	}
	return &Repository{
		Path:   config.Path,
		config: config,
		index:  newIndex(),
	}
}

// Initialize creates the notes directory unless MustExist or ReadOnly is set.
func (r *Repository) Initialize(ctx context.Context) error {
	if r.config.MustExist || r.config.ReadOnly {
		info, err := os.Stat(r.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: notes path does not exist", core.ErrNoteStorage)
		}
		if err != nil {
			return fmt.Errorf("%w: %w", core.ErrNoteStorage, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("%w: notes path is not a directory", core.ErrNoteStorage)
		}
		return nil
	}

	if err := os.MkdirAll(r.Path, dirPerm); err != nil {
		return fmt.Errorf("%w: failed to create notes directory: %w", core.ErrNoteStorage, err)
	}
	return nil
}

// Put atomically writes a sealed record.
func (r *Repository) Put(ctx context.Context, userID, name string, data []byte) error {
	if err := r.checkWrite(ctx); err != nil {
		return err
	}

	dir, path, err := r.notePath(userID, name)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("%w: failed to create user directory: %w", core.ErrNoteStorage, err)
	}

	if err := writeFileAtomic(path, data, filePerm); err != nil {
		return fmt.Errorf("%w: %w", core.ErrNoteStorage, err)
	}

	r.index.add(userID, name)
	return nil
}

// Get reads a sealed record.
func (r *Repository) Get(ctx context.Context, userID, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrNoteStorage, err)
	}

	_, path, err := r.notePath(userID, name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %w", core.ErrNoteStorage, err)
	}
	return data, nil
}

// Rename moves a record with a single rename(2). A missing source surfaces as
// ENOENT, so there is no window between the existence check and the move.
func (r *Repository) Rename(ctx context.Context, userID, oldName, newName string) error {
	if err := r.checkWrite(ctx); err != nil {
		return err
	}

	_, oldPath, err := r.notePath(userID, oldName)
	if err != nil {
		return err
	}
	_, newPath, err := r.notePath(userID, newName)
	if err != nil {
		return err
	}

	if err := os.Rename(oldPath, newPath); err != nil {
		if os.IsNotExist(err) {
			return core.ErrNotFound
		}
		return fmt.Errorf("%w: %w", core.ErrNoteStorage, err)
	}

	r.index.move(userID, oldName, newName)
	return nil
}

// Delete removes a record.
func (r *Repository) Delete(ctx context.Context, userID, name string) error {
	if err := r.checkWrite(ctx); err != nil {
		return err
	}

	_, path, err := r.notePath(userID, name)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return core.ErrNotFound
		}
		return fmt.Errorf("%w: %w", core.ErrNoteStorage, err)
	}

	r.index.remove(userID, name)
	return nil
}

// List returns the names of every record in the user's directory.
func (r *Repository) List(ctx context.Context, userID string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrNoteStorage, err)
	}

	dir, err := r.userDir(userID)
	if err != nil {
		return nil, err
	}

	names, err := readNoteNames(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrNoteStorage, err)
	}

	out := make([]string, 0, len(names))
	for name := range names {
		out = append(out, name)
	}
	return out, nil
}

// Stats answers from the in-memory index, scanning the disk only the first time.
func (r *Repository) Stats(ctx context.Context) (core.Stats, error) {
	if err := ctx.Err(); err != nil {
		return core.Stats{}, fmt.Errorf("%w: %w", core.ErrNoteStorage, err)
	}

	if err := r.index.ensure(r.scan); err != nil {
		return core.Stats{}, fmt.Errorf("%w: %w", core.ErrNoteStorage, err)
	}
	return r.index.stats(), nil
}

// Reindex discards the in-memory index and rebuilds it from disk.
func (r *Repository) Reindex(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	start := time.Now()
	if err := r.index.rebuild(r.scan, true); err != nil {
		return fmt.Errorf("%w: %w", core.ErrNoteStorage, err)
	}
	r.config.Logger.Debug("index rebuilt", "notes", r.index.stats().Notes, "took", time.Since(start))
	return nil
}

// scan walks the notes directory and returns every note grouped by user.
func (r *Repository) scan() (map[string]map[string]struct{}, error) {
	notes := make(map[string]map[string]struct{})

	entries, err := os.ReadDir(r.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return notes, nil
		}
		return nil, err
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		userID, ok := decodeName(entry.Name())
		if !ok {
			continue
		}

		names, err := readNoteNames(filepath.Join(r.Path, entry.Name()))
		if err != nil {
			return nil, err
		}
		if len(names) > 0 {
			notes[userID] = names
		}
	}
	return notes, nil
}

// readNoteNames decodes the note files in dir. A missing dir holds no notes.
func readNoteNames(dir string) (map[string]struct{}, error) {
	names := make(map[string]struct{})

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return names, nil
		}
		return nil, err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if name, ok := decodeNoteFile(entry.Name()); ok {
			names[name] = struct{}{}
		}
	}
	return names, nil
}

func (r *Repository) checkWrite(ctx context.Context) error {
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", core.ErrNoteStorage, err)
	}
	return nil
}

func (r *Repository) userDir(userID string) (string, error) {
	enc, err := encodeName(userID)
	if err != nil {
		return "", err
	}
	return filepath.Join(r.Path, enc), nil
}

func (r *Repository) notePath(userID, name string) (dir, path string, err error) {
	dir, err = r.userDir(userID)
	if err != nil {
		return "", "", err
	}
	enc, err := encodeName(name)
	if err != nil {
		return "", "", err
	}
	return dir, filepath.Join(dir, enc+NoteExt), nil
}

// resolve maps a path inside the notes directory back to its (user, name) pair.
func (r *Repository) resolve(path string) (userID, name string, ok bool) {
	rel, err := filepath.Rel(r.Path, path)
	if err != nil {
		return "", "", false
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) != 2 {
		return "", "", false
	}

	userID, ok = decodeName(parts[0])
	if !ok {
		return "", "", false
	}
	name, ok = decodeNoteFile(parts[1])
	if !ok {
		return "", "", false
	}
	return userID, name, true
}
