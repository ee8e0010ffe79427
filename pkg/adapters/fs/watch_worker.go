package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/pasty/pkg/core"
)

// Watch reports changes to note records, including ones made by other tools,
// and keeps the index honest while doing so. The channel closes when ctx is done.
//
// Overwrites land through an atomic rename and therefore surface as CREATE.
func (r *Repository) Watch(ctx context.Context) (<-chan core.Event, error) {
	if err := r.index.ensure(r.scan); err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrNoteStorage, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create watcher: %w", core.ErrNoteStorage, err)
	}

	w := &watchWorker{
		repo:    r,
		watcher: watcher,
		events:  make(chan core.Event, r.config.EventBuffer),
	}

	if err := w.addTree(); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("%w: %w", core.ErrNoteStorage, err)
	}

	r.setWatcherActive(true)

	lifecycle.Go(ctx, w.run, lifecycle.WithErrorHandler(func(err error) {
		w.handleError(fmt.Errorf("watcher panic: %w", err))
	}))

	return w.events, nil
}

type watchWorker struct {
	repo    *Repository
	watcher *fsnotify.Watcher
	events  chan core.Event
}

// addTree watches the notes directory and every user directory in it.
func (w *watchWorker) addTree() error {
	if err := w.watcher.Add(w.repo.Path); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.repo.Path, err)
	}

	entries, err := os.ReadDir(w.repo.Path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", w.repo.Path, err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, ok := decodeName(entry.Name()); !ok {
			continue
		}
		if err := w.watcher.Add(filepath.Join(w.repo.Path, entry.Name())); err != nil {
			return fmt.Errorf("failed to watch user directory: %w", err)
		}
	}
	return nil
}

func (w *watchWorker) run(ctx context.Context) error {
	defer close(w.events)
	defer w.repo.setWatcherActive(false)
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			w.process(ctx, event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.handleError(err)
		}
	}
}

// process maps one fsnotify event onto the index and the outgoing channel.
func (w *watchWorker) process(ctx context.Context, event fsnotify.Event) {
	w.repo.config.Logger.Debug("event received", "name", event.Name, "op", event.Op.String())

	if isTempFile(filepath.Base(event.Name)) {
		return
	}

	// A new user directory: watch it and pick up anything written before the watch existed.
	if event.Has(fsnotify.Create) && filepath.Dir(event.Name) == filepath.Clean(w.repo.Path) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			w.addUserDir(ctx, event.Name)
		}
		return
	}

	userID, name, ok := w.repo.resolve(event.Name)
	if !ok {
		return
	}
	w.reconcile(ctx, userID, name, event.Name, event.Op)
}

func (w *watchWorker) addUserDir(ctx context.Context, dir string) {
	if _, ok := decodeName(filepath.Base(dir)); !ok {
		return
	}
	if err := w.watcher.Add(dir); err != nil {
		w.handleError(fmt.Errorf("failed to watch user directory: %w", err))
		return
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		w.handleError(err)
		return
	}
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if userID, name, ok := w.repo.resolve(path); ok {
			w.reconcile(ctx, userID, name, path, fsnotify.Create)
		}
	}
}

// reconcile trusts the disk over the event: the file's presence decides the index entry.
func (w *watchWorker) reconcile(ctx context.Context, userID, name, path string, op fsnotify.Op) {
	var eType core.EventType

	if _, err := os.Stat(path); err == nil {
		w.repo.index.add(userID, name)
		switch {
		case op.Has(fsnotify.Create):
			eType = core.EventCreate
		case op.Has(fsnotify.Write):
			eType = core.EventModify
		default:
			return
		}
	} else if os.IsNotExist(err) {
		if !w.repo.index.remove(userID, name) && !op.Has(fsnotify.Remove) && !op.Has(fsnotify.Rename) {
			return
		}
		eType = core.EventDelete
	} else {
		w.handleError(err)
		return
	}

	select {
	case w.events <- core.Event{Type: eType, UserID: userID, Name: name, Timestamp: time.Now().Unix()}:
	case <-ctx.Done():
	}
}

// handleError processes errors from the fsnotify watcher.
// fsnotify errors carry paths, so the cause is only logged at debug.
func (w *watchWorker) handleError(err error) {
	w.repo.config.Logger.Error("watcher error", "error", core.ErrNoteStorage)
	w.repo.config.Logger.Debug("watcher error cause", "error", err)
	if w.repo.config.ErrorHandler != nil {
		w.repo.config.ErrorHandler(err)
	}
}

func (r *Repository) setWatcherActive(active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.watcherActive = active
}

func (r *Repository) isWatcherActive() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.watcherActive
}
