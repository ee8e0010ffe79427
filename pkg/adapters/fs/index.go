package fs

import (
	"sync"
	"time"

	"github.com/aretw0/pasty/pkg/core"
)

// index mirrors which notes exist on disk so Stats never has to walk the tree.
// It is rebuilt from disk on first use and kept current by the repository's own
// writes and by the watcher. Mutations are idempotent, so a write and the
// watcher event it triggers can both be applied.
type index struct {
	mu          sync.RWMutex
	loaded      bool
	notes       map[string]map[string]struct{} // user -> note names
	count       int
	lastRebuild *time.Time
}

func newIndex() *index {
	return &index{notes: make(map[string]map[string]struct{})}
}

// ensure loads the index with scan unless it is already loaded.
func (i *index) ensure(scan func() (map[string]map[string]struct{}, error)) error {
	i.mu.RLock()
	loaded := i.loaded
	i.mu.RUnlock()
	if loaded {
		return nil
	}
	return i.rebuild(scan, false)
}

// rebuild replaces the index with a fresh scan. With force unset it is a no-op
// when another caller loaded the index first.
func (i *index) rebuild(scan func() (map[string]map[string]struct{}, error), force bool) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.loaded && !force {
		return nil
	}

	notes, err := scan()
	if err != nil {
		return err
	}

	count := 0
	for _, names := range notes {
		count += len(names)
	}

	now := time.Now()
	i.notes = notes
	i.count = count
	i.loaded = true
	i.lastRebuild = &now
	return nil
}

// add records a note. It reports whether the note was new to a loaded index.
func (i *index) add(userID, name string) bool {
	i.mu.Lock()
	defer i.mu.Unlock()

	if !i.loaded {
		return false
	}

	names, ok := i.notes[userID]
	if !ok {
		names = make(map[string]struct{})
		i.notes[userID] = names
	}
	if _, exists := names[name]; exists {
		return false
	}
	names[name] = struct{}{}
	i.count++
	return true
}

// remove forgets a note. It reports whether the note was present.
func (i *index) remove(userID, name string) bool {
	i.mu.Lock()
	defer i.mu.Unlock()

	if !i.loaded {
		return false
	}

	names := i.notes[userID]
	if _, exists := names[name]; !exists {
		return false
	}
	delete(names, name)
	if len(names) == 0 {
		delete(i.notes, userID)
	}
	i.count--
	return true
}

// move applies a rename.
func (i *index) move(userID, oldName, newName string) {
	i.remove(userID, oldName)
	i.add(userID, newName)
}

// stats returns the current counts. The index must be loaded.
func (i *index) stats() core.Stats {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return core.Stats{Notes: i.count, Users: len(i.notes)}
}

func (i *index) isLoaded() bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.loaded
}

func (i *index) rebuiltAt() *time.Time {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.lastRebuild
}
