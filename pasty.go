package pasty

import (
	"log/slog"

	"github.com/aretw0/pasty/internal/platform"
	"github.com/aretw0/pasty/pkg/core"
)

// Version is the release of the library and CLI.
const Version = "0.1.0"

// --- Configuration ---

// Option defines a functional option for configuring pasty.
type Option = platform.Option

// WithAutoInit creates the store directories when they are missing.
func WithAutoInit(auto bool) Option {
	return platform.WithAutoInit(auto)
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithMustExist ensures the store directories must already exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithRepository allows injecting a custom note repository.
func WithRepository(repo core.Repository) Option {
	return platform.WithRepository(repo)
}

// WithKeyStore allows injecting a custom key store.
func WithKeyStore(keys core.KeyStore) Option {
	return platform.WithKeyStore(keys)
}

// WithAdapter selects the storage adapter by name ("fs" or "memory").
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithNotesDir sets the notes directory name under the root.
func WithNotesDir(name string) Option {
	return platform.WithNotesDir(name)
}

// WithKeysDir sets the key directory name under the root.
func WithKeysDir(name string) Option {
	return platform.WithKeysDir(name)
}

// WithEventBuffer sets the size of the Watch channel buffer.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithWatcherErrorHandler registers a callback for runtime watcher failures.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// WithReadOnly opens the store without permission to write notes or create keys.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithDevSafety controls the go run / go test sandbox.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// --- Factory ---

// New creates a new note service rooted at path.
func New(path string, opts ...Option) (*core.Service, error) {
	return platform.New(path, opts...)
}

// Init builds the key store and note repository explicitly.
func Init(path string, opts ...Option) (core.KeyStore, core.Repository, error) {
	return platform.Init(path, opts...)
}

// --- Safety & Utils ---

// ResolveRoot determines the actual store root based on safety rules.
func ResolveRoot(userPath string, forceTemp bool) string {
	return platform.ResolveRoot(userPath, forceTemp)
}

// IsDevRun checks if the current process is running via `go run` or `go test`.
func IsDevRun() bool {
	return platform.IsDevRun()
}

// FindRoot looks upwards for a store root indicator.
func FindRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}
