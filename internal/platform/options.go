package platform

import (
	"log/slog"

	"github.com/aretw0/pasty/pkg/core"
)

const (
	// DefaultNotesDir is the notes directory under the store root.
	DefaultNotesDir = "notes"
	// DefaultKeysDir is the key directory under the store root.
	DefaultKeysDir = "user_keys"
)

// options holds the internal configuration for the pasty service.
type options struct {
	repository core.Repository
	keyStore   core.KeyStore
	logger     *slog.Logger
	adapter    string
	config     map[string]interface{}
}

// Option defines a functional option for configuring pasty.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		adapter: "fs",
		config:  make(map[string]interface{}),
	}
}

// WithAutoInit creates the store directories when they are missing.
func WithAutoInit(auto bool) Option {
	return func(o *options) {
		o.config["auto_init"] = auto
	}
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return func(o *options) {
		o.config["temp_dir"] = force
	}
}

// WithMustExist ensures the store directories must already exist.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.config["must_exist"] = must
	}
}

// WithLogger sets the logger for the service and its adapters.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRepository injects a note repository.
// If provided, the adapter's own repository is skipped.
func WithRepository(repo core.Repository) Option {
	return func(o *options) {
		o.repository = repo
	}
}

// WithKeyStore injects a key store.
// If provided, the adapter's own key store is skipped.
func WithKeyStore(keys core.KeyStore) Option {
	return func(o *options) {
		o.keyStore = keys
	}
}

// WithAdapter selects the storage adapter by name ("fs" or "memory").
// Defaults to "fs".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithNotesDir sets the notes directory name relative to the root.
func WithNotesDir(name string) Option {
	return func(o *options) {
		o.config["notes_dir"] = name
	}
}

// WithKeysDir sets the key directory name relative to the root.
func WithKeysDir(name string) Option {
	return func(o *options) {
		o.config["keys_dir"] = name
	}
}

// WithEventBuffer sets the size of the Watch channel buffer.
// Zero means default (100).
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.config["event_buffer"] = size
	}
}

// WithWatcherErrorHandler registers a callback for runtime watcher failures
// (e.g. permission denied) which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.config["watcher_error_handler"] = fn
	}
}

// WithReadOnly enables read-only mode.
// In this mode:
// 1. Writes and key generation return ErrReadOnly.
// 2. Directory creation is skipped.
// 3. Dev Safety Lock (go run temp dir) is BYPASSED (uses real path).
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.config["read_only"] = enabled
	}
}

// WithDevSafety controls the "Sandbox" safety mechanism when running via `go run`.
// By default (true), pasty forces a temporary directory so development runs
// never touch real keys.
//
// CAUTION: Only disable this if you are sure your code is safe.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.config["dev_safety"] = enabled
	}
}
