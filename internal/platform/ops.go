package platform

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/aretw0/pasty/pkg/adapters/fs"
	"github.com/aretw0/pasty/pkg/adapters/memory"
	"github.com/aretw0/pasty/pkg/core"
)

type initializer interface {
	Initialize(ctx context.Context) error
}

// Init builds and initializes the key store and note repository selected by opts.
// The 'uri' argument is adapter-specific (the store root for 'fs', ignored by 'memory').
func Init(uri string, opts ...Option) (core.KeyStore, core.Repository, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return initStores(uri, o)
}

func initStores(uri string, o *options) (core.KeyStore, core.Repository, error) {
	keys, repo := o.keyStore, o.repository

	if keys == nil || repo == nil {
		var builtKeys core.KeyStore
		var builtRepo core.Repository
		var err error

		switch o.adapter {
		case "fs":
			builtKeys, builtRepo, err = initFS(uri, o)
		case "memory":
			builtKeys, builtRepo = memory.NewKeyStore(), memory.NewRepository()
		default:
			return nil, nil, fmt.Errorf("unknown adapter: %s", o.adapter)
		}
		if err != nil {
			return nil, nil, err
		}

		if keys == nil {
			keys = builtKeys
		}
		if repo == nil {
			repo = builtRepo
		}
	}

	ctx := context.Background()
	if in, ok := keys.(initializer); ok {
		if err := in.Initialize(ctx); err != nil {
			return nil, nil, err
		}
	}
	if err := repo.Initialize(ctx); err != nil {
		return nil, nil, err
	}

	return keys, repo, nil
}

// initFS handles the initialization logic for the filesystem adapter.
func initFS(root string, o *options) (*fs.KeyStore, *fs.Repository, error) {
	autoInit, _ := o.config["auto_init"].(bool)
	tempDir, _ := o.config["temp_dir"].(bool)
	mustExist, _ := o.config["must_exist"].(bool)
	isReadOnly, _ := o.config["read_only"].(bool)
	eventBuffer, _ := o.config["event_buffer"].(int)
	errorHandler, _ := o.config["watcher_error_handler"].(func(error))

	notesDir, _ := o.config["notes_dir"].(string)
	if notesDir == "" {
		notesDir = DefaultNotesDir
	}
	keysDir, _ := o.config["keys_dir"].(string)
	if keysDir == "" {
		keysDir = DefaultKeysDir
	}

	// Default to true (safe) if not present.
	devSafety := true
	if val, ok := o.config["dev_safety"].(bool); ok {
		devSafety = val
	}

	// Read-only access cannot damage anything, so it skips the sandbox.
	bypassSafety := isReadOnly || !devSafety

	useTemp := tempDir || (IsDevRun() && !bypassSafety)
	resolved := ResolveRoot(root, useTemp)

	if o.logger != nil {
		if IsDevRun() && bypassSafety && !isReadOnly {
			o.logger.Warn("running in UNSAFE mode (bypassing dev sandbox)")
			o.logger.Debug("unsafe store root", "path", resolved)
		}
		if useTemp && resolved != filepath.Clean(root) {
			o.logger.Warn("running in SAFE MODE (Dev/Test)")
			o.logger.Debug("store root re-rooted", "original_path", root, "resolved_path", resolved)
		}
	}

	mustExist = mustExist || (!autoInit && !useTemp)

	keys := fs.NewKeyStore(fs.KeyStoreConfig{
		Path:      filepath.Join(resolved, keysDir),
		MustExist: mustExist,
		ReadOnly:  isReadOnly,
		Logger:    o.logger,
	})

	repo := fs.NewRepository(fs.Config{
		Path:         filepath.Join(resolved, notesDir),
		MustExist:    mustExist,
		ReadOnly:     isReadOnly,
		Logger:       o.logger,
		EventBuffer:  eventBuffer,
		ErrorHandler: errorHandler,
	})

	return keys, repo, nil
}
