package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/singleflight"

	"github.com/aretw0/pasty/pkg/core"
)

// KeyStore implements core.KeyStore with one raw key file per user:
//
//	<Path>/<hex(user)>.key
//
// A new key is published with link(2) from a fully written temp file, which
// fails if another writer got there first. The loser re-reads the winner's key,
// so concurrent first use always converges on a single persisted key.
type KeyStore struct {
	Path   string
	config KeyStoreConfig
	group  singleflight.Group
}

// KeyStoreConfig holds the configuration for the filesystem key store.
type KeyStoreConfig struct {
	Path      string
	MustExist bool
	ReadOnly  bool
	Logger    *slog.Logger
}

// NewKeyStore creates a new filesystem-backed key store.
func NewKeyStore(config KeyStoreConfig) *KeyStore {
	if config.Logger == nil {
		config.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &KeyStore{
		Path:   config.Path,
		config: config,
	}
}

// Initialize creates the keys directory unless MustExist or ReadOnly is set.
func (k *KeyStore) Initialize(ctx context.Context) error {
	if k.config.MustExist || k.config.ReadOnly {
		info, err := os.Stat(k.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: keys path does not exist", core.ErrKeyStorage)
		}
		if err != nil {
			return fmt.Errorf("%w: %w", core.ErrKeyStorage, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("%w: keys path is not a directory", core.ErrKeyStorage)
		}
		return nil
	}

	if err := os.MkdirAll(k.Path, dirPerm); err != nil {
		return fmt.Errorf("%w: failed to create keys directory: %w", core.ErrKeyStorage, err)
	}
	return nil
}

// GetOrCreate implements core.KeyStore.
func (k *KeyStore) GetOrCreate(ctx context.Context, userID string) (core.Key, error) {
	if err := ctx.Err(); err != nil {
		return core.Key{}, fmt.Errorf("%w: %w", core.ErrKeyStorage, err)
	}

	enc, err := encodeName(userID)
	if err != nil {
		return core.Key{}, err
	}
	path := filepath.Join(k.Path, enc+KeyExt)

	// Callers in this process share one lookup per user; the link below
	// settles races with anything the group cannot see.
	v, err, _ := k.group.Do(enc, func() (any, error) {
		return k.loadOrCreate(path, userID)
	})
	if err != nil {
		return core.Key{}, err
	}
	return v.(core.Key), nil
}

func (k *KeyStore) loadOrCreate(path, userID string) (core.Key, error) {
	key, err := readKey(path)
	if err == nil {
		return key, nil
	}
	if !os.IsNotExist(err) {
		return core.Key{}, fmt.Errorf("%w: %w", core.ErrKeyStorage, err)
	}

	if k.config.ReadOnly {
		return core.Key{}, fmt.Errorf("%w: %w", core.ErrKeyStorage, core.ErrReadOnly)
	}

	key, err = core.GenerateKey()
	if err != nil {
		return core.Key{}, fmt.Errorf("%w: %w", core.ErrKeyStorage, err)
	}

	if err := linkFileExclusive(path, key[:], filePerm); err != nil {
		if !errors.Is(err, os.ErrExist) {
			return core.Key{}, fmt.Errorf("%w: %w", core.ErrKeyStorage, err)
		}
		k.config.Logger.Debug("key created concurrently, using existing", "user", userID)
		key, err = readKey(path)
		if err != nil {
			return core.Key{}, fmt.Errorf("%w: %w", core.ErrKeyStorage, err)
		}
		return key, nil
	}

	k.config.Logger.Info("generated key", "user", userID)
	return key, nil
}

// readKey loads a key record. A record of the wrong length is corrupt and is
// reported, never replaced.
func readKey(path string) (core.Key, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return core.Key{}, err
	}
	if len(data) != core.KeySize {
		return core.Key{}, fmt.Errorf("key record has %d bytes, want %d", len(data), core.KeySize)
	}
	var key core.Key
	copy(key[:], data)
	return key, nil
}
