package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/aretw0/pasty/pkg/core"
)

// KeyStore keeps user keys in a map.
type KeyStore struct {
	mu   sync.Mutex
	keys map[string]core.Key
}

// NewKeyStore creates an empty KeyStore.
func NewKeyStore() *KeyStore {
	return &KeyStore{keys: make(map[string]core.Key)}
}

// GetOrCreate implements core.KeyStore.
func (k *KeyStore) GetOrCreate(ctx context.Context, userID string) (core.Key, error) {
	if err := ctx.Err(); err != nil {
		return core.Key{}, fmt.Errorf("%w: %w", core.ErrKeyStorage, err)
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	if key, ok := k.keys[userID]; ok {
		return key, nil
	}

	key, err := core.GenerateKey()
	if err != nil {
		return core.Key{}, fmt.Errorf("%w: %w", core.ErrKeyStorage, err)
	}
	k.keys[userID] = key
	return key, nil
}

// Len returns the number of keys held.
func (k *KeyStore) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.keys)
}

// ComponentType implements introspection.Component.
func (k *KeyStore) ComponentType() string {
	return "memory_key_store"
}
