package memory_test

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/aretw0/pasty/pkg/adapters/memory"
	"github.com/aretw0/pasty/pkg/core"
)

func TestRepository(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository()
	require.NoError(t, repo.Initialize(ctx))

	data := []byte("sealed")
	require.NoError(t, repo.Put(ctx, "alice", "a", data))
	data[0] = 'X'

	got, err := repo.Get(ctx, "alice", "a")
	require.NoError(t, err)
	assert.Equal(t, "sealed", string(got), "Put must copy its input")

	got[0] = 'Y'
	raw, _ := repo.Raw("alice", "a")
	assert.Equal(t, "sealed", string(raw), "Get must return a copy")

	_, err = repo.Get(ctx, "bob", "a")
	assert.ErrorIs(t, err, core.ErrNotFound)

	require.NoError(t, repo.Rename(ctx, "alice", "a", "b"))
	assert.ErrorIs(t, repo.Rename(ctx, "alice", "a", "c"), core.ErrNotFound)
	assert.ErrorIs(t, repo.Rename(ctx, "nobody", "a", "c"), core.ErrNotFound)

	require.NoError(t, repo.Put(ctx, "alice", "c", nil))
	names, err := repo.List(ctx, "alice")
	require.NoError(t, err)
	sort.Strings(names)
	assert.Equal(t, []string{"b", "c"}, names)

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, core.Stats{Notes: 2, Users: 1}, stats)

	require.NoError(t, repo.Delete(ctx, "alice", "b"))
	require.NoError(t, repo.Delete(ctx, "alice", "c"))
	assert.ErrorIs(t, repo.Delete(ctx, "alice", "c"), core.ErrNotFound)

	stats, err = repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, core.Stats{}, stats)
}

func TestKeyStoreConcurrentFirstUse(t *testing.T) {
	ctx := context.Background()
	keys := memory.NewKeyStore()

	const workers = 32
	results := make([]core.Key, workers)

	var g errgroup.Group
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			key, err := keys.GetOrCreate(ctx, "alice")
			results[i] = key
			return err
		})
	}
	require.NoError(t, g.Wait())

	for _, key := range results[1:] {
		assert.Equal(t, results[0], key)
	}
	assert.Equal(t, 1, keys.Len())
}
