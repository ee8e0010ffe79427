package platform_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/pasty/internal/platform"
	"github.com/aretw0/pasty/pkg/adapters/fs"
	"github.com/aretw0/pasty/pkg/adapters/memory"
	"github.com/aretw0/pasty/pkg/core"
)

func TestInit(t *testing.T) {
	t.Run("AutoInit=true Creates Layout", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "store")

		keys, repo, err := platform.Init(root, platform.WithAutoInit(true), platform.WithForceTemp(true))
		require.NoError(t, err)

		fsKeys, ok := keys.(*fs.KeyStore)
		require.True(t, ok, "expected fs key store")
		fsRepo, ok := repo.(*fs.Repository)
		require.True(t, ok, "expected fs repository")

		assert.Equal(t, filepath.Join(root, platform.DefaultKeysDir), fsKeys.Path)
		assert.Equal(t, filepath.Join(root, platform.DefaultNotesDir), fsRepo.Path)

		for _, dir := range []string{fsKeys.Path, fsRepo.Path} {
			info, err := os.Stat(dir)
			require.NoError(t, err)
			assert.True(t, info.IsDir())
		}
	})

	t.Run("Custom Directory Names", func(t *testing.T) {
		root := t.TempDir()

		keys, repo, err := platform.Init(root,
			platform.WithAutoInit(true),
			platform.WithKeysDir("k"),
			platform.WithNotesDir("n"),
		)
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(root, "k"), keys.(*fs.KeyStore).Path)
		assert.Equal(t, filepath.Join(root, "n"), repo.(*fs.Repository).Path)
	})

	t.Run("AutoInit=false Fails if Directory Missing", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "missing")

		_, _, err := platform.Init(root, platform.WithAutoInit(false), platform.WithMustExist(true), platform.WithForceTemp(true))
		assert.Error(t, err)
	})

	t.Run("Memory Adapter", func(t *testing.T) {
		keys, repo, err := platform.Init("", platform.WithAdapter("memory"))
		require.NoError(t, err)

		assert.IsType(t, &memory.KeyStore{}, keys)
		assert.IsType(t, &memory.Repository{}, repo)
	})

	t.Run("Unknown Adapter", func(t *testing.T) {
		_, _, err := platform.Init("", platform.WithAdapter("s3"))
		assert.ErrorContains(t, err, "unknown adapter")
	})

	t.Run("Injected Stores Win", func(t *testing.T) {
		keys := memory.NewKeyStore()
		repo := memory.NewRepository()

		gotKeys, gotRepo, err := platform.Init(t.TempDir(),
			platform.WithKeyStore(keys),
			platform.WithRepository(repo),
		)
		require.NoError(t, err)
		assert.Same(t, keys, gotKeys)
		assert.Same(t, repo, gotRepo)
	})
}

func TestNew(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()

	svc, err := platform.New(root, platform.WithAutoInit(true))
	require.NoError(t, err)

	require.NoError(t, svc.CreateNote(ctx, "alice", "todo", "buy milk"))

	t.Run("Reopen With MustExist", func(t *testing.T) {
		again, err := platform.New(root, platform.WithMustExist(true))
		require.NoError(t, err)

		got, err := again.ReadNote(ctx, "alice", "todo")
		require.NoError(t, err)
		assert.Equal(t, "buy milk", got)
	})

	t.Run("Read Only", func(t *testing.T) {
		ro, err := platform.New(root, platform.WithReadOnly(true))
		require.NoError(t, err)

		got, err := ro.ReadNote(ctx, "alice", "todo")
		require.NoError(t, err)
		assert.Equal(t, "buy milk", got)

		err = ro.CreateNote(ctx, "alice", "other", "x")
		assert.ErrorIs(t, err, core.ErrReadOnly)
	})
}
