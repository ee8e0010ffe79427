package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pasty.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
root: /srv/pasty
notes_dir: n
status_interval: 10s
servers: 3
log_level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/pasty", cfg.Root)
	assert.Equal(t, "n", cfg.NotesDir)
	assert.Equal(t, "user_keys", cfg.KeysDir)
	assert.Equal(t, 10*time.Second, cfg.StatusInterval)
	assert.Equal(t, 3, cfg.Servers)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoadEmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"Unknown Key", "privacy: true\n"},
		{"Bad Duration", "status_interval: soon\n"},
		{"Negative Servers", "servers: -1\n"},
		{"Nested Notes Dir", "notes_dir: a/b\n"},
		{"Same Dirs", "notes_dir: data\nkeys_dir: data\n"},
		{"Bad Level", "log_level: loud\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}
