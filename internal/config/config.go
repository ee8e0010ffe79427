// Package config loads the optional pasty.yaml file that sits at a store root.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config mirrors pasty.yaml. Zero fields fall back to Default.
type Config struct {
	Root           string        `yaml:"root"`
	NotesDir       string        `yaml:"notes_dir"`
	KeysDir        string        `yaml:"keys_dir"`
	StatusInterval time.Duration `yaml:"status_interval"`
	Servers        int           `yaml:"servers"`
	LogLevel       string        `yaml:"log_level"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Root:           ".",
		NotesDir:       "notes",
		KeysDir:        "user_keys",
		StatusInterval: 5 * time.Second,
		Servers:        1,
		LogLevel:       "warn",
	}
}

// Load reads path over Default. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	var file Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	cfg.merge(file)
	return cfg, cfg.Validate()
}

func (c *Config) merge(o Config) {
	if o.Root != "" {
		c.Root = o.Root
	}
	if o.NotesDir != "" {
		c.NotesDir = o.NotesDir
	}
	if o.KeysDir != "" {
		c.KeysDir = o.KeysDir
	}
	if o.StatusInterval != 0 {
		c.StatusInterval = o.StatusInterval
	}
	if o.Servers != 0 {
		c.Servers = o.Servers
	}
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
}

// Validate rejects values no component can work with.
func (c Config) Validate() error {
	if c.StatusInterval < 0 {
		return fmt.Errorf("status_interval must be positive, got %s", c.StatusInterval)
	}
	if c.Servers < 0 {
		return fmt.Errorf("servers must not be negative, got %d", c.Servers)
	}
	for field, dir := range map[string]string{"notes_dir": c.NotesDir, "keys_dir": c.KeysDir} {
		if strings.ContainsAny(dir, `/\`) || dir == ".." || dir == "." {
			return fmt.Errorf("%s must be a plain directory name, got %q", field, dir)
		}
	}
	if c.NotesDir == c.KeysDir {
		return fmt.Errorf("notes_dir and keys_dir must differ")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel ("debug", "info", "warn", "error").
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelWarn, fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	return level, nil
}
