package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/aretw0/pasty/pkg/core"
)

var (
	okColor   = color.New(color.FgYellow)
	failColor = color.New(color.FgRed)
)

var errSaveFailed = errors.New("could not save file")

// noteError remembers which note a failure was about, for rendering only.
type noteError struct {
	name string
	err  error
}

func (e *noteError) Error() string { return fmt.Sprintf("note %q: %v", e.name, e.err) }
func (e *noteError) Unwrap() error { return e.err }

func aboutNote(name string, err error) error {
	if err == nil {
		return nil
	}
	return &noteError{name: name, err: err}
}

func success(w io.Writer, format string, a ...any) {
	okColor.Fprintf(w, format+"\n", a...)
}

func failure(w io.Writer, msg string) {
	failColor.Fprintln(w, msg)
}

// describe turns an error into a message safe to show a user.
// Storage failures never reveal paths, key bytes or ciphertext.
func describe(err error) string {
	name := "?"
	var ne *noteError
	if errors.As(err, &ne) {
		name = ne.name
	}

	switch {
	case errors.Is(err, core.ErrNotFound):
		return fmt.Sprintf("note '%s' not found.", name)
	case errors.Is(err, core.ErrDecryption):
		return fmt.Sprintf("note '%s' could not be decrypted.", name)
	case errors.Is(err, core.ErrInvalidName):
		return "invalid name: names must be non-empty and at most 120 bytes."
	case errors.Is(err, errSaveFailed):
		return fmt.Sprintf("note '%s' could not be saved.", name)
	case errors.Is(err, core.ErrReadOnly):
		return "the store is read-only."
	case errors.Is(err, core.ErrKeyStorage), errors.Is(err, core.ErrNoteStorage):
		return "storage is unavailable, try again later."
	default:
		return err.Error()
	}
}
