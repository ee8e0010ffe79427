package fs

import (
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/pasty/pkg/core"
)

const (
	// NoteExt is the extension of a sealed note record.
	NoteExt = ".note"

	// KeyExt is the extension of a user key record.
	KeyExt = ".key"

	// maxEncodedLen keeps encoded names plus extension under the common 255-byte
	// filename limit.
	maxEncodedLen = 240

	dirPerm  = 0o700
	filePerm = 0o600
)

// tempPattern matches in-flight atomic writes.
var tempPattern = TempFilePrefix + "*"

// encodeName maps an arbitrary user id or note name to a single path segment.
// Lowercase hex is reversible, separator-free and safe on case-insensitive filesystems.
func encodeName(s string) (string, error) {
	if s == "" {
		return "", fmt.Errorf("%w: empty name", core.ErrInvalidName)
	}
	enc := hex.EncodeToString([]byte(s))
	if len(enc) > maxEncodedLen {
		return "", fmt.Errorf("%w: name longer than %d bytes", core.ErrInvalidName, maxEncodedLen/2)
	}
	return enc, nil
}

// decodeName reverses encodeName. ok is false for anything encodeName cannot produce.
func decodeName(seg string) (string, bool) {
	if seg == "" || seg != strings.ToLower(seg) {
		return "", false
	}
	raw, err := hex.DecodeString(seg)
	if err != nil || len(raw) == 0 {
		return "", false
	}
	return string(raw), true
}

// decodeNoteFile returns the note name stored in a file base name.
func decodeNoteFile(base string) (string, bool) {
	if isTempFile(base) || filepath.Ext(base) != NoteExt {
		return "", false
	}
	return decodeName(strings.TrimSuffix(base, NoteExt))
}

func isTempFile(base string) bool {
	ok, _ := doublestar.Match(tempPattern, base)
	return ok
}
