package core

import (
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
)

const (
	// recordVersion prefixes every sealed record so the framing can evolve.
	recordVersion byte = 0x01

	nonceSize = 24

	// recordOverhead is the number of bytes a sealed record adds to its plaintext.
	recordOverhead = 1 + nonceSize + secretbox.Overhead
)

// GenerateKey returns a new key read from crypto/rand.
func GenerateKey() (Key, error) {
	var key Key
	if _, err := io.ReadFull(rand.Reader, key[:]); err != nil {
		return Key{}, fmt.Errorf("generate key: %w", err)
	}
	return key, nil
}

// Seal encrypts plaintext under key with a fresh random nonce.
// The record layout is: version (1 byte) || nonce (24 bytes) || secretbox output.
func Seal(key Key, plaintext []byte) ([]byte, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	out := make([]byte, 0, recordOverhead+len(plaintext))
	out = append(out, recordVersion)
	out = append(out, nonce[:]...)

	k := [KeySize]byte(key)
	return secretbox.Seal(out, plaintext, &nonce, &k), nil
}

// Open authenticates and decrypts a record produced by Seal.
// Every failure, including an unknown version or a truncated record, is ErrDecryption.
func Open(key Key, record []byte) ([]byte, error) {
	if len(record) < recordOverhead {
		return nil, fmt.Errorf("%w: record too short", ErrDecryption)
	}
	if record[0] != recordVersion {
		return nil, fmt.Errorf("%w: unsupported record version %d", ErrDecryption, record[0])
	}

	var nonce [nonceSize]byte
	copy(nonce[:], record[1:1+nonceSize])

	k := [KeySize]byte(key)
	plaintext, ok := secretbox.Open(nil, record[1+nonceSize:], &nonce, &k)
	if !ok {
		return nil, fmt.Errorf("%w: authentication failed", ErrDecryption)
	}
	if plaintext == nil {
		plaintext = []byte{}
	}
	return plaintext, nil
}
