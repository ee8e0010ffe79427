package core

import (
	"bytes"
	"errors"
	"testing"
)

func testKey(b byte) Key {
	var k Key
	copy(k[:], bytes.Repeat([]byte{b}, KeySize))
	return k
}

func TestSealOpen_RoundTrip(t *testing.T) {
	key := testKey(0x01)

	for _, plaintext := range []string{"", "hello", "multi\nline\nnote", string(bytes.Repeat([]byte("x"), 4096))} {
		record, err := Seal(key, []byte(plaintext))
		if err != nil {
			t.Fatalf("Seal() error = %v", err)
		}
		if len(record) != recordOverhead+len(plaintext) {
			t.Fatalf("Seal() len = %d, want %d", len(record), recordOverhead+len(plaintext))
		}

		got, err := Open(key, record)
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		if string(got) != plaintext {
			t.Fatalf("Open() = %q, want %q", got, plaintext)
		}
	}
}

func TestSeal_NonDeterministic(t *testing.T) {
	key := testKey(0x02)

	a, err := Seal(key, []byte("same"))
	if err != nil {
		t.Fatalf("Seal() error = %v", err)
	}
	b, err := Seal(key, []byte("same"))
	if err != nil {
		t.Fatalf("Seal() error = %v", err)
	}
	if bytes.Equal(a, b) {
		t.Fatal("Seal() produced identical records for the same plaintext")
	}
}

func TestOpen_WrongKey(t *testing.T) {
	record, err := Seal(testKey(0x03), []byte("secret"))
	if err != nil {
		t.Fatalf("Seal() error = %v", err)
	}

	if _, err := Open(testKey(0x04), record); !errors.Is(err, ErrDecryption) {
		t.Fatalf("Open() error = %v, want ErrDecryption", err)
	}
}

func TestOpen_Tampered(t *testing.T) {
	key := testKey(0x05)
	record, err := Seal(key, []byte("do not touch"))
	if err != nil {
		t.Fatalf("Seal() error = %v", err)
	}

	for i := range record {
		tampered := bytes.Clone(record)
		tampered[i] ^= 0xff
		if _, err := Open(key, tampered); !errors.Is(err, ErrDecryption) {
			t.Fatalf("Open() with byte %d flipped: error = %v, want ErrDecryption", i, err)
		}
	}
}

func TestOpen_Truncated(t *testing.T) {
	key := testKey(0x06)
	record, err := Seal(key, []byte("short"))
	if err != nil {
		t.Fatalf("Seal() error = %v", err)
	}

	for _, n := range []int{0, 1, recordOverhead - 1, len(record) - 1} {
		if _, err := Open(key, record[:n]); !errors.Is(err, ErrDecryption) {
			t.Fatalf("Open() with %d bytes: error = %v, want ErrDecryption", n, err)
		}
	}
}

func TestGenerateKey_Unique(t *testing.T) {
	a, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error = %v", err)
	}
	b, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error = %v", err)
	}
	if a == b {
		t.Fatal("GenerateKey() returned the same key twice")
	}
	if a == (Key{}) {
		t.Fatal("GenerateKey() returned the zero key")
	}
}
