package pasty_test

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/aretw0/pasty"
	"github.com/aretw0/pasty/pkg/core"
)

// Example_basic demonstrates how to open a store, save a note, and read it back.
func Example_basic() {
	tmpDir, err := os.MkdirTemp("", "pasty-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	svc, err := pasty.New(tmpDir, pasty.WithAutoInit(true))
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	if err := svc.CreateNote(ctx, "alice", "groceries", "milk, eggs"); err != nil {
		log.Fatal(err)
	}

	content, err := svc.ReadNote(ctx, "alice", "groceries")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(content)
	// Output:
	// milk, eggs
}

// Example_isolation shows that notes are scoped to their owner.
func Example_isolation() {
	svc, err := pasty.New("", pasty.WithAdapter("memory"))
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	_ = svc.CreateNote(ctx, "alice", "diary", "secret")

	_, err = svc.ReadNote(ctx, "bob", "diary")
	fmt.Println(errors.Is(err, core.ErrNotFound))

	names, _ := svc.ListNotes(ctx, "bob")
	fmt.Println(len(names))
	// Output:
	// true
	// 0
}
