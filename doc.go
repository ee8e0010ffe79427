// Package pasty is the composition root for the pasty note store.
//
// It connects the core domain (per-user keys, sealed notes and the service
// that composes them) with the storage adapters.
//
// Every user owns one random 32-byte key, created on first use and never
// rotated. Notes are sealed with it (NaCl secretbox) before they reach
// storage, so the storage backend only ever holds ciphertext. Users cannot
// see, list or count each other's notes.
//
// The default adapter keeps everything under a single root directory:
//
//	<root>/user_keys/<hex(user)>.key
//	<root>/notes/<hex(user)>/<hex(name)>.note
//
// Usage:
//
//	svc, err := pasty.New("./store",
//		pasty.WithAutoInit(true),
//		pasty.WithLogger(logger),
//	)
//
//	err = svc.CreateNote(ctx, "alice", "groceries", "milk, eggs")
//	content, err := svc.ReadNote(ctx, "alice", "groceries")
package pasty
