// Package storage persists the family tree as a single opaque blob.
//
// The whole tree is one JSON document stored under one key. There is no
// schema, no per-member records and no migration: a [Backend] only knows how
// to get, set and delete bytes by key.
//
// # Backends
//
//   - memory: in-process map, for tests and throwaway sessions
//   - file: one JSON file per key in a directory (default for the CLI)
//   - redis: a string value per key (github.com/redis/go-redis/v9)
//   - mongo: one document per key (go.mongodb.org/mongo-driver)
//   - sqlite: one row per key in a blobs table (modernc.org/sqlite)
//
// Select one with [Open]:
//
//	backend, err := storage.Open(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer backend.Close()
//
// # Tree Store
//
// [TreeStore] layers the family tree on top of a backend. Loading never
// fails: a missing key, an unparseable blob, or a read error all fall back
// to family.Seed so the editor always has something to show.
//
//	store := storage.NewTreeStore(backend, cfg.Key, logger)
//	data := store.Load(ctx)
//	// ... edit ...
//	err := store.Save(ctx, tree.Data())
package storage
