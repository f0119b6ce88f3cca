// Package database provides SurrealDB connectivity for the back-office API.
//
// The Database interface abstracts query execution so repositories can be
// tested against fakes:
//
//   - Query: one {status, result} entry per statement
//   - QueryOne: the first record of the first statement, or ErrNotFound
//   - Execute: mutations where the result is not needed
//
// Server errors are mapped onto sentinels (ErrNotFound, ErrDuplicate,
// ErrConnection, ErrQuery); check them with errors.Is. A unique index
// violation surfaces as ErrDuplicate.
//
// Traced decorates any Database with OpenTelemetry client spans, and
// AtomicBatch groups statements into a single BEGIN/COMMIT block.
//
//	db := database.NewSurrealDB(database.Config{Scheme: "ws", Host: "localhost", Port: "8000", ...})
//	if err := db.Connect(ctx); err != nil { ... }
//	defer db.Close()
package database
