// Package database provides SQLite connectivity for pdusim.
//
// The default store is in-memory, matching the simulator's contract
// that all state resets on restart. Pointing Config.Path at a file
// enables WAL mode and persists accounts and subscriptions across
// runs; live telemetry is never stored here either way.
//
// Tables are created through embedded, versioned migrations (see
// migrations.go) and use SQLite STRICT mode so a mistyped column
// fails loudly instead of coercing. Repositories always bind values
// with parameterised statements.
//
// Usage:
//
//	db, err := database.Open(ctx, database.Config{Path: ":memory:", BusyTimeout: 5})
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	if err := db.Migrate(ctx); err != nil {
//	    return err
//	}
//
// Migrations are additive: every file ships an .up.sql and a .down.sql
// pair, and new columns carry defaults so a rolled-back binary can
// still read the schema ahead of it.
package database
