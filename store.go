package utfall

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite" // Register the "sqlite" database/sql driver
)

// sqliteDriverName is the name modernc.org/sqlite registers with database/sql
const sqliteDriverName = "sqlite"

// OpenStore opens or creates the SQLite database file at path.
// The pool is limited to one connection: a run has exactly one writer.
func OpenStore(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, &SchemaError{Statement: "open " + path, Err: err}
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		closeErr := db.Close()
		if closeErr != nil {
			err = errors.Join(err, fmt.Errorf("failed to close database: %w", closeErr))
		}
		return nil, &SchemaError{Statement: "open " + path, Err: err}
	}
	return db, nil
}
