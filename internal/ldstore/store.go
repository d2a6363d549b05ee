// internal/ldstore/store.go
package ldstore

import (
	"context"
	"database/sql"
	"os"
	"strconv"

	_ "modernc.org/sqlite" // register pure-Go SQLite driver

	"ldmat/internal/sparse"
)

const schema = `
CREATE TABLE IF NOT EXISTS ld_matrix (
    id1 INTEGER NOT NULL,
    id2 INTEGER NOT NULL,
    r2  REAL NOT NULL,
    PRIMARY KEY (id1, id2)
);
CREATE TABLE IF NOT EXISTS ld_meta (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// Open opens a SQLite database using the modernc.org/sqlite driver.
// Pass a file path, or ":memory:" for an in-memory database.
func Open(dsn string) (*sql.DB, error) { return sql.Open("sqlite", dsn) }

// EnsureSchema creates the matrix tables if they do not already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}

// Save writes the triplets into ld_matrix with 1-based variant ids and
// records the matrix dimension under the ld_meta key "nsnp". Everything
// happens in one transaction.
func Save(ctx context.Context, db *sql.DB, nsnp int, trips []sparse.Triplet) error {
	if err := EnsureSchema(db); err != nil {
		return err
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO ld_matrix(id1, id2, r2) VALUES(?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, t := range trips {
		if _, err := stmt.ExecContext(ctx, t.Row+1, t.Col+1, t.Val); err != nil {
			return err
		}
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO ld_meta(key, value) VALUES('nsnp', ?)`,
		strconv.Itoa(nsnp)); err != nil {
		return err
	}
	return tx.Commit()
}

// SaveFile writes the matrix to a fresh database file at path, replacing
// any previous file.
func SaveFile(ctx context.Context, path string, nsnp int, trips []sparse.Triplet) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	db, err := Open(path)
	if err != nil {
		return err
	}
	defer db.Close()
	return Save(ctx, db, nsnp, trips)
}
