// Package store provides SQLite-backed persistence for the audiobook
// catalog: the schema manager, the get-or-create entity resolvers, and the
// read-side queries the report is assembled from.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"strings"

	"github.com/audiologapp/audiolog/internal/errors"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// queryer is satisfied by both *sql.DB and *sql.Tx, so every resolver works
// identically inside and outside an ingestion transaction.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Queries is the session handle passed to every component within one run.
// It is bound either to the store's connection or to one transaction.
type Queries struct {
	db     queryer
	logger *slog.Logger
}

// Store provides SQLite-backed persistence for the catalog.
type Store struct {
	*Queries
	db *sql.DB
}

// Open creates a new SQLite store at the given path.
// It configures pragmas, verifies foreign-key enforcement, runs the schema,
// and seeds the static reference rows.
func Open(path string, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// Ingestion is a batch, exclusive operation; one connection keeps the
	// lookup-then-insert resolvers single-writer.
	db.SetMaxOpenConns(1)

	// The foreign_keys pragma has no effect inside an open transaction,
	// so it is issued here, before any transaction begins.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", pragma, err)
		}
	}

	if err := verifyForeignKeys(db); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("exec schema: %w", err)
	}

	s := &Store{
		Queries: &Queries{db: db, logger: logger},
		db:      db,
	}

	if err := s.seed(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("seed reference rows: %w", err)
	}

	return s, nil
}

// verifyForeignKeys reads the foreign_keys pragma back and fails unless it
// reports enabled. Trusting the earlier PRAGMA statement is not enough; the
// engine silently ignores it in some configurations.
func verifyForeignKeys(db *sql.DB) error {
	var enabled int64
	if err := db.QueryRow("PRAGMA foreign_keys").Scan(&enabled); err != nil {
		return fmt.Errorf("read foreign_keys pragma: %w", err)
	}
	if enabled != 1 {
		return errors.Constraint("PRAGMA foreign_keys is not ON")
	}
	return nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// BackupTo writes a consistent copy of the database to path using
// VACUUM INTO. It must run outside any transaction; the destination file
// must not exist.
func (s *Store) BackupTo(ctx context.Context, path string) error {
	if _, err := s.db.ExecContext(ctx, "VACUUM INTO ?", path); err != nil {
		return fmt.Errorf("vacuum into %s: %w", path, err)
	}
	return nil
}

// RunInTx executes fn inside one transaction. Any error from fn rolls the
// whole transaction back. With commit false the transaction is rolled back
// even on success, which lets a run be rehearsed against a live database.
func (s *Store) RunInTx(ctx context.Context, commit bool, fn func(q *Queries) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&Queries{db: tx, logger: s.logger}); err != nil {
		return err
	}

	if !commit {
		s.logger.Info("rolling back transaction as requested")
		return tx.Rollback()
	}
	return tx.Commit()
}

// wrapExecErr classifies a storage-engine failure. Unique and foreign-key
// violations become constraint errors; these are fatal and never retried.
func wrapExecErr(err error, msg string) error {
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), "constraint failed") {
		return errors.Wrap(err, errors.CodeConstraint, msg)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// nullString returns a sql.NullString from a *string.
func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// nullInt64 returns a sql.NullInt64 from an *int64.
func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

// stringPtr converts a scanned sql.NullString back to a *string.
func stringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

// int64Ptr converts a scanned sql.NullInt64 back to an *int64.
func int64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}
