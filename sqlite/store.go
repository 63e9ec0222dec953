// Package sqlite stores an expense ledger in an embedded SQLite database.
//
// Unlike the flat file, the database keeps the id counter alongside the
// expenses, so ids stay unique even after the highest one was deleted.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/etnz/expense"
	"github.com/etnz/expense/date"

	_ "modernc.org/sqlite"
)

const seqKey = "seq"

// Store is an expense.Store backed by a SQLite database file.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens, or creates, the database at dbPath and migrates its schema.
func Open(ctx context.Context, dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db, path: dbPath}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load reads all expenses in ledger order and the id counter.
//
// A row with an invalid date yields an empty ledger and an *expense.RecordError.
func (s *Store) Load(ctx context.Context) (*expense.Ledger, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT position, id, description, amount, date FROM expenses ORDER BY position`)
	if err != nil {
		return expense.NewLedger(), fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	l := expense.NewLedger()
	for rows.Next() {
		var (
			position int
			e        expense.Expense
			day      string
		)
		if err := rows.Scan(&position, &e.ID, &e.Description, &e.Amount, &day); err != nil {
			return expense.NewLedger(), fmt.Errorf("scan expense: %w", err)
		}
		on, err := date.Parse(day)
		if err != nil {
			return expense.NewLedger(), &expense.RecordError{File: s.path, Line: position, Text: day, Err: err}
		}
		e.Date = on
		l.Append(e)
	}
	if err := rows.Err(); err != nil {
		return expense.NewLedger(), fmt.Errorf("iterate expenses: %w", err)
	}

	var seq int
	err = s.db.QueryRowContext(ctx, `SELECT value FROM ledger_meta WHERE key = ?`, seqKey).Scan(&seq)
	switch {
	case err == sql.ErrNoRows:
	case err != nil:
		return expense.NewLedger(), fmt.Errorf("read id counter: %w", err)
	default:
		l.Reserve(seq)
	}

	slog.DebugContext(ctx, "load-ledger", "file", s.path, "count", l.Len(), "seq", l.Seq())
	return l, nil
}

// Save replaces all expenses and the id counter in a single transaction.
func (s *Store) Save(ctx context.Context, l *expense.Ledger) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM expenses`); err != nil {
		return fmt.Errorf("clear expenses: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO expenses (position, id, description, amount, date) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range l.All() {
		if _, err := stmt.ExecContext(ctx, i+1, e.ID, e.Description, e.Amount, e.Date.String()); err != nil {
			return fmt.Errorf("insert expense %d: %w", e.ID, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO ledger_meta (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, seqKey, l.Seq()); err != nil {
		return fmt.Errorf("write id counter: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	slog.DebugContext(ctx, "save-ledger", "file", s.path, "count", l.Len(), "seq", l.Seq())
	return nil
}

// check that Store is an expense.Store.
var _ expense.Store = (*Store)(nil)
