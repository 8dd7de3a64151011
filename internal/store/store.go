// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store keeps a copy of cleaned tables in SQLite, together with
// the column types of each run and a record of where it came from.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/sheetclean/pkg/types"
)

// timeLayout is a fixed-width timestamp so stored times sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store manages the SQLite database of cleaned datasheets.
type Store struct {
	db    *sql.DB
	table string
}

// Run describes one stored cleaning run.
type Run struct {
	ID        string
	Source    string
	Table     string
	CreatedAt time.Time
	Rows      int
	Columns   int
}

// ColumnType is the stored type of one column of a run.
type ColumnType struct {
	Position int
	Column   string
	DType    types.DType
	Label    string
	Nullable bool
}

// NewStore opens or creates the database at cfg.Path and creates the
// bookkeeping schema if it does not exist.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("store path is empty")
	}
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	table := cfg.Table
	if table == "" {
		table = "datasheet"
	}
	s := &Store{db: db, table: table}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			data_table TEXT NOT NULL,
			created_at TEXT NOT NULL,
			row_count INTEGER NOT NULL,
			column_count INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS column_types (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			dtype TEXT NOT NULL,
			label TEXT NOT NULL,
			nullable INTEGER NOT NULL,
			PRIMARY KEY (run_id, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save replaces the data table with the rows of table and records the run
// and its column types. Everything happens in one transaction; on error
// the database is left as it was.
func (s *Store) Save(ctx context.Context, source string, table *types.CleanedTable) (Run, error) {
	run := Run{
		ID:        uuid.NewString(),
		Source:    source,
		Table:     s.table,
		CreatedAt: time.Now().UTC(),
		Rows:      table.Len(),
		Columns:   len(table.Columns),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, source, data_table, created_at, row_count, column_count)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.Source, run.Table, run.CreatedAt.Format(timeLayout), run.Rows, run.Columns,
	); err != nil {
		return Run{}, fmt.Errorf("inserting run: %w", err)
	}

	if err := insertColumnTypes(ctx, tx, run.ID, table); err != nil {
		return Run{}, err
	}
	if err := s.replaceData(ctx, tx, table); err != nil {
		return Run{}, err
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("committing run: %w", err)
	}
	return run, nil
}

func insertColumnTypes(ctx context.Context, tx *sql.Tx, runID string, table *types.CleanedTable) error {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO column_types (run_id, position, name, dtype, label, nullable)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing column type insert: %w", err)
	}
	defer stmt.Close()

	for i, col := range table.Columns {
		if _, err := stmt.ExecContext(ctx, runID, i, col.Name, string(col.DType), col.Label, col.Nullable()); err != nil {
			return fmt.Errorf("inserting column type %q: %w", col.Name, err)
		}
	}
	return nil
}

func (s *Store) replaceData(ctx context.Context, tx *sql.Tx, table *types.CleanedTable) error {
	name := quoteIdent(s.table)
	if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS `+name); err != nil {
		return fmt.Errorf("dropping %s: %w", s.table, err)
	}
	if len(table.Columns) == 0 {
		return nil
	}

	defs := make([]string, len(table.Columns))
	cols := make([]string, len(table.Columns))
	marks := make([]string, len(table.Columns))
	for i, col := range table.Columns {
		cols[i] = quoteIdent(col.Name)
		defs[i] = strings.TrimSpace(cols[i] + " " + affinity(col.DType))
		marks[i] = "?"
	}

	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`CREATE TABLE %s (%s)`, name, strings.Join(defs, ", "))); err != nil {
		return fmt.Errorf("creating %s: %w", s.table, err)
	}

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		name, strings.Join(cols, ", "), strings.Join(marks, ", ")))
	if err != nil {
		return fmt.Errorf("preparing row insert: %w", err)
	}
	defer stmt.Close()

	args := make([]any, len(table.Columns))
	for row := 0; row < table.Len(); row++ {
		for c, col := range table.Columns {
			args[c] = sqlValue(col.Values[row])
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("inserting row %d: %w", row+1, err)
		}
	}
	return nil
}

// Runs lists stored runs, newest first.
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id, source, data_table, created_at, row_count, column_count
		FROM runs ORDER BY created_at DESC, rowid DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r       Run
			created string
		)
		if err := rows.Scan(&r.ID, &r.Source, &r.Table, &created, &r.Rows, &r.Columns); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if r.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
			return nil, fmt.Errorf("parsing run time %q: %w", created, err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// ColumnTypes returns the column types recorded for a run in column order.
func (s *Store) ColumnTypes(ctx context.Context, runID string) ([]ColumnType, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT position, name, dtype, label, nullable FROM column_types
		 WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying column types: %w", err)
	}
	defer rows.Close()

	var out []ColumnType
	for rows.Next() {
		var (
			ct    ColumnType
			dtype string
		)
		if err := rows.Scan(&ct.Position, &ct.Column, &dtype, &ct.Label, &ct.Nullable); err != nil {
			return nil, fmt.Errorf("scanning column type: %w", err)
		}
		ct.DType = types.DType(dtype)
		out = append(out, ct)
	}
	return out, rows.Err()
}

// affinity maps a column dtype to a SQLite column type. Mixed and empty
// columns are declared without a type.
func affinity(d types.DType) string {
	switch d {
	case types.DTypeInt, types.DTypeBool:
		return "INTEGER"
	case types.DTypeFloat:
		return "REAL"
	case types.DTypeTime, types.DTypeString:
		return "TEXT"
	}
	return ""
}

func sqlValue(v types.Value) any {
	switch v.Kind {
	case types.KindText:
		return v.Text
	case types.KindInt:
		return v.Int
	case types.KindFloat:
		return v.Float
	case types.KindBool:
		return v.Bool
	case types.KindTime:
		return v.Format("")
	}
	return nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
