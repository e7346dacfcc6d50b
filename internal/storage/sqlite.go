package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/starford/duke/internal/task"
	"github.com/starford/duke/internal/tasklist"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS tasks (
	position INTEGER PRIMARY KEY,
	kind     TEXT    NOT NULL,
	done     INTEGER NOT NULL DEFAULT 0,
	title    TEXT    NOT NULL,
	due      TEXT    NOT NULL DEFAULT ''
);
`

// SQLite implements Provider with one row per task, ordered by position.
type SQLite struct {
	conn   *sql.DB
	logger *slog.Logger
}

// OpenSQLite opens (or creates) the database at dsn and applies the schema.
func OpenSQLite(dsn string, logger *slog.Logger) (*SQLite, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("storage: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("storage: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("storage: apply schema: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SQLite{conn: conn, logger: logger}, nil
}

// Load reads every row in position order.
func (s *SQLite) Load(ctx context.Context) (*tasklist.TaskList, error) {
	rows, err := s.conn.QueryContext(ctx, `SELECT kind, done, title, due FROM tasks ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("storage: query tasks: %w", err)
	}
	defer rows.Close()

	l := tasklist.New()
	for rows.Next() {
		var (
			letter, title, due string
			done               bool
		)
		if err := rows.Scan(&letter, &done, &title, &due); err != nil {
			return nil, fmt.Errorf("storage: scan task: %w", err)
		}
		kind, err := task.KindFromLetter(letter)
		if err != nil {
			return nil, fmt.Errorf("storage: row %d: %w", l.Len()+1, err)
		}
		var date time.Time
		if kind.Dated() {
			if date, err = task.ParseDate(due); err != nil {
				return nil, fmt.Errorf("storage: row %d: %w", l.Len()+1, err)
			}
		}
		t, err := task.Restore(kind, done, title, date)
		if err != nil {
			return nil, fmt.Errorf("storage: row %d: %w", l.Len()+1, err)
		}
		l.AddTask(t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: iterate tasks: %w", err)
	}
	s.logger.Debug("storage: loaded from sqlite", slog.Int("tasks", l.Len()))
	return l, nil
}

// Save replaces all rows within a transaction.
func (s *SQLite) Save(ctx context.Context, l *tasklist.TaskList) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("storage: clear tasks: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO tasks (position, kind, done, title, due) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("storage: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, t := range l.Tasks() {
		due := ""
		if t.Kind().Dated() {
			due = t.Date().Format(task.ISODate)
		}
		if _, err := stmt.ExecContext(ctx, i+1, t.Kind().Letter(), t.Done(), t.Title(), due); err != nil {
			return fmt.Errorf("storage: insert task %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: commit: %w", err)
	}
	s.logger.Debug("storage: saved to sqlite", slog.Int("tasks", l.Len()))
	return nil
}

// Close closes the underlying database connection.
func (s *SQLite) Close() error {
	return s.conn.Close()
}
