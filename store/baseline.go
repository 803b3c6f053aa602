// Package store persists accepted violations in an SQLite baseline database,
// so already-reviewed findings can be filtered out of subsequent runs.
package store

import (
	"fmt"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"flint/match"
)

const schema = `CREATE TABLE IF NOT EXISTS baseline (
	rule    TEXT NOT NULL,
	file    TEXT NOT NULL,
	line    INTEGER NOT NULL,
	message TEXT NOT NULL,
	PRIMARY KEY (rule, file, line, message)
);`

// Baseline is a handle to the baseline database. It is not safe for
// concurrent use, callers serialize access.
type Baseline struct {
	conn *sqlite.Conn
}

// Open opens (creating when necessary) the baseline database at path.
func Open(path string) (*Baseline, error) {
	conn, err := sqlite.OpenConn(path, sqlite.OpenReadWrite, sqlite.OpenCreate)
	if err != nil {
		return nil, fmt.Errorf("open baseline %s: %w", path, err)
	}
	if err := sqlitex.ExecuteScript(conn, schema, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("prepare baseline %s: %w", path, err)
	}
	return &Baseline{conn: conn}, nil
}

// Close releases the database connection.
func (b *Baseline) Close() error {
	return b.conn.Close()
}

// Accept records violations as reviewed. Re-accepting an already recorded
// violation is a no-op.
func (b *Baseline) Accept(violations []match.Violation) error {
	for _, v := range violations {
		err := sqlitex.Execute(b.conn,
			`INSERT OR IGNORE INTO baseline (rule, file, line, message) VALUES (?, ?, ?, ?)`,
			&sqlitex.ExecOptions{Args: []any{v.RuleID, v.File, v.Line, v.Message}})
		if err != nil {
			return fmt.Errorf("record violation: %w", err)
		}
	}
	return nil
}

// Filter returns violations not present in the baseline, preserving order.
func (b *Baseline) Filter(violations []match.Violation) ([]match.Violation, error) {
	kept := make([]match.Violation, 0, len(violations))
	for _, v := range violations {
		known, err := b.has(v)
		if err != nil {
			return nil, err
		}
		if !known {
			kept = append(kept, v)
		}
	}
	return kept, nil
}

func (b *Baseline) has(v match.Violation) (bool, error) {
	var found bool
	err := sqlitex.Execute(b.conn,
		`SELECT 1 FROM baseline WHERE rule=? AND file=? AND line=? AND message=?`,
		&sqlitex.ExecOptions{
			Args: []any{v.RuleID, v.File, v.Line, v.Message},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				found = true
				return nil
			},
		})
	if err != nil {
		return false, fmt.Errorf("query baseline: %w", err)
	}
	return found, nil
}
