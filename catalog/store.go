// Copyright © 2025 Timescrub contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: catalog/store.go
// Summary: SQLite-backed catalog of slices. Lets the host keep a local
// database imported from the JSON feed and query it by year range.

package catalog

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS slices (
	seq        INTEGER PRIMARY KEY AUTOINCREMENT,
	id         TEXT NOT NULL UNIQUE,
	year       INTEGER NOT NULL,
	title      TEXT NOT NULL,
	teaser     TEXT NOT NULL DEFAULT '',
	threads    TEXT NOT NULL DEFAULT '[]',
	added_date TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_slices_year ON slices(year);
`

// Store is a slice catalog backed by a SQLite database file.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) a catalog database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open catalog db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init catalog schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Import upserts slices into the catalog in one transaction. Feed order is
// preserved through the sequence column so same-year ties stay stable.
func (s *Store) Import(slices []Slice) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("import slices: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO slices (id, year, title, teaser, threads, added_date)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			year = excluded.year,
			title = excluded.title,
			teaser = excluded.teaser,
			threads = excluded.threads,
			added_date = excluded.added_date`)
	if err != nil {
		return fmt.Errorf("import slices: %w", err)
	}
	defer stmt.Close()

	for _, sl := range slices {
		threads, err := json.Marshal(sl.Threads)
		if err != nil {
			return fmt.Errorf("import slice %q: %w", sl.ID, err)
		}
		if _, err := stmt.Exec(sl.ID, sl.Year, sl.Title, sl.Teaser, string(threads), sl.AddedDate); err != nil {
			return fmt.Errorf("import slice %q: %w", sl.ID, err)
		}
	}
	return tx.Commit()
}

// All returns every slice ordered by year, ties in feed order.
func (s *Store) All() ([]Slice, error) {
	return s.query(`SELECT id, year, title, teaser, threads, added_date
		FROM slices ORDER BY year, seq`)
}

// ByYearRange returns slices with from <= year <= to, ordered by year.
func (s *Store) ByYearRange(from, to int) ([]Slice, error) {
	return s.query(`SELECT id, year, title, teaser, threads, added_date
		FROM slices WHERE year BETWEEN ? AND ? ORDER BY year, seq`, from, to)
}

// Get looks up one slice by id.
func (s *Store) Get(id string) (Slice, bool, error) {
	rows, err := s.query(`SELECT id, year, title, teaser, threads, added_date
		FROM slices WHERE id = ?`, id)
	if err != nil {
		return Slice{}, false, err
	}
	if len(rows) == 0 {
		return Slice{}, false, nil
	}
	return rows[0], true, nil
}

// Count returns the number of catalogued slices.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM slices`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count slices: %w", err)
	}
	return n, nil
}

func (s *Store) query(q string, args ...any) ([]Slice, error) {
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("query slices: %w", err)
	}
	defer rows.Close()

	var out []Slice
	for rows.Next() {
		var (
			sl      Slice
			threads string
		)
		if err := rows.Scan(&sl.ID, &sl.Year, &sl.Title, &sl.Teaser, &threads, &sl.AddedDate); err != nil {
			return nil, fmt.Errorf("scan slice: %w", err)
		}
		if threads != "" {
			if err := json.Unmarshal([]byte(threads), &sl.Threads); err != nil {
				return nil, fmt.Errorf("decode threads for %q: %w", sl.ID, err)
			}
		}
		out = append(out, sl)
	}
	return out, rows.Err()
}
