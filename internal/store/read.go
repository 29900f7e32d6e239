package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/wtsi-hgi/yggdrasil/internal/query"
	"github.com/wtsi-hgi/yggdrasil/internal/record"
)

// ErrNotFound is returned by Get for an unknown id.
var ErrNotFound = errors.New("record not found")

// Entry is a stored record.
type Entry struct {
	Seq    int64
	ID     string
	Origin string
	Record record.Record
}

// Get returns the record stored under id.
func (s *Store) Get(ctx context.Context, id string) (Entry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT seq, id, origin, body FROM records WHERE id = ?
	`, id)

	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return e, err
}

// Scan calls fn for every stored record that p matches, in insertion
// order. A nil p matches everything. Scan stops at the first error fn
// returns and passes it back.
//
// fn runs while the result set is open and must not call back into the
// store.
func (s *Store) Scan(ctx context.Context, p query.Predicate, fn func(Entry) error) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, id, origin, body FROM records ORDER BY seq ASC
	`)
	if err != nil {
		return fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return err
		}
		if p != nil && !p.Match(e.Record) {
			continue
		}
		if err := fn(e); err != nil {
			return err
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate records: %w", err)
	}
	return nil
}

// Select returns the matching records in insertion order.
func (s *Store) Select(ctx context.Context, p query.Predicate) ([]record.Record, error) {
	records := make([]record.Record, 0)
	err := s.Scan(ctx, p, func(e Entry) error {
		records = append(records, e.Record)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return n, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (Entry, error) {
	var e Entry
	var body string
	if err := row.Scan(&e.Seq, &e.ID, &e.Origin, &body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, err
		}
		return Entry{}, fmt.Errorf("scan record: %w", err)
	}

	rec, err := record.Unmarshal([]byte(body))
	if err != nil {
		return Entry{}, fmt.Errorf("decode record %s: %w", e.ID, err)
	}
	e.Record = rec
	return e, nil
}
