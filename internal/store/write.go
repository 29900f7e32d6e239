package store

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/wtsi-hgi/yggdrasil/internal/record"
)

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Put stores rec and returns its id. origin names where the record came
// from and may be empty.
//
// Uses ON CONFLICT(digest) DO NOTHING for idempotency: storing a record
// whose canonical form is already present returns the existing id and
// leaves the stored origin unchanged. The body is kept as given; only the
// digest is taken over the canonical form, so records differing only in
// Unicode normalization share the body stored first.
func (s *Store) Put(ctx context.Context, origin string, rec record.Record) (string, error) {
	id, _, err := put(ctx, s.db, origin, rec)
	if err != nil {
		return "", fmt.Errorf("put record: %w", err)
	}
	return id, nil
}

// PutAll stores recs in a single transaction and returns how many were
// new. Either every record is stored or none is.
func (s *Store) PutAll(ctx context.Context, origin string, recs []record.Record) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("put records: begin: %w", err)
	}
	defer tx.Rollback()

	inserted := 0
	for i, rec := range recs {
		_, isNew, err := put(ctx, tx, origin, rec)
		if err != nil {
			return 0, fmt.Errorf("put records: record %d: %w", i, err)
		}
		if isNew {
			inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("put records: commit: %w", err)
	}
	return inserted, nil
}

func put(ctx context.Context, db execer, origin string, rec record.Record) (id string, isNew bool, err error) {
	body, err := marshalBody(rec)
	if err != nil {
		return "", false, err
	}
	digest, err := record.Digest(rec)
	if err != nil {
		return "", false, err
	}

	id = uuid.Must(uuid.NewV7()).String()
	res, err := db.ExecContext(ctx, `
		INSERT INTO records (id, digest, origin, body)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(digest) DO NOTHING
	`, id, digest, origin, string(body))
	if err != nil {
		return "", false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return "", false, err
	}
	if n == 1 {
		return id, true, nil
	}

	if err := db.QueryRowContext(ctx, `SELECT id FROM records WHERE digest = ?`, digest).Scan(&id); err != nil {
		return "", false, err
	}
	return id, false, nil
}

// marshalBody encodes rec without changing its text.
func marshalBody(rec record.Record) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(rec); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
