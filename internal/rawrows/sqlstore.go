package rawrows

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
)

// eachBatch bounds how many rows Each holds a cursor open for. The catalog
// shares the single SQLite connection, so the cursor is closed before fn runs.
const eachBatch = 500

// SQLStore keeps rows in the raw_rows table.
type SQLStore struct {
	DB *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{DB: db}
}

func (s *SQLStore) Put(ctx context.Context, table string, rec RawRecord) error {
	id, ok := rec.ID()
	if !ok {
		return fmt.Errorf("put %s: %w", table, ErrNoID)
	}
	fields, err := json.Marshal(rec.values())
	if err != nil {
		return fmt.Errorf("encode %s/%d: %w", table, id, err)
	}

	_, err = s.DB.ExecContext(ctx, `
		INSERT INTO raw_rows (table_name, external_id, fields)
		VALUES (?, ?, ?)
		ON CONFLICT(table_name, external_id) DO UPDATE SET
			fields = excluded.fields
	`, table, id, string(fields))
	if err != nil {
		return fmt.Errorf("put %s/%d: %w", table, id, err)
	}
	return nil
}

func (s *SQLStore) Lookup(ctx context.Context, table string, externalID int64) (RawRecord, bool, error) {
	var fields string
	err := s.DB.QueryRowContext(ctx, `
		SELECT fields FROM raw_rows WHERE table_name = ? AND external_id = ?
	`, table, externalID).Scan(&fields)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("lookup %s/%d: %w", table, externalID, err)
	}

	rec, err := decodeFields(fields)
	if err != nil {
		return nil, false, fmt.Errorf("decode %s/%d: %w", table, externalID, err)
	}
	return rec, true, nil
}

func (s *SQLStore) Each(ctx context.Context, table string, fn func(RawRecord) error) error {
	after := int64(math.MinInt64)
	for {
		batch, last, err := s.page(ctx, table, after)
		if err != nil {
			return err
		}
		for _, rec := range batch {
			if err := fn(rec); err != nil {
				return err
			}
		}
		if len(batch) < eachBatch {
			return nil
		}
		after = last
	}
}

// page reads up to eachBatch rows with an id above after.
func (s *SQLStore) page(ctx context.Context, table string, after int64) ([]RawRecord, int64, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT external_id, fields FROM raw_rows
		WHERE table_name = ? AND external_id > ?
		ORDER BY external_id
		LIMIT ?
	`, table, after, eachBatch)
	if err != nil {
		return nil, 0, fmt.Errorf("each %s: %w", table, err)
	}
	defer rows.Close()

	var (
		out  []RawRecord
		last int64
	)
	for rows.Next() {
		var fields string
		if err := rows.Scan(&last, &fields); err != nil {
			return nil, 0, fmt.Errorf("each %s scan: %w", table, err)
		}
		rec, err := decodeFields(fields)
		if err != nil {
			return nil, 0, fmt.Errorf("decode %s/%d: %w", table, last, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows err: %w", err)
	}
	return out, last, nil
}

// Count returns how many rows of table are stored.
func (s *SQLStore) Count(ctx context.Context, table string) (int, error) {
	var n int
	err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM raw_rows WHERE table_name = ?`, table).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

func decodeFields(raw string) (RawRecord, error) {
	var values []*string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, err
	}
	return fromValues(values), nil
}
