package rawrows

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrNoID is returned when a row is stored without a numeric field 0.
var ErrNoID = errors.New("row has no numeric id")

// Lookup answers "give me the row of table with this external id".
type Lookup interface {
	Lookup(ctx context.Context, table string, externalID int64) (RawRecord, bool, error)
	// Each calls fn for every row of table in external-id order.
	Each(ctx context.Context, table string, fn func(RawRecord) error) error
}

// Writer stores rows, replacing any row with the same table and id.
type Writer interface {
	Put(ctx context.Context, table string, rec RawRecord) error
}

// Store is a Lookup that can also be filled.
type Store interface {
	Lookup
	Writer
}

// Memory keeps rows in process. It is safe for concurrent use.
type Memory struct {
	mu     sync.RWMutex
	tables map[string]map[int64]RawRecord
}

func NewMemory() *Memory {
	return &Memory{tables: make(map[string]map[int64]RawRecord)}
}

func (m *Memory) Put(_ context.Context, table string, rec RawRecord) error {
	id, ok := rec.ID()
	if !ok {
		return fmt.Errorf("put %s: %w", table, ErrNoID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	rows, ok := m.tables[table]
	if !ok {
		rows = make(map[int64]RawRecord)
		m.tables[table] = rows
	}
	rows[id] = rec
	return nil
}

// Add is Put for fixtures: values become a Record.
func (m *Memory) Add(table string, values ...string) error {
	return m.Put(context.Background(), table, Record(values...))
}

func (m *Memory) Lookup(_ context.Context, table string, externalID int64) (RawRecord, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.tables[table][externalID]
	return rec, ok, nil
}

func (m *Memory) Each(ctx context.Context, table string, fn func(RawRecord) error) error {
	m.mu.RLock()
	rows := m.tables[table]
	ids := make([]int64, 0, len(rows))
	for id := range rows {
		ids = append(ids, id)
	}
	m.mu.RUnlock()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return err
		}
		m.mu.RLock()
		rec, ok := m.tables[table][id]
		m.mu.RUnlock()
		if !ok {
			continue
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
	return nil
}
