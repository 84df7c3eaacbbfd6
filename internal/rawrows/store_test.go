package rawrows

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comicsdb/pkg/database"
)

func newSQLStore(t *testing.T) *SQLStore {
	t.Helper()
	db, err := database.Open(database.Config{Path: database.Memory})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(db))
	return NewSQLStore(db)
}

func TestStores(t *testing.T) {
	stores := map[string]func(t *testing.T) Store{
		"memory": func(t *testing.T) Store { return NewMemory() },
		"sql":    func(t *testing.T) Store { return newSQLStore(t) },
	}

	for name, mk := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := mk(t)

			require.NoError(t, s.Put(ctx, "gcd_publisher", Record("2", "DC")))
			require.NoError(t, s.Put(ctx, "gcd_publisher", Record("1", "Marvel", "", "1939")))
			require.NoError(t, s.Put(ctx, "gcd_brand", Record("1", "Epic")))
			require.NoError(t, s.Put(ctx, "gcd_publisher", Record("2", "DC Comics")))

			err := s.Put(ctx, "gcd_publisher", Record("", "nobody"))
			assert.ErrorIs(t, err, ErrNoID)

			rec, ok, err := s.Lookup(ctx, "gcd_publisher", 1)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, "Marvel", rec.String(1))
			assert.False(t, rec[2].Valid)
			year, _ := rec.Int(3)
			assert.Equal(t, int64(1939), year)

			_, ok, err = s.Lookup(ctx, "gcd_publisher", 3)
			require.NoError(t, err)
			assert.False(t, ok)

			var names []string
			err = s.Each(ctx, "gcd_publisher", func(r RawRecord) error {
				names = append(names, r.String(1))
				return nil
			})
			require.NoError(t, err)
			assert.Equal(t, []string{"Marvel", "DC Comics"}, names)

			stop := errors.New("stop")
			calls := 0
			err = s.Each(ctx, "gcd_publisher", func(RawRecord) error {
				calls++
				return stop
			})
			assert.ErrorIs(t, err, stop)
			assert.Equal(t, 1, calls)
		})
	}
}

func TestSQLStoreEachPages(t *testing.T) {
	ctx := context.Background()
	s := newSQLStore(t)

	total := eachBatch*2 + 3
	for i := total; i >= 1; i-- {
		require.NoError(t, s.Put(ctx, "gcd_issue", Record(fmt.Sprint(i), "n")))
	}

	n, err := s.Count(ctx, "gcd_issue")
	require.NoError(t, err)
	assert.Equal(t, total, n)

	var prev int64
	seen := 0
	err = s.Each(ctx, "gcd_issue", func(r RawRecord) error {
		id, _ := r.ID()
		assert.Greater(t, id, prev)
		prev = id
		seen++
		// the catalog shares the connection while iterating
		_, ok, err := s.Lookup(ctx, "gcd_issue", id)
		if err != nil || !ok {
			return fmt.Errorf("lookup %d inside Each: %v", id, err)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, total, seen)
}
