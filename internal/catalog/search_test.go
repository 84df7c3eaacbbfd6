package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comicsdb/pkg/highlight"
	"comicsdb/pkg/models"
	"comicsdb/pkg/normalize"
)

func seedSearch(t *testing.T, s *Store) {
	t.Helper()
	ctx := context.Background()

	begin, end := 1939, 1961
	marvel := &models.NamedEntity{
		Kind: models.KindPublisher, Name: "Timely", Key: normalize.Key("Timely"),
		Attrs: models.Attrs{models.AttrStartYear: begin, models.AttrEndYear: end},
	}
	require.NoError(t, s.CreateNamed(ctx, marvel))

	for _, name := range []string{"Astérix le Gaulois", "Batman", "The Batman Adventures", "100%_Pure"} {
		v := &models.Series{Name: name, YearBegan: &begin, PublisherID: &marvel.ID}
		require.NoError(t, s.CreateSeries(ctx, v))
	}

	for _, name := range []string{"Moebius", "Möbius"} {
		c := &models.NamedEntity{Kind: models.KindCreator, Name: name, Key: normalize.Key(name)}
		require.NoError(t, s.CreateNamed(ctx, c))
	}

	require.NoError(t, s.CreateIssue(ctx, &models.Issue{Title: "Zero Hour", KeyDate: 1994*1024 + 9*32 + 1}))
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seedSearch(t, s)

	tests := []struct {
		name  string
		q     Query
		names []string
	}{
		{"ordered terms", Query{Kind: KindSeries, Terms: []string{"bat", "adv"}}, []string{"The Batman Adventures"}},
		{"wrong order", Query{Kind: KindSeries, Terms: []string{"adv", "bat"}}, nil},
		{"diacritic insensitive", Query{Kind: KindSeries, Terms: []string{"ASTERIX"}}, []string{"Astérix le Gaulois"}},
		{"no terms lists all", Query{Kind: string(models.KindCreator)}, []string{"Moebius", "Möbius"}},
		{"accented term", Query{Kind: string(models.KindCreator), Terms: []string{"möb"}}, []string{"Möbius"}},
		{"like wildcards are literal", Query{Kind: KindSeries, Terms: []string{"%_"}}, []string{"100%_Pure"}},
		{"underscore alone", Query{Kind: KindSeries, Terms: []string{"_"}}, []string{"100%_Pure"}},
		{"limit", Query{Kind: KindSeries, Limit: 2}, []string{"100%_Pure", "Astérix le Gaulois"}},
		{"offset", Query{Kind: KindSeries, Limit: 2, Offset: 3}, []string{"The Batman Adventures"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := s.Search(ctx, tt.q)
			require.NoError(t, err)
			var names []string
			for _, it := range items {
				names = append(names, it.Name)
			}
			assert.Equal(t, tt.names, names)
		})
	}

	t.Run("count ignores paging", func(t *testing.T) {
		total, err := s.Count(ctx, Query{Kind: KindSeries, Terms: []string{"bat"}, Limit: 1})
		require.NoError(t, err)
		assert.Equal(t, 2, total)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := s.Search(ctx, Query{Kind: "planet"})
		assert.ErrorIs(t, err, ErrUnknownKind)
		_, err = s.Count(ctx, Query{Kind: "planet"})
		assert.ErrorIs(t, err, ErrUnknownKind)
	})
}

func TestSearchLabels(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seedSearch(t, s)

	items, err := s.Search(ctx, Query{Kind: KindSeries, Terms: []string{"batman"}})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "<b>Batman</b> <i>(Timely 1939-)</i>", items[0].Label)

	// accented terms match the decomposed name; the result stays decomposed
	items, err = s.Search(ctx, Query{Kind: KindSeries, Terms: []string{"Astérix"}})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "<b>Aste\u0301rix</b> le Gaulois <i>(Timely 1939-)</i>", items[0].Label)

	items, err = s.Search(ctx, Query{Kind: string(models.KindPublisher), Terms: []string{"time"}})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "<b>Time</b>ly <i>(1939-1961)</i>", items[0].Label)

	items, err = s.Search(ctx, Query{Kind: string(models.KindCreator), Terms: []string{"moeb"}})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "<b>Moeb</b>ius", items[0].Label)

	items, err = s.Search(ctx, Query{Kind: KindIssue, Terms: []string{"zero"}})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "1994/04/01", items[0].DisplayDate)
	assert.Equal(t, "<b>Zero</b> Hour <i>(1994/04/01)</i>", items[0].Label)
}

func TestBuildSearchSQL(t *testing.T) {
	sqlStr, args, err := buildSearchSQL(Query{Kind: KindSeries, Terms: []string{"Bat", " ", "Man"}}, true)
	require.NoError(t, err)
	assert.Contains(t, sqlStr, "COUNT(*)")
	assert.Equal(t, []any{"%bat%man%"}, args)

	_, args, err = buildSearchSQL(Query{Kind: KindSeries, Limit: 500, Offset: -3}, false)
	require.NoError(t, err)
	assert.Equal(t, []any{20, 0}, args)
}

func TestSearchCustomMarkers(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seedSearch(t, s)
	s.Highlighter = highlight.Highlighter{Open: "[", Close: "]"}

	items, err := s.Search(ctx, Query{Kind: string(models.KindCreator), Terms: []string{"bius"}})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Moe[bius]", items[0].Label)
}

func TestQueryWindow(t *testing.T) {
	tests := []struct {
		q             Query
		limit, offset int
	}{
		{Query{}, 20, 0},
		{Query{Limit: 5, Offset: 10}, 5, 10},
		{Query{Limit: 100}, 100, 0},
		{Query{Limit: 101, Offset: -1}, 20, 0},
	}
	for _, tt := range tests {
		limit, offset := tt.q.Window()
		assert.Equal(t, tt.limit, limit, "%+v", tt.q)
		assert.Equal(t, tt.offset, offset, "%+v", tt.q)
	}
}
