package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comicsdb/internal/catalog"
	"comicsdb/pkg/database"
	"comicsdb/pkg/datecode"
	"comicsdb/pkg/models"
)

func runDate(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newDateCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestDateCommand(t *testing.T) {
	t.Run("encode", func(t *testing.T) {
		out, err := runDate(t, "encode", "1994-04-01", "1994-04", "garbage")
		require.NoError(t, err)
		assert.Equal(t, "2041985\n0\n0\n", out)
	})

	t.Run("decode", func(t *testing.T) {
		out, err := runDate(t, "decode", "2041985", "0", "-1")
		require.NoError(t, err)
		assert.Equal(t, "1994/02/01\n?\n"+datecode.NewScan+"\n", out)
	})

	t.Run("decode tolerates a flag terminator", func(t *testing.T) {
		out, err := runDate(t, "decode", "--", "-5")
		require.NoError(t, err)
		assert.Equal(t, datecode.NewScan+"\n", out)
	})

	t.Run("decode rejects non-numbers", func(t *testing.T) {
		_, err := runDate(t, "decode", "abc")
		assert.ErrorContains(t, err, `invalid code "abc"`)
	})

	t.Run("requires an argument", func(t *testing.T) {
		_, err := runDate(t, "encode")
		assert.Error(t, err)
	})
}

func TestExportIssues(t *testing.T) {
	ctx := context.Background()
	db, err := database.Open(database.Config{Path: database.Memory})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(db))
	store := catalog.NewStore(db)

	series := &models.Series{Name: "Batman"}
	require.NoError(t, store.CreateSeries(ctx, series))

	later := &models.Issue{Number: "2", SeriesID: &series.ID, CoverDate: "June 1940", KeyDate: datecode.Encode("1940-06-00")}
	earlier := &models.Issue{Number: "1", Title: "The Joker", SeriesID: &series.ID, KeyDate: datecode.Encode("1940-04-25")}
	orphan := &models.Issue{Number: "?"}
	require.NoError(t, store.CreateIssue(ctx, later))
	require.NoError(t, store.CreateIssue(ctx, earlier))
	require.NoError(t, store.CreateIssue(ctx, orphan))

	var buf bytes.Buffer
	n, err := exportIssues(ctx, store, &buf)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	lines, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"id", "series", "number", "title", "cover_date", "key_date", "display_date"}, lines[0])

	// Unknown key dates sort first.
	assert.Equal(t, "", lines[1][1])
	assert.Equal(t, "?", lines[1][6])
	assert.Equal(t, []string{"Batman", "1", "The Joker"}, lines[2][1:4])
	assert.Equal(t, datecode.Display(earlier.KeyDate), lines[2][6])
	assert.Equal(t, "June 1940", lines[3][4])
}
