package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comicsdb/internal/rawrows"
)

// cells builds a positional record of the given id from sparse cells.
func cells(id string, values map[int]string) rawrows.RawRecord {
	width := 1
	for i := range values {
		if i+1 > width {
			width = i + 1
		}
	}
	out := make([]string, width)
	out[0] = id
	for i, v := range values {
		out[i] = v
	}
	return rawrows.Record(out...)
}

func TestDecodeStory(t *testing.T) {
	rec := cells("200", map[int]string{
		1: "Origin", 3: "Batman", 4: "2", 5: "6.5", 6: "100",
		7: "Bill Finger; ; Bob Kane", 8: "Bob Kane", 13: "superhero;crime",
		14: "Batman [Bruce Wayne]", 15: "syn", 17: "notes", 25: "5",
	})
	row := decodeStory(rec)

	assert.Equal(t, "Origin", row.Title)
	assert.Equal(t, "Batman", row.Feature)
	require.NotNil(t, row.Sequence)
	assert.Equal(t, 2, *row.Sequence)
	require.NotNil(t, row.PageCount)
	assert.Equal(t, 6.5, *row.PageCount)
	assert.Equal(t, int64(100), row.IssueID)
	assert.Equal(t, []string{"Bill Finger", "Bob Kane"}, row.Script)
	assert.Equal(t, []string{"Bob Kane"}, row.Pencils)
	assert.Nil(t, row.Inks)
	assert.Equal(t, []string{"superhero", "crime"}, row.Genres)
	assert.Equal(t, int64(5), row.TypeID, "type comes from its own field, not the page count")
}

func TestDecodeIssue(t *testing.T) {
	rec := cells("100", map[int]string{
		1: "27", 5: "10", 8: "x", 10: "May 1939", 11: "1939-05-01", 12: "-4",
		14: "68.000", 24: "isbn", 27: "Variant", 28: "bar", 30: "The Bat-Man",
	})
	row := decodeIssue(rec)

	assert.Equal(t, "27", row.Number)
	assert.Equal(t, int64(10), row.SeriesID)
	assert.Zero(t, row.BrandID, "non-numeric reference")
	assert.Zero(t, row.IndiciaPublisherID, "negative reference")
	assert.Equal(t, "May 1939", row.PublicationDate)
	assert.Equal(t, "1939-05-01", row.KeyDate)
	require.NotNil(t, row.PageCount)
	assert.Equal(t, 68.0, *row.PageCount)
	assert.Equal(t, "The Bat-Man", row.Title)
}

func TestDecodeCreatorNotes(t *testing.T) {
	tests := []struct {
		a, b, want string
	}{
		{"born 1914", "died 1974", "born 1914 died 1974"},
		{"born 1914", "", "born 1914"},
		{"", "died 1974", "died 1974"},
		{"", "", ""},
	}
	for _, tt := range tests {
		row := decodeCreator(cells("1", map[int]string{1: "Bill Finger", 13: tt.a, 14: tt.b}))
		assert.Equal(t, tt.want, row.Notes)
	}
}

func TestNameDetails(t *testing.T) {
	assert.Equal(t, int64(40), groupOfNameDetail(rawrows.Record("45", "x", "JLA", "40")))
	assert.Equal(t, int64(22), creatorOfNameDetail(cells("50", map[int]string{3: "22"})))
}

func TestSplitCell(t *testing.T) {
	assert.Nil(t, splitCell(""))
	assert.Nil(t, splitCell(" ; ;"))
	assert.Equal(t, []string{"a", "b c"}, splitCell(" a ;b c;"))
	assert.Equal(t, []string{"Bob Kane"}, splitCell("\u0301; Bob Kane; \u0301\u0301 "), "tokens with an empty key are dropped")
}

func TestStripQualifier(t *testing.T) {
	tests := map[string]string{
		"Batman [Bruce Wayne]":   "Batman",
		"Robin (Dick Grayson)":   "Robin",
		"Alfred":                 "Alfred",
		"(cameo)":                "",
		"Joker (villain) [main]": "Joker",
	}
	for in, want := range tests {
		assert.Equal(t, want, stripQualifier(in), in)
	}
}
