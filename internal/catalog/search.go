package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"comicsdb/pkg/models"
	"comicsdb/pkg/normalize"
)

// Searchable kinds that are not registry kinds.
const (
	KindSeries = "series"
	KindIssue  = "issue"
)

type Query struct {
	Kind   string
	Terms  []string // every term must appear in the key, in order
	Limit  int
	Offset int
}

// Window returns the limit and offset a search actually uses: limits outside
// 1..100 become 20 and negative offsets 0.
func (q Query) Window() (limit, offset int) {
	limit, offset = q.Limit, q.Offset
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// searchTable describes how one kind is listed. context, start, end and
// date are SQL expressions and may be NULL.
type searchTable struct {
	from    string
	name    string
	context string
	start   string
	end     string
	date    string
}

var searchTables = map[string]searchTable{
	string(models.KindPublisher): {
		from: "publishers t", name: "t.name", context: "NULL",
		start: "t.start_year", end: "t.end_year", date: "NULL",
	},
	string(models.KindIndiciaPublisher): {
		from:    "indicia_publishers t LEFT JOIN publishers p ON p.id = t.parent_id",
		name:    "t.name",
		context: "p.name", start: "t.start_year", end: "t.end_year", date: "NULL",
	},
	string(models.KindBrand):     plainSearch("brands"),
	string(models.KindCreator):   plainSearch("creators"),
	string(models.KindGenre):     plainSearch("genres"),
	string(models.KindCharacter): plainSearch("characters"),
	string(models.KindGroup):     plainSearch("character_groups"),
	KindSeries: {
		from:    "series t LEFT JOIN publishers p ON p.id = t.publisher_id",
		name:    "t.name",
		context: "p.name", start: "t.year_began", end: "t.year_ended", date: "NULL",
	},
	KindIssue: {
		from:    "issues t LEFT JOIN series s ON s.id = t.series_id",
		name:    "COALESCE(t.title, '')",
		context: "s.name", start: "NULL", end: "NULL", date: "t.key_date",
	},
}

func plainSearch(table string) searchTable {
	return searchTable{
		from: table + " t", name: "t.name",
		context: "NULL", start: "NULL", end: "NULL", date: "NULL",
	}
}

// searchRow is one raw search hit before labelling.
type searchRow struct {
	id      int64
	name    string
	context sql.NullString
	start   sql.NullInt64
	end     sql.NullInt64
	date    sql.NullInt64
}

func (s *Store) Count(ctx context.Context, q Query) (int, error) {
	sqlStr, args, err := buildSearchSQL(q, true)
	if err != nil {
		return 0, err
	}
	var total int
	if err := s.DB.QueryRowContext(ctx, sqlStr, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count scan: %w", err)
	}
	return total, nil
}

// Search lists entities of q.Kind whose normalized key contains every term,
// labelled with the terms highlighted.
func (s *Store) Search(ctx context.Context, q Query) ([]models.SearchResult, error) {
	sqlStr, args, err := buildSearchSQL(q, false)
	if err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()

	out := make([]models.SearchResult, 0)
	for rows.Next() {
		var r searchRow
		if err := rows.Scan(&r.id, &r.name, &r.context, &r.start, &r.end, &r.date); err != nil {
			return nil, fmt.Errorf("search scan: %w", err)
		}
		out = append(out, s.label(q.Kind, r, q.Terms))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// keyPattern joins the normalized terms into one ordered LIKE pattern.
func keyPattern(terms []string) string {
	var keys []string
	for _, t := range terms {
		if k := normalize.Key(strings.TrimSpace(t)); k != "" {
			keys = append(keys, likeEscaper.Replace(k))
		}
	}
	if len(keys) == 0 {
		return ""
	}
	return "%" + strings.Join(keys, "%") + "%"
}

// buildSearchSQL builds either COUNT(*) or the SELECT list for q.
func buildSearchSQL(q Query, countOnly bool) (string, []any, error) {
	t, ok := searchTables[q.Kind]
	if !ok {
		return "", nil, fmt.Errorf("%w: %q", ErrUnknownKind, q.Kind)
	}

	sqlStr := fmt.Sprintf(`SELECT t.id, %s, %s, %s, %s, %s FROM %s`,
		t.name, t.context, t.start, t.end, t.date, t.from)
	if countOnly {
		sqlStr = `SELECT COUNT(*) FROM ` + t.from
	}

	var args []any
	if pattern := keyPattern(q.Terms); pattern != "" {
		sqlStr += ` WHERE t.norm_key LIKE ? ESCAPE '\'`
		args = append(args, pattern)
	}

	if !countOnly {
		sqlStr += fmt.Sprintf(" ORDER BY %s ASC, t.id ASC", t.name)
		sqlStr += " LIMIT ? OFFSET ?"
		limit, offset := q.Window()
		args = append(args, limit, offset)
	}

	return sqlStr, args, nil
}
