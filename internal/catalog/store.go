// Package catalog is the SQLite persistence layer for the normalized comics
// graph, plus the read side used to search and label it.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"comicsdb/pkg/highlight"
	"comicsdb/pkg/models"
)

// ErrUnknownKind is returned for a named kind with no backing table.
var ErrUnknownKind = errors.New("unknown entity kind")

type namedTable struct {
	table string
	attrs []string
}

var namedTables = map[models.Kind]namedTable{
	models.KindPublisher: {
		table: "publishers",
		attrs: []string{models.AttrStartYear, models.AttrEndYear, models.AttrNotes},
	},
	models.KindIndiciaPublisher: {
		table: "indicia_publishers",
		attrs: []string{models.AttrParentID, models.AttrStartYear, models.AttrEndYear, models.AttrNotes},
	},
	models.KindBrand:   {table: "brands", attrs: []string{models.AttrNotes}},
	models.KindCreator: {table: "creators", attrs: []string{models.AttrNotes}},
	models.KindGenre:   {table: "genres"},
	models.KindCharacter: {
		table: "characters",
		attrs: characterAttrs,
	},
	models.KindGroup: {
		table: "character_groups",
		attrs: characterAttrs,
	},
}

var characterAttrs = []string{
	models.AttrSortName, models.AttrDisambiguation, models.AttrYearFirst,
	models.AttrDescription, models.AttrNotes, models.AttrUniverseID,
}

type Store struct {
	DB *sql.DB
	// Highlighter marks search terms in result labels.
	Highlighter highlight.Highlighter
}

func NewStore(db *sql.DB) *Store {
	return &Store{DB: db, Highlighter: highlight.Default}
}

func lookupNamed(kind models.Kind) (namedTable, error) {
	t, ok := namedTables[kind]
	if !ok {
		return namedTable{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return t, nil
}

// FindNamed returns the oldest entity of kind with the given key, or nil.
func (s *Store) FindNamed(ctx context.Context, kind models.Kind, key string) (*models.NamedEntity, error) {
	t, err := lookupNamed(kind)
	if err != nil {
		return nil, err
	}

	row := s.DB.QueryRowContext(ctx, `
		SELECT id, name, norm_key FROM `+t.table+`
		WHERE norm_key = ?
		ORDER BY id
		LIMIT 1
	`, key)

	e := models.NamedEntity{Kind: kind}
	if err := row.Scan(&e.ID, &e.Name, &e.Key); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find %s: %w", kind, err)
	}
	return &e, nil
}

// CreateNamed inserts a named entity. Attributes the kind does not define are
// ignored.
func (s *Store) CreateNamed(ctx context.Context, e *models.NamedEntity) error {
	t, err := lookupNamed(e.Kind)
	if err != nil {
		return err
	}

	cols := []string{"name", "norm_key"}
	args := []any{e.Name, e.Key}
	for _, attr := range t.attrs {
		v, ok := e.Attrs[attr]
		if !ok {
			continue
		}
		cols = append(cols, attr)
		args = append(args, sqlValue(v))
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		t.table, strings.Join(cols, ", "), placeholders(len(cols)))
	id, err := s.insert(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("create %s: %w", e.Kind, err)
	}
	e.ID = id
	return nil
}

func (s *Store) insert(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// sqlValue maps empty strings to NULL.
func sqlValue(v any) any {
	if s, ok := v.(string); ok {
		return nullString(s)
	}
	return v
}

func nullString(raw string) sql.NullString {
	if raw == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: raw, Valid: true}
}

func intPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

func int64Ptr(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}

func floatPtr(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
