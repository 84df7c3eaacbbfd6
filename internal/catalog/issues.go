package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"comicsdb/pkg/models"
)

// IssueListing is an issue together with its series name, as exported.
type IssueListing struct {
	models.Issue
	SeriesName string
}

// EachIssue calls fn for every issue ordered by key date, then id. A non-nil
// error from fn stops the walk and is returned.
func (s *Store) EachIssue(ctx context.Context, fn func(IssueListing) error) error {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT i.id, i.number, i.title, i.cover_date, i.key_date, i.series_id, s.name
		FROM issues i
		LEFT JOIN series s ON s.id = i.series_id
		ORDER BY i.key_date ASC, i.id ASC
	`)
	if err != nil {
		return fmt.Errorf("issues query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			v          IssueListing
			number     sql.NullString
			title      sql.NullString
			coverDate  sql.NullString
			seriesID   sql.NullInt64
			seriesName sql.NullString
		)
		if err := rows.Scan(&v.ID, &number, &title, &coverDate, &v.KeyDate, &seriesID, &seriesName); err != nil {
			return fmt.Errorf("issues scan: %w", err)
		}
		v.Number = number.String
		v.Title = title.String
		v.CoverDate = coverDate.String
		v.SeriesID = int64Ptr(seriesID)
		v.SeriesName = seriesName.String

		if err := fn(v); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("rows err: %w", err)
	}
	return nil
}
