package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"comicsdb/pkg/models"
)

func slotValue(s models.RoleSlot) sql.NullInt64 {
	return sql.NullInt64{Int64: s.CreatorID, Valid: s.Valid}
}

func slotFrom(n sql.NullInt64) models.RoleSlot {
	return models.RoleSlot{CreatorID: n.Int64, Valid: n.Valid}
}

func (s *Store) CreateStory(ctx context.Context, v *models.Story) error {
	id, err := s.insert(ctx, `
		INSERT INTO stories (
			title, feature, sequence, page_count, type_id, issue_id,
			writer_id, penciller_id, inker_id, synopsis, notes
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		nullString(v.Title), nullString(v.Feature), v.Sequence, v.PageCount, v.TypeID, v.IssueID,
		slotValue(v.Writer), slotValue(v.Penciller), slotValue(v.Inker),
		nullString(v.Synopsis), nullString(v.Notes),
	)
	if err != nil {
		return fmt.Errorf("create story: %w", err)
	}
	v.ID = id
	return nil
}

func (s *Store) GetStory(ctx context.Context, id int64) (*models.Story, error) {
	row := s.DB.QueryRowContext(ctx, `
		SELECT id, title, feature, sequence, page_count, type_id, issue_id,
		       writer_id, penciller_id, inker_id, synopsis, notes
		FROM stories
		WHERE id = ?
	`, id)

	var (
		v         models.Story
		title     sql.NullString
		feature   sql.NullString
		sequence  sql.NullInt64
		pageCount sql.NullFloat64
		typeID    sql.NullInt64
		issueID   sql.NullInt64
		writer    sql.NullInt64
		penciller sql.NullInt64
		inker     sql.NullInt64
		synopsis  sql.NullString
		notes     sql.NullString
	)
	if err := row.Scan(
		&v.ID, &title, &feature, &sequence, &pageCount, &typeID, &issueID,
		&writer, &penciller, &inker, &synopsis, &notes,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan story: %w", err)
	}

	v.Title = title.String
	v.Feature = feature.String
	v.Sequence = intPtr(sequence)
	v.PageCount = floatPtr(pageCount)
	v.TypeID = int64Ptr(typeID)
	v.IssueID = int64Ptr(issueID)
	v.Writer = slotFrom(writer)
	v.Penciller = slotFrom(penciller)
	v.Inker = slotFrom(inker)
	v.Synopsis = synopsis.String
	v.Notes = notes.String
	return &v, nil
}

// UpdateStoryRoles writes the three role slots of v.
func (s *Store) UpdateStoryRoles(ctx context.Context, v *models.Story) error {
	res, err := s.DB.ExecContext(ctx, `
		UPDATE stories
		SET writer_id = ?, penciller_id = ?, inker_id = ?
		WHERE id = ?
	`, slotValue(v.Writer), slotValue(v.Penciller), slotValue(v.Inker), v.ID)
	if err != nil {
		return fmt.Errorf("update story roles: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update story roles rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update story roles: story %d not found", v.ID)
	}
	return nil
}

// AddCredit records a creator's credit on a story and returns its row id.
func (s *Store) AddCredit(ctx context.Context, c models.Credit) (int64, error) {
	id, err := s.insert(ctx, `
		INSERT INTO story_credits (story_id, creator_id, credit_type) VALUES (?, ?, ?)
	`, c.StoryID, c.CreatorID, c.CreditType)
	if err != nil {
		return 0, fmt.Errorf("add credit: %w", err)
	}
	return id, nil
}

func (s *Store) AddStoryGenre(ctx context.Context, storyID, genreID int64) error {
	_, err := s.DB.ExecContext(ctx, `
		INSERT OR IGNORE INTO story_genres (story_id, genre_id) VALUES (?, ?)
	`, storyID, genreID)
	if err != nil {
		return fmt.Errorf("add story genre: %w", err)
	}
	return nil
}

func (s *Store) AddAppearance(ctx context.Context, storyID, characterID int64) error {
	_, err := s.DB.ExecContext(ctx, `
		INSERT OR IGNORE INTO story_appearances (story_id, character_id) VALUES (?, ?)
	`, storyID, characterID)
	if err != nil {
		return fmt.Errorf("add appearance: %w", err)
	}
	return nil
}

func (s *Store) AddFeatureGenre(ctx context.Context, featureID, genreID int64) error {
	_, err := s.DB.ExecContext(ctx, `
		INSERT OR IGNORE INTO feature_genres (feature_id, genre_id) VALUES (?, ?)
	`, featureID, genreID)
	if err != nil {
		return fmt.Errorf("add feature genre: %w", err)
	}
	return nil
}

// StoryGenres returns the genre names linked to a story, sorted.
func (s *Store) StoryGenres(ctx context.Context, storyID int64) ([]string, error) {
	return s.names(ctx, `
		SELECT g.name FROM genres g
		JOIN story_genres sg ON sg.genre_id = g.id
		WHERE sg.story_id = ?
		ORDER BY g.name
	`, storyID)
}

// StoryAppearances returns the character names linked to a story, sorted.
func (s *Store) StoryAppearances(ctx context.Context, storyID int64) ([]string, error) {
	return s.names(ctx, `
		SELECT c.name FROM characters c
		JOIN story_appearances sa ON sa.character_id = c.id
		WHERE sa.story_id = ?
		ORDER BY c.name
	`, storyID)
}

func (s *Store) names(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list names: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan name: %w", err)
		}
		out = append(out, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}
