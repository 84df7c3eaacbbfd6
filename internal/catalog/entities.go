package catalog

import (
	"context"
	"fmt"

	"comicsdb/pkg/models"
	"comicsdb/pkg/normalize"
)

func (s *Store) CreateSeries(ctx context.Context, v *models.Series) error {
	id, err := s.insert(ctx, `
		INSERT INTO series (name, norm_key, year_began, year_ended, publisher_id, notes)
		VALUES (?, ?, ?, ?, ?, ?)
	`, v.Name, normalize.Key(v.Name), v.YearBegan, v.YearEnded, v.PublisherID, nullString(v.Notes))
	if err != nil {
		return fmt.Errorf("create series: %w", err)
	}
	v.ID = id
	return nil
}

func (s *Store) CreateIssue(ctx context.Context, v *models.Issue) error {
	id, err := s.insert(ctx, `
		INSERT INTO issues (
			number, volume, title, norm_key, variant, series_id, brand_id, indicia_publisher_id,
			cover_date, key_date, price, pages, isbn, barcode, notes
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		nullString(v.Number), nullString(v.Volume), nullString(v.Title), normalize.Key(v.Title),
		nullString(v.Variant), v.SeriesID, v.BrandID, v.IndiciaPublisherID,
		nullString(v.CoverDate), v.KeyDate, nullString(v.Price), v.Pages,
		nullString(v.ISBN), nullString(v.Barcode), nullString(v.Notes),
	)
	if err != nil {
		return fmt.Errorf("create issue: %w", err)
	}
	v.ID = id
	return nil
}

func (s *Store) CreateStoryType(ctx context.Context, v *models.StoryType) error {
	id, err := s.insert(ctx, `INSERT INTO story_types (name, sort_code) VALUES (?, ?)`, v.Name, v.SortCode)
	if err != nil {
		return fmt.Errorf("create story type: %w", err)
	}
	v.ID = id
	return nil
}

func (s *Store) CreateFeatureType(ctx context.Context, v *models.FeatureType) error {
	id, err := s.insert(ctx, `INSERT INTO feature_types (name) VALUES (?)`, v.Name)
	if err != nil {
		return fmt.Errorf("create feature type: %w", err)
	}
	v.ID = id
	return nil
}

func (s *Store) CreateFeature(ctx context.Context, v *models.Feature) error {
	id, err := s.insert(ctx, `
		INSERT INTO features (name, type_id, disambiguation, notes)
		VALUES (?, ?, ?, ?)
	`, nullString(v.Name), v.TypeID, nullString(v.Disambiguation), nullString(v.Notes))
	if err != nil {
		return fmt.Errorf("create feature: %w", err)
	}
	v.ID = id
	return nil
}

func (s *Store) CreateMultiverse(ctx context.Context, v *models.Multiverse) error {
	id, err := s.insert(ctx, `INSERT INTO multiverses (name) VALUES (?)`, v.Name)
	if err != nil {
		return fmt.Errorf("create multiverse: %w", err)
	}
	v.ID = id
	return nil
}

func (s *Store) CreateUniverse(ctx context.Context, v *models.Universe) error {
	id, err := s.insert(ctx, `
		INSERT INTO universes (name, designation, year_first_published, description, notes, multiverse_id)
		VALUES (?, ?, ?, ?, ?, ?)
	`, nullString(v.Name), nullString(v.Designation), v.YearFirst,
		nullString(v.Description), nullString(v.Notes), v.MultiverseID)
	if err != nil {
		return fmt.Errorf("create universe: %w", err)
	}
	v.ID = id
	return nil
}

func (s *Store) CreateCharacterName(ctx context.Context, v *models.CharacterName) error {
	if v.Key == "" {
		v.Key = normalize.Key(v.Name)
	}
	id, err := s.insert(ctx, `
		INSERT INTO character_names (name, norm_key, sort_name, character_id, is_official)
		VALUES (?, ?, ?, ?, ?)
	`, v.Name, v.Key, nullString(v.SortName), v.CharacterID, boolInt(v.Official))
	if err != nil {
		return fmt.Errorf("create character name: %w", err)
	}
	v.ID = id
	return nil
}

// LookupTable names a plain id/name table.
type LookupTable string

const (
	CharacterRoles  LookupTable = "character_roles"
	MembershipTypes LookupTable = "membership_types"
)

func (s *Store) CreateLookup(ctx context.Context, table LookupTable, v *models.Lookup) error {
	switch table {
	case CharacterRoles, MembershipTypes:
	default:
		return fmt.Errorf("create lookup: unknown table %q", table)
	}
	id, err := s.insert(ctx, `INSERT INTO `+string(table)+` (name) VALUES (?)`, v.Name)
	if err != nil {
		return fmt.Errorf("create %s: %w", table, err)
	}
	v.ID = id
	return nil
}

func (s *Store) CreateRelationType(ctx context.Context, v *models.RelationType) error {
	id, err := s.insert(ctx, `
		INSERT INTO relation_types (scope, type, reverse_type) VALUES (?, ?, ?)
	`, string(v.Scope), v.Type, v.ReverseType)
	if err != nil {
		return fmt.Errorf("create relation type: %w", err)
	}
	v.ID = id
	return nil
}

func (s *Store) CreateRelation(ctx context.Context, v *models.Relation) error {
	id, err := s.insert(ctx, `
		INSERT INTO relations (scope, from_id, to_id, type_id, notes) VALUES (?, ?, ?, ?, ?)
	`, string(v.Scope), v.FromID, v.ToID, v.TypeID, nullString(v.Notes))
	if err != nil {
		return fmt.Errorf("create relation: %w", err)
	}
	v.ID = id
	return nil
}

func (s *Store) CreateMembership(ctx context.Context, v *models.GroupMembership) error {
	id, err := s.insert(ctx, `
		INSERT INTO group_memberships (character_id, group_id, type_id, year_joined, year_left, notes)
		VALUES (?, ?, ?, ?, ?, ?)
	`, v.CharacterID, v.GroupID, v.TypeID, v.YearJoined, v.YearLeft, nullString(v.Notes))
	if err != nil {
		return fmt.Errorf("create membership: %w", err)
	}
	v.ID = id
	return nil
}

func (s *Store) CreateGroupAppearance(ctx context.Context, v *models.GroupAppearance) error {
	id, err := s.insert(ctx, `
		INSERT INTO group_appearances (group_id, story_id, universe_id, notes) VALUES (?, ?, ?, ?)
	`, v.GroupID, v.StoryID, v.UniverseID, nullString(v.Notes))
	if err != nil {
		return fmt.Errorf("create group appearance: %w", err)
	}
	v.ID = id
	return nil
}

func (s *Store) CreateStoryCharacter(ctx context.Context, v *models.StoryCharacter) error {
	id, err := s.insert(ctx, `
		INSERT INTO story_characters (
			story_id, character_name_id, role_id, universe_id, is_flashback, is_origin, is_death, notes
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, v.StoryID, v.CharacterNameID, v.RoleID, v.UniverseID,
		boolInt(v.Flashback), boolInt(v.Origin), boolInt(v.Death), nullString(v.Notes))
	if err != nil {
		return fmt.Errorf("create story character: %w", err)
	}
	v.ID = id
	return nil
}

func (s *Store) CreateStoryCharacterGroup(ctx context.Context, v *models.StoryCharacterGroup) error {
	id, err := s.insert(ctx, `
		INSERT INTO story_character_groups (story_character_id, group_id) VALUES (?, ?)
	`, v.StoryCharacterID, v.GroupID)
	if err != nil {
		return fmt.Errorf("create story character group: %w", err)
	}
	v.ID = id
	return nil
}
