package importer

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"comicsdb/internal/catalog"
	"comicsdb/internal/credits"
	"comicsdb/internal/rawrows"
	"comicsdb/pkg/datecode"
	"comicsdb/pkg/models"
)

func defaultConverters() map[Table]Converter {
	return map[Table]Converter{
		TablePublisher:         ConverterFunc(convertPublisher),
		TableIndiciaPublisher:  ConverterFunc(convertIndiciaPublisher),
		TableBrand:             ConverterFunc(convertBrand),
		TableSeries:            ConverterFunc(convertSeries),
		TableIssue:             ConverterFunc(convertIssue),
		TableStoryType:         ConverterFunc(convertStoryType),
		TableCreator:           ConverterFunc(convertCreator),
		TableMultiverse:        ConverterFunc(convertMultiverse),
		TableUniverse:          ConverterFunc(convertUniverse),
		TableCharacter:         characterConverter(models.KindCharacter),
		TableGroup:             characterConverter(models.KindGroup),
		TableStory:             ConverterFunc(convertStory),
		TableStoryCredit:       ConverterFunc(convertStoryCredit),
		TableFeatureType:       ConverterFunc(convertFeatureType),
		TableFeature:           ConverterFunc(convertFeature),
		TableCharacterNameDtl:  ConverterFunc(convertCharacterName),
		TableCharacterRole:     lookupConverter(catalog.CharacterRoles),
		TableMembershipType:    lookupConverter(catalog.MembershipTypes),
		TableCharRelationType:  relationTypeConverter(models.ScopeCharacter),
		TableGroupRelationType: relationTypeConverter(models.ScopeGroup),
		TableCharacterRelation: relationConverter(models.ScopeCharacter, TableCharacter, TableCharRelationType),
		TableGroupRelation:     relationConverter(models.ScopeGroup, TableGroup, TableGroupRelationType),
		TableGroupMembership:   ConverterFunc(convertMembership),
		TableStoryCharacter:    ConverterFunc(convertStoryCharacter),
		TableStoryCharGroup:    ConverterFunc(convertStoryCharacterGroup),
		TableStoryGroup:        ConverterFunc(convertStoryGroup),
	}
}

func convertPublisher(ctx context.Context, im *Importer, rec rawrows.RawRecord) (Outcome, error) {
	row := decodePublisher(rec)
	return im.named(ctx, models.KindPublisher, row.Name, models.Attrs{
		models.AttrStartYear: row.YearBegan,
		models.AttrEndYear:   row.YearEnded,
		models.AttrNotes:     row.Notes,
	})
}

func convertIndiciaPublisher(ctx context.Context, im *Importer, rec rawrows.RawRecord) (Outcome, error) {
	row := decodeIndiciaPublisher(rec)
	parent, err := im.resolve(ctx, TablePublisher, row.ParentID)
	if err != nil {
		return Outcome{}, err
	}
	return im.named(ctx, models.KindIndiciaPublisher, row.Name, models.Attrs{
		models.AttrParentID:  parent,
		models.AttrStartYear: row.YearBegan,
		models.AttrEndYear:   row.YearEnded,
		models.AttrNotes:     row.Notes,
	})
}

func convertBrand(ctx context.Context, im *Importer, rec rawrows.RawRecord) (Outcome, error) {
	row := decodeBrand(rec)
	return im.named(ctx, models.KindBrand, row.Name, models.Attrs{models.AttrNotes: row.Notes})
}

func convertCreator(ctx context.Context, im *Importer, rec rawrows.RawRecord) (Outcome, error) {
	row := decodeCreator(rec)
	return im.named(ctx, models.KindCreator, row.Name, models.Attrs{models.AttrNotes: row.Notes})
}

func convertSeries(ctx context.Context, im *Importer, rec rawrows.RawRecord) (Outcome, error) {
	row := decodeSeries(rec)
	publisher, err := im.resolve(ctx, TablePublisher, row.PublisherID)
	if err != nil {
		return Outcome{}, err
	}
	v := &models.Series{
		Name: row.Name, YearBegan: row.YearBegan, YearEnded: row.YearEnded,
		PublisherID: publisher, Notes: row.Notes,
	}
	if err := im.Store.CreateSeries(ctx, v); err != nil {
		return Outcome{}, err
	}
	return Outcome{ID: v.ID}, nil
}

func convertIssue(ctx context.Context, im *Importer, rec rawrows.RawRecord) (Outcome, error) {
	row := decodeIssue(rec)
	v := &models.Issue{
		Number:    row.Number,
		Volume:    row.Volume,
		Title:     row.Title,
		Variant:   row.Variant,
		CoverDate: row.PublicationDate,
		KeyDate:   datecode.Encode(row.KeyDate),
		Price:     row.Price,
		ISBN:      row.ISBN,
		Barcode:   row.Barcode,
		Notes:     row.Notes,
	}
	if row.PageCount != nil {
		pages := int(*row.PageCount)
		v.Pages = &pages
	}

	var err error
	if v.SeriesID, err = im.resolve(ctx, TableSeries, row.SeriesID); err != nil {
		return Outcome{}, err
	}
	if v.BrandID, err = im.resolve(ctx, TableBrand, row.BrandID); err != nil {
		return Outcome{}, err
	}
	if v.IndiciaPublisherID, err = im.resolve(ctx, TableIndiciaPublisher, row.IndiciaPublisherID); err != nil {
		return Outcome{}, err
	}

	if err := im.Store.CreateIssue(ctx, v); err != nil {
		return Outcome{}, err
	}
	return Outcome{ID: v.ID}, nil
}

func convertStoryType(ctx context.Context, im *Importer, rec rawrows.RawRecord) (Outcome, error) {
	row := decodeStoryType(rec)
	v := &models.StoryType{Name: row.Name, SortCode: row.SortCode}
	if err := im.Store.CreateStoryType(ctx, v); err != nil {
		return Outcome{}, err
	}
	return Outcome{ID: v.ID}, nil
}

func convertFeatureType(ctx context.Context, im *Importer, rec rawrows.RawRecord) (Outcome, error) {
	v := &models.FeatureType{Name: decodeName(rec).Name}
	if err := im.Store.CreateFeatureType(ctx, v); err != nil {
		return Outcome{}, err
	}
	return Outcome{ID: v.ID}, nil
}

// convertStory creates the story with its role slots filled from the
// script, pencils and inks cells, then links its genres and characters.
func convertStory(ctx context.Context, im *Importer, rec rawrows.RawRecord) (Outcome, error) {
	row := decodeStory(rec)
	v := &models.Story{
		Title: row.Title, Feature: row.Feature, Sequence: row.Sequence,
		PageCount: row.PageCount, Synopsis: row.Synopsis, Notes: row.Notes,
	}

	var err error
	if v.IssueID, err = im.resolve(ctx, TableIssue, row.IssueID); err != nil {
		return Outcome{}, err
	}
	if v.TypeID, err = im.resolve(ctx, TableStoryType, row.TypeID); err != nil {
		return Outcome{}, err
	}

	for _, cell := range []struct {
		names []string
		slot  *models.RoleSlot
	}{
		{row.Script, &v.Writer},
		{row.Pencils, &v.Penciller},
		{row.Inks, &v.Inker},
	} {
		if err := im.fillSlot(ctx, cell.slot, cell.names); err != nil {
			return Outcome{}, err
		}
	}

	if err := im.Store.CreateStory(ctx, v); err != nil {
		return Outcome{}, err
	}

	for _, name := range row.Genres {
		genre, ok, err := im.cellNamed(ctx, models.KindGenre, name)
		if err != nil {
			return Outcome{ID: v.ID}, err
		}
		if !ok {
			continue
		}
		if err := im.Store.AddStoryGenre(ctx, v.ID, genre.ID); err != nil {
			return Outcome{ID: v.ID}, err
		}
	}

	for _, raw := range row.Characters {
		name := stripQualifier(raw)
		if blank(name) {
			continue
		}
		character, ok, err := im.cellNamed(ctx, models.KindCharacter, name)
		if err != nil {
			return Outcome{ID: v.ID}, err
		}
		if !ok {
			continue
		}
		if err := im.Store.AddAppearance(ctx, v.ID, character.ID); err != nil {
			return Outcome{ID: v.ID}, err
		}
	}

	return Outcome{ID: v.ID}, nil
}

// fillSlot gives slot the first usable creator named in names. Every name is
// still registered as a creator.
func (im *Importer) fillSlot(ctx context.Context, slot *models.RoleSlot, names []string) error {
	for _, name := range names {
		creator, ok, err := im.cellNamed(ctx, models.KindCreator, name)
		if err != nil {
			return err
		}
		if ok {
			slot.Assign(creator.ID)
		}
	}
	return nil
}

// convertStoryCredit applies one credit row to its story's role slots and
// records the credit itself.
func convertStoryCredit(ctx context.Context, im *Importer, rec rawrows.RawRecord) (Outcome, error) {
	row := decodeStoryCredit(rec)

	creatorID, err := im.through(ctx, TableCreatorNameDetail, row.CreatorNameID, TableCreator, creatorOfNameDetail)
	if err != nil {
		return Outcome{}, err
	}
	if creatorID == nil {
		im.unresolved(TableCreatorNameDetail, row.CreatorNameID)
		return Outcome{}, nil
	}
	storyID, err := im.resolve(ctx, TableStory, row.StoryID)
	if err != nil || storyID == nil {
		return Outcome{}, err
	}

	description := ""
	if ct, ok, err := im.Rows.Lookup(ctx, string(TableCreditType), row.CreditTypeID); err != nil {
		return Outcome{}, err
	} else if ok {
		description = creditTypeName(ct)
	}

	story, err := im.Store.GetStory(ctx, *storyID)
	if err != nil {
		return Outcome{}, err
	}
	if story == nil {
		return Outcome{}, fmt.Errorf("story %d vanished", *storyID)
	}

	roles := credits.Classify(description)
	if credits.Apply(story, *creatorID, roles) {
		if err := im.Store.UpdateStoryRoles(ctx, story); err != nil {
			return Outcome{}, err
		}
		im.Log.Debug("story roles updated",
			zap.Int64("story_id", story.ID),
			zap.Int64("creator_id", *creatorID),
			zap.Stringer("roles", roles),
		)
	}

	id, err := im.Store.AddCredit(ctx, models.Credit{StoryID: story.ID, CreatorID: *creatorID, CreditType: description})
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{ID: id}, nil
}

func convertFeature(ctx context.Context, im *Importer, rec rawrows.RawRecord) (Outcome, error) {
	row := decodeFeature(rec)
	typeID, err := im.resolve(ctx, TableFeatureType, row.TypeID)
	if err != nil {
		return Outcome{}, err
	}
	v := &models.Feature{Name: row.Name, TypeID: typeID, Disambiguation: row.Disambiguation, Notes: row.Notes}
	if err := im.Store.CreateFeature(ctx, v); err != nil {
		return Outcome{}, err
	}

	for _, name := range row.Genres {
		genre, ok, err := im.cellNamed(ctx, models.KindGenre, name)
		if err != nil {
			return Outcome{ID: v.ID}, err
		}
		if !ok {
			continue
		}
		if err := im.Store.AddFeatureGenre(ctx, v.ID, genre.ID); err != nil {
			return Outcome{ID: v.ID}, err
		}
	}
	return Outcome{ID: v.ID}, nil
}

func convertMultiverse(ctx context.Context, im *Importer, rec rawrows.RawRecord) (Outcome, error) {
	v := &models.Multiverse{Name: rec.String(2)}
	if v.Name == "" {
		return Outcome{}, errors.New("multiverse without a name")
	}
	if err := im.Store.CreateMultiverse(ctx, v); err != nil {
		return Outcome{}, err
	}
	return Outcome{ID: v.ID}, nil
}

func convertUniverse(ctx context.Context, im *Importer, rec rawrows.RawRecord) (Outcome, error) {
	row := decodeUniverse(rec)
	multiverse, err := im.resolve(ctx, TableMultiverse, row.MultiverseID)
	if err != nil {
		return Outcome{}, err
	}
	v := &models.Universe{
		Name: row.Name, Designation: row.Designation, YearFirst: row.YearFirst,
		Description: row.Description, Notes: row.Notes, MultiverseID: multiverse,
	}
	if err := im.Store.CreateUniverse(ctx, v); err != nil {
		return Outcome{}, err
	}
	return Outcome{ID: v.ID}, nil
}

// characterConverter registers every character or group row as its own
// entity, even when another row has the same name.
func characterConverter(kind models.Kind) Converter {
	return ConverterFunc(func(ctx context.Context, im *Importer, rec rawrows.RawRecord) (Outcome, error) {
		row := decodeCharacter(rec)
		universe, err := im.resolve(ctx, TableUniverse, row.UniverseID)
		if err != nil {
			return Outcome{}, err
		}
		e, err := im.Registry.Register(ctx, kind, row.Name, models.Attrs{
			models.AttrSortName:       row.SortName,
			models.AttrDisambiguation: row.Disambiguation,
			models.AttrYearFirst:      row.YearFirst,
			models.AttrDescription:    row.Description,
			models.AttrNotes:          row.Notes,
			models.AttrUniverseID:     universe,
		})
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{ID: e.ID}, nil
	})
}

func convertCharacterName(ctx context.Context, im *Importer, rec rawrows.RawRecord) (Outcome, error) {
	row := decodeCharacterName(rec)
	if row.Name == "" {
		return Outcome{}, errors.New("character name is blank")
	}
	character, err := im.resolve(ctx, TableCharacter, row.CharacterID)
	if err != nil {
		return Outcome{}, err
	}
	v := &models.CharacterName{Name: row.Name, SortName: row.SortName, CharacterID: character, Official: row.Official}
	if err := im.Store.CreateCharacterName(ctx, v); err != nil {
		return Outcome{}, err
	}
	return Outcome{ID: v.ID}, nil
}

func lookupConverter(table catalog.LookupTable) Converter {
	return ConverterFunc(func(ctx context.Context, im *Importer, rec rawrows.RawRecord) (Outcome, error) {
		v := &models.Lookup{Name: decodeName(rec).Name}
		if v.Name == "" {
			return Outcome{}, fmt.Errorf("%s row without a name", table)
		}
		if err := im.Store.CreateLookup(ctx, table, v); err != nil {
			return Outcome{}, err
		}
		return Outcome{ID: v.ID}, nil
	})
}

func relationTypeConverter(scope models.RelationScope) Converter {
	return ConverterFunc(func(ctx context.Context, im *Importer, rec rawrows.RawRecord) (Outcome, error) {
		row := decodeRelationType(rec)
		v := &models.RelationType{Scope: scope, Type: row.Type, ReverseType: row.ReverseType}
		if err := im.Store.CreateRelationType(ctx, v); err != nil {
			return Outcome{}, err
		}
		return Outcome{ID: v.ID}, nil
	})
}

// relationConverter links two characters (or two groups) through a
// relation type of the same scope.
func relationConverter(scope models.RelationScope, members, types Table) Converter {
	return ConverterFunc(func(ctx context.Context, im *Importer, rec rawrows.RawRecord) (Outcome, error) {
		row := decodeRelation(rec)
		v := &models.Relation{Scope: scope, Notes: row.Notes}

		var err error
		if v.FromID, err = im.resolve(ctx, members, row.FromID); err != nil {
			return Outcome{}, err
		}
		if v.ToID, err = im.resolve(ctx, members, row.ToID); err != nil {
			return Outcome{}, err
		}
		if v.TypeID, err = im.resolve(ctx, types, row.TypeID); err != nil {
			return Outcome{}, err
		}

		if err := im.Store.CreateRelation(ctx, v); err != nil {
			return Outcome{}, err
		}
		return Outcome{ID: v.ID}, nil
	})
}

func convertMembership(ctx context.Context, im *Importer, rec rawrows.RawRecord) (Outcome, error) {
	row := decodeMembership(rec)
	v := &models.GroupMembership{YearJoined: row.YearJoined, YearLeft: row.YearLeft, Notes: row.Notes}

	var err error
	if v.CharacterID, err = im.resolve(ctx, TableCharacter, row.CharacterID); err != nil {
		return Outcome{}, err
	}
	if v.GroupID, err = im.resolve(ctx, TableGroup, row.GroupID); err != nil {
		return Outcome{}, err
	}
	if v.TypeID, err = im.resolve(ctx, TableMembershipType, row.TypeID); err != nil {
		return Outcome{}, err
	}

	if err := im.Store.CreateMembership(ctx, v); err != nil {
		return Outcome{}, err
	}
	return Outcome{ID: v.ID}, nil
}

func convertStoryCharacter(ctx context.Context, im *Importer, rec rawrows.RawRecord) (Outcome, error) {
	row := decodeStoryCharacter(rec)
	v := &models.StoryCharacter{Flashback: row.Flashback, Origin: row.Origin, Death: row.Death, Notes: row.Notes}

	var err error
	if v.CharacterNameID, err = im.resolve(ctx, TableCharacterNameDtl, row.CharacterNameID); err != nil {
		return Outcome{}, err
	}
	if v.RoleID, err = im.resolve(ctx, TableCharacterRole, row.RoleID); err != nil {
		return Outcome{}, err
	}
	if v.StoryID, err = im.resolve(ctx, TableStory, row.StoryID); err != nil {
		return Outcome{}, err
	}
	if v.UniverseID, err = im.resolve(ctx, TableUniverse, row.UniverseID); err != nil {
		return Outcome{}, err
	}

	if err := im.Store.CreateStoryCharacter(ctx, v); err != nil {
		return Outcome{}, err
	}
	return Outcome{ID: v.ID}, nil
}

func convertStoryCharacterGroup(ctx context.Context, im *Importer, rec rawrows.RawRecord) (Outcome, error) {
	row := decodeStoryCharacterGroup(rec)
	v := &models.StoryCharacterGroup{}

	var err error
	if v.StoryCharacterID, err = im.resolve(ctx, TableStoryCharacter, row.StoryCharacterID); err != nil {
		return Outcome{}, err
	}
	if v.GroupID, err = im.resolve(ctx, TableGroup, row.GroupID); err != nil {
		return Outcome{}, err
	}

	if err := im.Store.CreateStoryCharacterGroup(ctx, v); err != nil {
		return Outcome{}, err
	}
	return Outcome{ID: v.ID}, nil
}

// convertStoryGroup finds the group by its own id, falling back to the
// group named by the row's group name detail.
func convertStoryGroup(ctx context.Context, im *Importer, rec rawrows.RawRecord) (Outcome, error) {
	row := decodeStoryGroup(rec)
	v := &models.GroupAppearance{Notes: row.Notes}

	var err error
	if v.GroupID, err = im.follow(ctx, TableGroup, row.GroupID); err != nil {
		return Outcome{}, err
	}
	if v.GroupID == nil {
		if v.GroupID, err = im.through(ctx, TableGroupNameDetail, row.GroupNameID, TableGroup, groupOfNameDetail); err != nil {
			return Outcome{}, err
		}
		if v.GroupID == nil && (row.GroupID != 0 || row.GroupNameID != 0) {
			im.unresolved(TableGroup, row.GroupID)
		}
	}
	if v.StoryID, err = im.resolve(ctx, TableStory, row.StoryID); err != nil {
		return Outcome{}, err
	}
	if v.UniverseID, err = im.resolve(ctx, TableUniverse, row.UniverseID); err != nil {
		return Outcome{}, err
	}

	if err := im.Store.CreateGroupAppearance(ctx, v); err != nil {
		return Outcome{}, err
	}
	return Outcome{ID: v.ID}, nil
}
