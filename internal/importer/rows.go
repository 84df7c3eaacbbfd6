package importer

import (
	"strings"

	"comicsdb/internal/rawrows"
	"comicsdb/pkg/normalize"
)

// Typed views of the dump's rows. decode functions are the only code that
// knows field positions. A reference of 0 means the row names none.

type publisherRow struct {
	Name      string
	YearBegan *int
	YearEnded *int
	Notes     string
}

func decodePublisher(r rawrows.RawRecord) publisherRow {
	return publisherRow{Name: r.String(1), YearBegan: optInt(r, 3), YearEnded: optInt(r, 4), Notes: r.String(5)}
}

type brandRow struct {
	Name  string
	Notes string
}

func decodeBrand(r rawrows.RawRecord) brandRow {
	return brandRow{Name: r.String(1), Notes: r.String(4)}
}

type indiciaPublisherRow struct {
	Name      string
	ParentID  int64
	YearBegan *int
	YearEnded *int
	Notes     string
}

func decodeIndiciaPublisher(r rawrows.RawRecord) indiciaPublisherRow {
	return indiciaPublisherRow{
		Name: r.String(1), ParentID: ref(r, 2),
		YearBegan: optInt(r, 4), YearEnded: optInt(r, 5), Notes: r.String(7),
	}
}

type seriesRow struct {
	Name        string
	YearBegan   *int
	YearEnded   *int
	PublisherID int64
	Notes       string
}

func decodeSeries(r rawrows.RawRecord) seriesRow {
	return seriesRow{
		Name: r.String(1), YearBegan: optInt(r, 4), YearEnded: optInt(r, 6),
		PublisherID: ref(r, 12), Notes: r.String(16),
	}
}

type storyTypeRow struct {
	Name     string
	SortCode *int
}

func decodeStoryType(r rawrows.RawRecord) storyTypeRow {
	return storyTypeRow{Name: r.String(1), SortCode: optInt(r, 2)}
}

// nameRow is any table whose only field of interest is a name at 1.
type nameRow struct {
	Name string
}

func decodeName(r rawrows.RawRecord) nameRow {
	return nameRow{Name: r.String(1)}
}

type issueRow struct {
	Number             string
	Volume             string
	SeriesID           int64
	BrandID            int64
	PublicationDate    string
	KeyDate            string
	IndiciaPublisherID int64
	Price              string
	PageCount          *float64
	Notes              string
	ISBN               string
	Variant            string
	Barcode            string
	Title              string
}

func decodeIssue(r rawrows.RawRecord) issueRow {
	return issueRow{
		Number:             r.String(1),
		Volume:             r.String(2),
		SeriesID:           ref(r, 5),
		BrandID:            ref(r, 8),
		PublicationDate:    r.String(10),
		KeyDate:            r.String(11),
		IndiciaPublisherID: ref(r, 12),
		Price:              r.String(13),
		PageCount:          optFloat(r, 14),
		Notes:              r.String(20),
		ISBN:               r.String(24),
		Variant:            r.String(27),
		Barcode:            r.String(28),
		Title:              r.String(30),
	}
}

type storyRow struct {
	Title      string
	Feature    string
	Sequence   *int
	PageCount  *float64
	IssueID    int64
	Script     []string
	Pencils    []string
	Inks       []string
	Genres     []string
	Characters []string
	Synopsis   string
	Notes      string
	TypeID     int64
}

func decodeStory(r rawrows.RawRecord) storyRow {
	return storyRow{
		Title:      r.String(1),
		Feature:    r.String(3),
		Sequence:   optInt(r, 4),
		PageCount:  optFloat(r, 5),
		IssueID:    ref(r, 6),
		Script:     splitCell(r.String(7)),
		Pencils:    splitCell(r.String(8)),
		Inks:       splitCell(r.String(9)),
		Genres:     splitCell(r.String(13)),
		Characters: splitCell(r.String(14)),
		Synopsis:   r.String(15),
		Notes:      r.String(17),
		TypeID:     ref(r, 25),
	}
}

type creatorRow struct {
	Name  string
	Notes string
}

func decodeCreator(r rawrows.RawRecord) creatorRow {
	return creatorRow{Name: r.String(1), Notes: joinNonEmpty(r.String(13), r.String(14))}
}

type storyCreditRow struct {
	CreatorNameID int64
	CreditTypeID  int64
	StoryID       int64
}

func decodeStoryCredit(r rawrows.RawRecord) storyCreditRow {
	return storyCreditRow{CreatorNameID: ref(r, 8), CreditTypeID: ref(r, 9), StoryID: ref(r, 10)}
}

type featureRow struct {
	Name           string
	Genres         []string
	Notes          string
	TypeID         int64
	Disambiguation string
}

func decodeFeature(r rawrows.RawRecord) featureRow {
	return featureRow{
		Name: r.String(2), Genres: splitCell(r.String(4)), Notes: r.String(7),
		TypeID: ref(r, 8), Disambiguation: r.String(10),
	}
}

type universeRow struct {
	Name         string
	Designation  string
	YearFirst    *int
	Description  string
	Notes        string
	MultiverseID int64
}

func decodeUniverse(r rawrows.RawRecord) universeRow {
	return universeRow{
		Name: r.String(3), Designation: r.String(4), YearFirst: optInt(r, 5),
		Description: r.String(7), Notes: r.String(8), MultiverseID: ref(r, 9),
	}
}

// characterRow covers gcd_character and gcd_group, which share a layout.
type characterRow struct {
	Name           string
	SortName       string
	Disambiguation string
	YearFirst      *int
	Description    string
	Notes          string
	UniverseID     int64
}

func decodeCharacter(r rawrows.RawRecord) characterRow {
	return characterRow{
		Name: r.String(2), SortName: r.String(3), Disambiguation: r.String(4),
		YearFirst: optInt(r, 5), Description: r.String(7), Notes: r.String(8),
		UniverseID: ref(r, 10),
	}
}

type characterNameRow struct {
	Name        string
	SortName    string
	CharacterID int64
	Official    bool
}

func decodeCharacterName(r rawrows.RawRecord) characterNameRow {
	return characterNameRow{Name: r.String(2), SortName: r.String(3), CharacterID: ref(r, 4), Official: r.Bool(5)}
}

type relationTypeRow struct {
	Type        string
	ReverseType string
}

func decodeRelationType(r rawrows.RawRecord) relationTypeRow {
	return relationTypeRow{Type: r.String(1), ReverseType: r.String(2)}
}

type relationRow struct {
	Notes  string
	FromID int64
	TypeID int64
	ToID   int64
}

func decodeRelation(r rawrows.RawRecord) relationRow {
	return relationRow{Notes: r.String(1), FromID: ref(r, 2), TypeID: ref(r, 3), ToID: ref(r, 4)}
}

type membershipRow struct {
	YearJoined  *int
	YearLeft    *int
	Notes       string
	CharacterID int64
	GroupID     int64
	TypeID      int64
}

func decodeMembership(r rawrows.RawRecord) membershipRow {
	return membershipRow{
		YearJoined: optInt(r, 1), YearLeft: optInt(r, 3), Notes: r.String(5),
		CharacterID: ref(r, 6), GroupID: ref(r, 7), TypeID: ref(r, 8),
	}
}

type storyCharacterRow struct {
	Flashback       bool
	Origin          bool
	Death           bool
	Notes           string
	CharacterNameID int64
	RoleID          int64
	StoryID         int64
	UniverseID      int64
}

func decodeStoryCharacter(r rawrows.RawRecord) storyCharacterRow {
	return storyCharacterRow{
		Flashback: r.Bool(2), Origin: r.Bool(3), Death: r.Bool(4), Notes: r.String(5),
		CharacterNameID: ref(r, 6), RoleID: ref(r, 7), StoryID: ref(r, 8), UniverseID: ref(r, 9),
	}
}

type storyCharacterGroupRow struct {
	StoryCharacterID int64
	GroupID          int64
}

func decodeStoryCharacterGroup(r rawrows.RawRecord) storyCharacterGroupRow {
	return storyCharacterGroupRow{StoryCharacterID: ref(r, 1), GroupID: ref(r, 2)}
}

type storyGroupRow struct {
	Notes       string
	GroupID     int64
	StoryID     int64
	UniverseID  int64
	GroupNameID int64
}

func decodeStoryGroup(r rawrows.RawRecord) storyGroupRow {
	return storyGroupRow{
		Notes: r.String(2), GroupID: ref(r, 3), StoryID: ref(r, 4),
		UniverseID: ref(r, 5), GroupNameID: ref(r, 6),
	}
}

// creatorNameDetail and groupNameDetail point at the entity they name.

func creatorOfNameDetail(r rawrows.RawRecord) int64 { return ref(r, 3) }

func groupOfNameDetail(r rawrows.RawRecord) int64 { return ref(r, r.Len()-1) }

func creditTypeName(r rawrows.RawRecord) string { return r.String(1) }

func ref(r rawrows.RawRecord, i int) int64 {
	n, ok := r.Int(i)
	if !ok || n <= 0 {
		return 0
	}
	return n
}

func optInt(r rawrows.RawRecord, i int) *int {
	n, ok := r.Int(i)
	if !ok {
		return nil
	}
	v := int(n)
	return &v
}

func optFloat(r rawrows.RawRecord, i int) *float64 {
	f, ok := r.Float(i)
	if !ok {
		return nil
	}
	return &f
}

// splitCell splits a multi-valued cell on ';', dropping blank tokens. A
// token is blank when nothing is left of it once normalized, such as a
// stray combining mark.
func splitCell(cell string) []string {
	var out []string
	for _, tok := range strings.Split(cell, ";") {
		if tok = strings.TrimSpace(tok); !blank(tok) {
			out = append(out, tok)
		}
	}
	return out
}

func blank(name string) bool {
	return strings.TrimSpace(normalize.Key(name)) == ""
}

// stripQualifier drops a "(...)" or "[...]" qualifier and what follows it.
func stripQualifier(name string) string {
	if i := strings.IndexAny(name, "(["); i >= 0 {
		name = name[:i]
	}
	return strings.TrimSpace(name)
}

func joinNonEmpty(a, b string) string {
	switch {
	case a != "" && b != "":
		return a + " " + b
	case a != "":
		return a
	default:
		return b
	}
}
