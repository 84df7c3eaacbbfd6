package models

// Kind names a family of named entities that share one deduplication space.
type Kind string

const (
	KindPublisher        Kind = "publisher"
	KindIndiciaPublisher Kind = "indicia_publisher"
	KindBrand            Kind = "brand"
	KindCreator          Kind = "creator"
	KindGenre            Kind = "genre"
	KindCharacter        Kind = "character"
	KindGroup            Kind = "group"
)

// NamedKinds lists every kind the registry deduplicates.
var NamedKinds = []Kind{
	KindPublisher, KindIndiciaPublisher, KindBrand, KindCreator,
	KindGenre, KindCharacter, KindGroup,
}

// Attribute names understood by the store. Unknown names are ignored.
const (
	AttrNotes          = "notes"
	AttrStartYear      = "start_year"
	AttrEndYear        = "end_year"
	AttrParentID       = "parent_id"
	AttrSortName       = "sort_name"
	AttrDisambiguation = "disambiguation"
	AttrYearFirst      = "year_first_published"
	AttrDescription    = "description"
	AttrUniverseID     = "universe_id"
)

// Attrs holds the kind-specific columns of a named entity. Nil values are
// stored as NULL.
type Attrs map[string]any

// NamedEntity is a publisher, creator, genre... identified by Key.
// Attributes are written once, by whoever created the entity first.
type NamedEntity struct {
	ID    int64  `json:"id"`
	Kind  Kind   `json:"kind"`
	Name  string `json:"name"`
	Key   string `json:"key"`
	Attrs Attrs  `json:"attrs,omitempty"`
}
