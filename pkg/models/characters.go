package models

type Multiverse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Universe struct {
	ID           int64  `json:"id"`
	Name         string `json:"name,omitempty"`
	Designation  string `json:"designation,omitempty"`
	YearFirst    *int   `json:"year_first_published,omitempty"`
	Description  string `json:"description,omitempty"`
	Notes        string `json:"notes,omitempty"`
	MultiverseID *int64 `json:"multiverse_id,omitempty"`
}

// CharacterName is one of the names a character appears under.
type CharacterName struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Key         string `json:"key"`
	SortName    string `json:"sort_name"`
	CharacterID *int64 `json:"character_id,omitempty"`
	Official    bool   `json:"is_official"`
}

// Lookup is a plain id/name table such as character roles or membership types.
type Lookup struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// RelationScope says whether a relation joins characters or groups.
type RelationScope string

const (
	ScopeCharacter RelationScope = "character"
	ScopeGroup     RelationScope = "group"
)

type RelationType struct {
	ID          int64         `json:"id"`
	Scope       RelationScope `json:"scope"`
	Type        string        `json:"type"`
	ReverseType string        `json:"reverse_type"`
}

type Relation struct {
	ID     int64         `json:"id"`
	Scope  RelationScope `json:"scope"`
	FromID *int64        `json:"from_id,omitempty"`
	ToID   *int64        `json:"to_id,omitempty"`
	TypeID *int64        `json:"type_id,omitempty"`
	Notes  string        `json:"notes,omitempty"`
}

type GroupMembership struct {
	ID          int64  `json:"id"`
	CharacterID *int64 `json:"character_id,omitempty"`
	GroupID     *int64 `json:"group_id,omitempty"`
	TypeID      *int64 `json:"type_id,omitempty"`
	YearJoined  *int   `json:"year_joined,omitempty"`
	YearLeft    *int   `json:"year_left,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// GroupAppearance records a group appearing in a story.
type GroupAppearance struct {
	ID         int64  `json:"id"`
	GroupID    *int64 `json:"group_id,omitempty"`
	StoryID    *int64 `json:"story_id,omitempty"`
	UniverseID *int64 `json:"universe_id,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

type StoryCharacter struct {
	ID              int64  `json:"id"`
	StoryID         *int64 `json:"story_id,omitempty"`
	CharacterNameID *int64 `json:"character_name_id,omitempty"`
	RoleID          *int64 `json:"role_id,omitempty"`
	UniverseID      *int64 `json:"universe_id,omitempty"`
	Flashback       bool   `json:"is_flashback"`
	Origin          bool   `json:"is_origin"`
	Death           bool   `json:"is_death"`
	Notes           string `json:"notes,omitempty"`
}

type StoryCharacterGroup struct {
	ID               int64  `json:"id"`
	StoryCharacterID *int64 `json:"story_character_id,omitempty"`
	GroupID          *int64 `json:"group_id,omitempty"`
}
