package models

// Pointer fields are unset when the source row left them empty.

type Series struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	YearBegan   *int   `json:"year_began,omitempty"`
	YearEnded   *int   `json:"year_ended,omitempty"`
	PublisherID *int64 `json:"publisher_id,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// Issue is one published comic. KeyDate is a datecode value.
type Issue struct {
	ID                 int64  `json:"id"`
	Number             string `json:"number,omitempty"`
	Volume             string `json:"volume,omitempty"`
	Title              string `json:"title,omitempty"`
	Variant            string `json:"variant,omitempty"`
	SeriesID           *int64 `json:"series_id,omitempty"`
	BrandID            *int64 `json:"brand_id,omitempty"`
	IndiciaPublisherID *int64 `json:"indicia_publisher_id,omitempty"`
	CoverDate          string `json:"cover_date,omitempty"`
	KeyDate            int    `json:"key_date"`
	Price              string `json:"price,omitempty"`
	Pages              *int   `json:"pages,omitempty"`
	ISBN               string `json:"isbn,omitempty"`
	Barcode            string `json:"barcode,omitempty"`
	Notes              string `json:"notes,omitempty"`
}

type StoryType struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	SortCode *int   `json:"sort_code,omitempty"`
}

type FeatureType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// RoleSlot is a story's writer, penciller or inker. It can be filled once.
type RoleSlot struct {
	CreatorID int64 `json:"creator_id,omitempty"`
	Valid     bool  `json:"valid"`
}

// Assign fills an empty slot and reports whether it did. A filled slot keeps
// its creator.
func (s *RoleSlot) Assign(creatorID int64) bool {
	if s.Valid || creatorID <= 0 {
		return false
	}
	s.CreatorID = creatorID
	s.Valid = true
	return true
}

type Story struct {
	ID        int64    `json:"id"`
	Title     string   `json:"title,omitempty"`
	Feature   string   `json:"feature,omitempty"`
	Sequence  *int     `json:"sequence,omitempty"`
	PageCount *float64 `json:"page_count,omitempty"`
	TypeID    *int64   `json:"type_id,omitempty"`
	IssueID   *int64   `json:"issue_id,omitempty"`
	Writer    RoleSlot `json:"writer"`
	Penciller RoleSlot `json:"penciller"`
	Inker     RoleSlot `json:"inker"`
	Synopsis  string   `json:"synopsis,omitempty"`
	Notes     string   `json:"notes,omitempty"`
}

// Credit links a creator to a story under a free-text credit type.
type Credit struct {
	StoryID    int64  `json:"story_id"`
	CreatorID  int64  `json:"creator_id"`
	CreditType string `json:"credit_type"`
}

type Feature struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	TypeID         *int64 `json:"type_id,omitempty"`
	Disambiguation string `json:"disambiguation,omitempty"`
	Notes          string `json:"notes,omitempty"`
}
