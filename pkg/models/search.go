package models

// SearchResult is one row of a catalog search, ready for display.
type SearchResult struct {
	Kind        string `json:"kind"`
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Label       string `json:"label"`
	DisplayDate string `json:"display_date,omitempty"`
}
