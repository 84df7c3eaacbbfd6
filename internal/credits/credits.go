// Package credits maps free-text credit descriptions onto a story's writer,
// penciller and inker slots.
package credits

import (
	"strings"

	"comicsdb/pkg/models"
)

// Roles is a set of story roles.
type Roles uint8

const (
	Writer Roles = 1 << iota
	Penciller
	Inker
)

func (r Roles) Has(role Roles) bool { return r&role != 0 }

func (r Roles) String() string {
	var parts []string
	if r.Has(Writer) {
		parts = append(parts, "writer")
	}
	if r.Has(Penciller) {
		parts = append(parts, "penciller")
	}
	if r.Has(Inker) {
		parts = append(parts, "inker")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// Classify reads a credit type description. Every role it mentions is
// reported, so "pencils and inks" is both a penciller and an inker credit.
// Matching is on case-sensitive substrings, as the dump spells credit types
// in lower case.
func Classify(description string) Roles {
	var r Roles
	if strings.Contains(description, "script") {
		r |= Writer
	}
	if strings.Contains(description, "pencils") || strings.Contains(description, "painting") {
		r |= Penciller
	}
	if strings.Contains(description, "inks") {
		r |= Inker
	}
	return r
}

// Apply gives creatorID every empty slot named by roles and reports whether
// any slot changed. Filled slots are never overwritten.
func Apply(story *models.Story, creatorID int64, roles Roles) bool {
	changed := false
	if roles.Has(Writer) && story.Writer.Assign(creatorID) {
		changed = true
	}
	if roles.Has(Penciller) && story.Penciller.Assign(creatorID) {
		changed = true
	}
	if roles.Has(Inker) && story.Inker.Assign(creatorID) {
		changed = true
	}
	return changed
}
