package credits

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"comicsdb/pkg/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		in   string
		want Roles
	}{
		{"script", Writer},
		{"Script", 0},
		{"PENCILS", 0},
		{"painting (cover)", Penciller},
		{"pencils", Penciller},
		{"painting", Penciller},
		{"inks", Inker},
		{"pencils and inks", Penciller | Inker},
		{"script, pencils, inks", Writer | Penciller | Inker},
		{"colors", 0},
		{"letters", 0},
		{"", 0},
		{"pencil", 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.in))
		})
	}
}

func TestRolesString(t *testing.T) {
	assert.Equal(t, "none", Roles(0).String())
	assert.Equal(t, "writer|inker", (Writer | Inker).String())
}

func TestApply(t *testing.T) {
	var s models.Story

	assert.True(t, Apply(&s, 7, Penciller|Inker))
	assert.Equal(t, models.RoleSlot{CreatorID: 7, Valid: true}, s.Penciller)
	assert.Equal(t, models.RoleSlot{CreatorID: 7, Valid: true}, s.Inker)
	assert.False(t, s.Writer.Valid)

	assert.False(t, Apply(&s, 7, Penciller|Inker), "second application changes nothing")
	assert.False(t, Apply(&s, 9, Inker), "first writer wins")
	assert.Equal(t, int64(7), s.Inker.CreatorID)

	assert.True(t, Apply(&s, 9, Writer|Inker), "only the empty slot is filled")
	assert.Equal(t, int64(9), s.Writer.CreatorID)
	assert.Equal(t, int64(7), s.Inker.CreatorID)

	assert.False(t, Apply(&s, 3, 0))
}

func TestApplyRejectsMissingCreator(t *testing.T) {
	var s models.Story
	assert.False(t, Apply(&s, 0, Writer))
	assert.False(t, s.Writer.Valid)
}
