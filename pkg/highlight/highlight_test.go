package highlight

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/unicode/norm"
)

func TestHighlightPlainText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		terms []string
		want  string
	}{
		{
			name:  "single term",
			text:  "Batman Returns",
			terms: []string{"Batman"},
			want:  "<b>Batman</b> Returns",
		},
		{
			name:  "case insensitive keeps original casing",
			text:  "Batman Returns",
			terms: []string{"batman"},
			want:  "<b>Batman</b> Returns",
		},
		{
			name:  "only first occurrence",
			text:  "man of the man",
			terms: []string{"man"},
			want:  "<b>man</b> of the man",
		},
		{
			name:  "later term may match earlier",
			text:  "the batman",
			terms: []string{"man", "bat"},
			want:  "the <b>bat</b><b>man</b>",
		},
		{
			name:  "no match",
			text:  "Batman Returns",
			terms: []string{"zzz-no-match"},
			want:  "Batman Returns",
		},
		{
			name:  "pattern term",
			text:  "Spider-Man 2099",
			terms: []string{`\d+`},
			want:  "Spider-Man <b>2099</b>",
		},
		{
			name:  "invalid pattern treated literally",
			text:  "What If (1977)",
			terms: []string{"(1977"},
			want:  "What If <b>(1977</b>)",
		},
		{
			name:  "later term skips marked text",
			text:  "bob",
			terms: []string{"bob", "b"},
			want:  "<b>bob</b>",
		},
		{
			name:  "later term finds the next free match",
			text:  "bob and bo",
			terms: []string{"bob", "b"},
			want:  "<b>bob</b> and <b>b</b>o",
		},
		{
			name:  "markers are never matched",
			text:  "Sandman",
			terms: []string{"sand", "b"},
			want:  "<b>Sand</b>man",
		},
		{
			name:  "empty term ignored",
			text:  "Sandman",
			terms: []string{""},
			want:  "Sandman",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Highlight(tt.text, tt.terms))
		})
	}
}

func TestHighlightDiacritics(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		terms []string
		want  string
	}{
		{
			name:  "accent preserved",
			text:  "Café Noir",
			terms: []string{"cafe"},
			want:  "<b>Cafe\u0301</b> Noir",
		},
		{
			name:  "accented term",
			text:  "Café Noir",
			terms: []string{"noir"},
			want:  "Cafe\u0301 <b>Noir</b>",
		},
		{
			name:  "upper case accents",
			text:  "ÉCOLE",
			terms: []string{"ecole"},
			want:  "<b>E\u0301COLE</b>",
		},
		{
			name:  "terms in order",
			text:  "thé bat man",
			terms: []string{"bat", "man"},
			want:  "the\u0301 <b>bat</b> <b>man</b>",
		},
		{
			name:  "term before cursor is unmatched",
			text:  "thé bat man",
			terms: []string{"man", "bat"},
			want:  "the\u0301 bat <b>man</b>",
		},
		{
			name:  "adjacent term skipped by gap",
			text:  "thé batman",
			terms: []string{"bat", "man"},
			want:  "the\u0301 <b>bat</b>man",
		},
		{
			name:  "unmatched term keeps cursor",
			text:  "Hergé et Tintin",
			terms: []string{"zzz", "tintin"},
			want:  "Herge\u0301 et <b>Tintin</b>",
		},
		{
			name:  "match ending on accented letter",
			text:  "Astérix le Gaulois",
			terms: []string{"aste"},
			want:  "<b>Aste\u0301</b>rix le Gaulois",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Highlight(tt.text, tt.terms))
		})
	}
}

func TestHighlightNoMatchReturnsInput(t *testing.T) {
	text := "Café Noir"
	assert.Equal(t, text, Highlight(text, []string{"zzz-no-match"}))
	assert.Equal(t, text, Highlight(text, nil))
}

func TestHighlightPreservesVisualText(t *testing.T) {
	text := "Les Aventures de Tintin au Congo: Hergé"
	out := Highlight(text, []string{"tintin", "herge"})
	stripped := Highlighter{}.Highlight(text, []string{"tintin", "herge"})
	assert.Equal(t, norm.NFC.String(text), norm.NFC.String(stripped))
	assert.Contains(t, out, "<b>Tintin</b>")
	assert.Contains(t, out, "<b>Herge\u0301</b>")
}

func TestCustomMarkers(t *testing.T) {
	h := Highlighter{Open: "[", Close: "]"}
	assert.Equal(t, "[Bat]man", h.Highlight("Batman", []string{"bat"}))
	assert.Equal(t, "[Cafe\u0301]", h.Highlight("Café", []string{"cafe"}))
}

func TestHighlightConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, "<b>Cafe\u0301</b> Noir", Highlight("Café Noir", []string{"cafe"}))
		}()
	}
	wg.Wait()
}
