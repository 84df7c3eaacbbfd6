// Package highlight wraps search terms found in display text with markup,
// matching without regard to case or diacritics while keeping the original
// accents in the output.
package highlight

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"comicsdb/pkg/normalize"
)

// Highlighter wraps each match in Open and Close.
type Highlighter struct {
	Open  string
	Close string
}

// Default emits bold markers.
var Default = Highlighter{Open: "<b>", Close: "</b>"}

// Highlight uses Default.
func Highlight(text string, terms []string) string {
	return Default.Highlight(text, terms)
}

// Highlight marks terms in text. Terms are case-insensitive patterns.
//
// Text without diacritics gets one independent substitution per term, so a
// later term may match before an earlier one, though never inside text an
// earlier term already marked. Text with diacritics is
// decomposed and terms must match in order, each strictly after the
// previous match; the result is returned in decomposed form. Text with no
// match comes back unchanged.
func (h Highlighter) Highlight(text string, terms []string) string {
	if text == "" || len(terms) == 0 {
		return text
	}
	if normalize.Key(text) == strings.ToLower(text) {
		return h.substitute(text, terms)
	}
	return h.mark(text, terms)
}

// substitute marks the first match of each term that does not touch text
// already marked by an earlier term.
func (h Highlighter) substitute(text string, terms []string) string {
	var marked []span // byte ranges, markers included
	grow := len(h.Open) + len(h.Close)

	for _, term := range terms {
		re := compile(term)
		if re == nil {
			continue
		}
		loc := firstFree(re.FindAllStringIndex(text, -1), marked)
		if loc == nil {
			continue
		}
		text = text[:loc[0]] + h.Open + text[loc[0]:loc[1]] + h.Close + text[loc[1]:]

		for i := range marked {
			if marked[i].start >= loc[1] {
				marked[i].start += grow
				marked[i].end += grow
			}
		}
		marked = append(marked, span{start: loc[0], end: loc[1] + grow})
	}
	return text
}

func firstFree(matches [][]int, marked []span) []int {
next:
	for _, loc := range matches {
		if loc[0] == loc[1] {
			continue
		}
		for _, m := range marked {
			if loc[0] < m.end && loc[1] > m.start {
				continue next
			}
		}
		return loc
	}
	return nil
}

// span is a half-open range: runes of the decomposed text in mark, bytes of
// the marked text in substitute.
type span struct {
	start, end int
}

func (h Highlighter) mark(text string, terms []string) string {
	decomposed := []rune(normalize.Decompose(text))

	// plain[i] is the i-th base character; remap[i] is its position in decomposed
	plain := make([]rune, 0, len(decomposed))
	remap := make([]int, 0, len(decomposed))
	for i, r := range decomposed {
		if normalize.IsCombining(r) {
			continue
		}
		plain = append(plain, unicode.ToLower(r))
		remap = append(remap, i)
	}

	var spans []span
	cursor := 0
	for _, term := range terms {
		if cursor >= len(plain) {
			break
		}
		re := compile(term)
		if re == nil {
			continue
		}
		rest := string(plain[cursor:])
		loc := re.FindStringIndex(rest)
		if loc == nil || loc[0] == loc[1] {
			continue
		}
		start := cursor + utf8.RuneCountInString(rest[:loc[0]])
		end := cursor + utf8.RuneCountInString(rest[:loc[1]])

		closeAt := len(decomposed)
		if end < len(plain) {
			closeAt = remap[end]
		}
		spans = append(spans, span{start: remap[start], end: closeAt})
		// skip one extra character so adjacent terms do not chain
		cursor = end + 1
	}
	if len(spans) == 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text) + len(spans)*(len(h.Open)+len(h.Close)))
	next := 0
	for i, r := range decomposed {
		if next > 0 && spans[next-1].end == i {
			b.WriteString(h.Close)
		}
		if next < len(spans) && spans[next].start == i {
			b.WriteString(h.Open)
			next++
		}
		b.WriteRune(r)
	}
	if spans[len(spans)-1].end == len(decomposed) {
		b.WriteString(h.Close)
	}
	return b.String()
}

func compile(term string) *regexp.Regexp {
	if term == "" {
		return nil
	}
	re, err := regexp.Compile("(?i)" + term)
	if err != nil {
		re = regexp.MustCompile("(?i)" + regexp.QuoteMeta(term))
	}
	return re
}
