package catalog

import (
	"database/sql"
	"fmt"
	"regexp"
	"strconv"

	"comicsdb/pkg/datecode"
	"comicsdb/pkg/models"
	"comicsdb/pkg/normalize"
)

func (s *Store) label(kind string, r searchRow, terms []string) models.SearchResult {
	res := models.SearchResult{Kind: kind, ID: r.id, Name: r.name}
	name := s.Highlighter.Highlight(r.name, literal(terms))

	switch kind {
	case string(models.KindPublisher):
		res.Label = fmt.Sprintf("%s <i>(%s)</i>", name, years(r.start, r.end))
	case string(models.KindIndiciaPublisher), KindSeries:
		res.Label = fmt.Sprintf("%s <i>(%s %s)</i>", name, r.context.String, years(r.start, r.end))
	case KindIssue:
		res.DisplayDate = datecode.Display(int(r.date.Int64))
		if r.context.Valid {
			res.Label = fmt.Sprintf("%s <i>(%s, %s)</i>", name, r.context.String, res.DisplayDate)
		} else {
			res.Label = fmt.Sprintf("%s <i>(%s)</i>", name, res.DisplayDate)
		}
	default:
		res.Label = name
	}
	return res
}

// literal turns user terms into plain-text patterns over the normalized
// key, the same form the search matched on.
func literal(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		out = append(out, regexp.QuoteMeta(normalize.Key(t)))
	}
	return out
}

// years renders a start-end range; an unknown bound is left blank.
func years(start, end sql.NullInt64) string {
	return yearText(start) + "-" + yearText(end)
}

func yearText(n sql.NullInt64) string {
	if !n.Valid {
		return ""
	}
	return strconv.FormatInt(n.Int64, 10)
}
