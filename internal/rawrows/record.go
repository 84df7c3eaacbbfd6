// Package rawrows holds the denormalized source rows an import reads from.
// A row is an ordered list of fields addressed by position; field 0 is the
// row's external identifier.
package rawrows

import (
	"strconv"
	"strings"
)

// Field is one cell. Valid is false for cells the source left empty.
type Field struct {
	Value string
	Valid bool
}

// RawRecord is one source row.
type RawRecord []Field

// Record builds a RawRecord from cell values, treating "" as absent.
func Record(values ...string) RawRecord {
	rec := make(RawRecord, len(values))
	for i, v := range values {
		rec[i] = Field{Value: v, Valid: v != ""}
	}
	return rec
}

func (r RawRecord) Len() int { return len(r) }

func (r RawRecord) field(i int) (string, bool) {
	if i < 0 || i >= len(r) || !r[i].Valid {
		return "", false
	}
	return strings.TrimSpace(r[i].Value), true
}

// String returns field i, or "" when it is absent.
func (r RawRecord) String(i int) string {
	v, _ := r.field(i)
	return v
}

// Int parses field i as a base-10 integer.
func (r RawRecord) Int(i int) (int64, bool) {
	v, ok := r.field(i)
	if !ok || v == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (r RawRecord) Float(i int) (float64, bool) {
	v, ok := r.field(i)
	if !ok || v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Bool reads 1/0, t/f and true/false. Anything else is false.
func (r RawRecord) Bool(i int) bool {
	v, ok := r.field(i)
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(strings.ToLower(v))
	return err == nil && b
}

// ID is the external identifier held in field 0.
func (r RawRecord) ID() (int64, bool) {
	return r.Int(0)
}

func (r RawRecord) values() []*string {
	out := make([]*string, len(r))
	for i, f := range r {
		if f.Valid {
			v := f.Value
			out[i] = &v
		}
	}
	return out
}

func fromValues(values []*string) RawRecord {
	rec := make(RawRecord, len(values))
	for i, v := range values {
		if v != nil {
			rec[i] = Field{Value: *v, Valid: true}
		}
	}
	return rec
}
