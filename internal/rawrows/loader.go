package rawrows

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// DefaultNullToken marks a NULL cell in database dumps.
const DefaultNullToken = `\N`

// LoadStats reports one table file.
type LoadStats struct {
	Table   string
	File    string
	Rows    int
	Skipped int
}

// Loader reads one headerless delimited file per table from Dir:
// <table>.csv is comma separated, <table>.tsv tab separated. A non-zero
// Comma overrides the delimiter implied by the extension.
type Loader struct {
	Dir       string
	NullToken string
	Comma     rune
	Store     Writer
	Log       *zap.Logger
}

func NewLoader(dir string, store Writer, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{Dir: dir, NullToken: DefaultNullToken, Store: store, Log: log}
}

// LoadAll loads every table that has a file in Dir. Tables without one are
// skipped.
func (l *Loader) LoadAll(ctx context.Context, tables []string) ([]LoadStats, error) {
	var out []LoadStats
	for _, table := range tables {
		path, comma, ok := l.find(table)
		if !ok {
			l.Log.Debug("no source file", zap.String("table", table))
			continue
		}
		stats, err := l.LoadFile(ctx, table, path, comma)
		if err != nil {
			return out, err
		}
		out = append(out, stats)
	}
	return out, nil
}

func (l *Loader) find(table string) (string, rune, bool) {
	for _, c := range []struct {
		ext   string
		comma rune
	}{{".csv", ','}, {".tsv", '\t'}} {
		path := filepath.Join(l.Dir, table+c.ext)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if l.Comma != 0 {
			return path, l.Comma, true
		}
		return path, c.comma, true
	}
	return "", 0, false
}

// LoadFile stores every row of path under table.
func (l *Loader) LoadFile(ctx context.Context, table, path string, comma rune) (LoadStats, error) {
	stats := LoadStats{Table: table, File: path}

	f, err := os.Open(path)
	if err != nil {
		return stats, err
	}
	defer f.Close()

	if err := l.read(ctx, table, f, comma, &stats); err != nil {
		return stats, fmt.Errorf("load %s: %w", path, err)
	}
	l.Log.Info("loaded table",
		zap.String("table", table),
		zap.Int("rows", stats.Rows),
		zap.Int("skipped", stats.Skipped),
	)
	return stats, nil
}

func (l *Loader) read(ctx context.Context, table string, in io.Reader, comma rune, stats *LoadStats) error {
	r := csv.NewReader(in)
	r.Comma = comma
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	for {
		row, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if len(row) == 0 {
			continue
		}

		rec := l.record(row)
		if _, ok := rec.ID(); !ok {
			stats.Skipped++
			continue
		}
		if err := l.Store.Put(ctx, table, rec); err != nil {
			if errors.Is(err, ErrNoID) {
				stats.Skipped++
				continue
			}
			return err
		}
		stats.Rows++
	}
}

func (l *Loader) record(row []string) RawRecord {
	rec := make(RawRecord, len(row))
	for i, cell := range row {
		if cell == "" || (l.NullToken != "" && strings.TrimSpace(cell) == l.NullToken) {
			continue
		}
		rec[i] = Field{Value: cell, Valid: true}
	}
	return rec
}
