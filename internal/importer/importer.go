// Package importer turns the dump's raw rows into the normalized catalog.
// Tables are converted one row at a time, in Plan order, by a single writer.
package importer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"comicsdb/internal/catalog"
	"comicsdb/internal/rawrows"
	"comicsdb/internal/registry"
	"comicsdb/pkg/models"
)

// Outcome is what converting one row produced. ID is the entity the row
// became, or 0 when it produced nothing to link.
type Outcome struct {
	ID     int64
	Reused bool
}

// Converter turns one raw row of its table into catalog entities.
type Converter interface {
	Convert(ctx context.Context, im *Importer, rec rawrows.RawRecord) (Outcome, error)
}

type ConverterFunc func(ctx context.Context, im *Importer, rec rawrows.RawRecord) (Outcome, error)

func (f ConverterFunc) Convert(ctx context.Context, im *Importer, rec rawrows.RawRecord) (Outcome, error) {
	return f(ctx, im, rec)
}

// TableStats counts one table of a run.
type TableStats struct {
	Table      Table `json:"table"`
	Rows       int   `json:"rows"`
	Created    int   `json:"created"`
	Reused     int   `json:"reused"`
	Failed     int   `json:"failed"`
	Unresolved int   `json:"unresolved"`
}

type Result struct {
	RunID    uuid.UUID     `json:"run_id"`
	Started  time.Time     `json:"started"`
	Duration time.Duration `json:"duration"`
	Tables   []TableStats  `json:"tables"`
}

// Totals sums the per-table counts.
func (r Result) Totals() TableStats {
	var t TableStats
	for _, s := range r.Tables {
		t.Rows += s.Rows
		t.Created += s.Created
		t.Reused += s.Reused
		t.Failed += s.Failed
		t.Unresolved += s.Unresolved
	}
	return t
}

type Importer struct {
	Rows     rawrows.Lookup
	Store    *catalog.Store
	Registry *registry.Registry
	Log      *zap.Logger
	RunID    uuid.UUID

	converters map[Table]Converter
	plan       []Table
	stats      *TableStats
}

func New(rows rawrows.Lookup, store *catalog.Store, log *zap.Logger) *Importer {
	if log == nil {
		log = zap.NewNop()
	}
	runID := uuid.New()
	log = log.Named("importer").With(zap.String("run_id", runID.String()))
	return &Importer{
		Rows:       rows,
		Store:      store,
		Registry:   registry.New(store, log.Named("registry")),
		Log:        log,
		RunID:      runID,
		converters: defaultConverters(),
		plan:       Plan,
	}
}

// Handle replaces the converter for table, adding the table to the end of
// the plan if it is not already in it.
func (im *Importer) Handle(table Table, c Converter) {
	if _, ok := im.converters[table]; !ok {
		im.plan = append(append([]Table(nil), im.plan...), table)
	}
	im.converters[table] = c
}

// Run converts every planned table. A row that fails is logged and counted;
// only cancellation or a failing row source stops the run.
func (im *Importer) Run(ctx context.Context) (Result, error) {
	res := Result{RunID: im.RunID, Started: time.Now()}
	im.Log.Info("import started", zap.Int("tables", len(im.plan)))

	for _, table := range im.plan {
		stats, err := im.runTable(ctx, table)
		res.Tables = append(res.Tables, stats)
		if err != nil {
			res.Duration = time.Since(res.Started)
			return res, fmt.Errorf("import %s: %w", table, err)
		}
	}

	res.Duration = time.Since(res.Started)
	totals := res.Totals()
	im.Log.Info("import finished",
		zap.Int("rows", totals.Rows),
		zap.Int("created", totals.Created),
		zap.Int("failed", totals.Failed),
		zap.Int("unresolved", totals.Unresolved),
		zap.Duration("took", res.Duration),
	)
	return res, nil
}

func (im *Importer) runTable(ctx context.Context, table Table) (TableStats, error) {
	stats := TableStats{Table: table}
	conv, ok := im.converters[table]
	if !ok {
		return stats, fmt.Errorf("no converter for %s", table)
	}

	im.stats = &stats
	defer func() { im.stats = nil }()

	err := im.Rows.Each(ctx, string(table), func(rec rawrows.RawRecord) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		stats.Rows++
		im.convertRow(ctx, table, conv, rec)
		return nil
	})

	im.Log.Info("table imported",
		zap.String("table", string(table)),
		zap.Int("rows", stats.Rows),
		zap.Int("created", stats.Created),
		zap.Int("reused", stats.Reused),
		zap.Int("failed", stats.Failed),
		zap.Int("unresolved", stats.Unresolved),
	)
	return stats, err
}

func (im *Importer) convertRow(ctx context.Context, table Table, conv Converter, rec rawrows.RawRecord) {
	extID, _ := rec.ID()

	// a row that failed after persisting its entity is still linked, so
	// later rows can reference the partial entity
	out, err := conv.Convert(ctx, im, rec)
	if out.ID > 0 {
		if linkErr := im.Store.Link(ctx, string(table), extID, out.ID); linkErr != nil && err == nil {
			err = linkErr
		}
	}
	if err != nil {
		im.stats.Failed++
		im.Log.Warn("row failed",
			zap.String("table", string(table)),
			zap.Int64("external_id", extID),
			zap.Error(err),
		)
		return
	}

	switch {
	case out.ID == 0:
	case out.Reused:
		im.stats.Reused++
	default:
		im.stats.Created++
	}
}

// resolve maps a reference to table onto the entity its row became. A
// reference that cannot be followed is counted and comes back nil.
func (im *Importer) resolve(ctx context.Context, table Table, externalID int64) (*int64, error) {
	if externalID == 0 {
		return nil, nil
	}
	id, err := im.follow(ctx, table, externalID)
	if err != nil || id != nil {
		return id, err
	}
	im.unresolved(table, externalID)
	return nil, nil
}

// follow is resolve without counting misses.
func (im *Importer) follow(ctx context.Context, table Table, externalID int64) (*int64, error) {
	if externalID == 0 {
		return nil, nil
	}
	if _, ok, err := im.Rows.Lookup(ctx, string(table), externalID); err != nil || !ok {
		return nil, err
	}
	id, ok, err := im.Store.LinkedID(ctx, string(table), externalID)
	if err != nil || !ok {
		return nil, err
	}
	return &id, nil
}

// through resolves a reference held by another row: the row of via with
// id viaID names the row of table that pick extracts.
func (im *Importer) through(ctx context.Context, via Table, viaID int64, table Table, pick func(rawrows.RawRecord) int64) (*int64, error) {
	if viaID == 0 {
		return nil, nil
	}
	rec, ok, err := im.Rows.Lookup(ctx, string(via), viaID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return im.follow(ctx, table, pick(rec))
}

func (im *Importer) unresolved(table Table, externalID int64) {
	if im.stats != nil {
		im.stats.Unresolved++
	}
	im.Log.Debug("unresolved reference",
		zap.String("table", string(table)),
		zap.Int64("external_id", externalID),
	)
}

// named is the registry's GetOrCreate.
func (im *Importer) named(ctx context.Context, kind models.Kind, name string, attrs models.Attrs) (Outcome, error) {
	e, created, err := im.Registry.GetOrCreate(ctx, kind, name, attrs)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{ID: e.ID, Reused: !created}, nil
}

// cellNamed is named for one token of a multi-valued cell. A token without a
// usable key reports false instead of failing the whole row.
func (im *Importer) cellNamed(ctx context.Context, kind models.Kind, name string) (Outcome, bool, error) {
	out, err := im.named(ctx, kind, name, nil)
	if errors.Is(err, registry.ErrBlankName) {
		im.Log.Debug("blank cell token skipped",
			zap.String("kind", string(kind)),
			zap.String("token", name),
		)
		return Outcome{}, false, nil
	}
	if err != nil {
		return Outcome{}, false, err
	}
	return out, true, nil
}
