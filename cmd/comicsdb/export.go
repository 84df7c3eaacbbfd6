package main

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"comicsdb/internal/catalog"
	"comicsdb/pkg/datecode"
)

func newExportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every issue with its decoded date as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
				return err
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()

			n, err := exportIssues(cmd.Context(), catalog.NewStore(db), f)
			if err != nil {
				return err
			}
			logger.Info("exported issues", zap.Int("issues", n), zap.String("path", out))
			return f.Close()
		},
	}
	cmd.Flags().StringVar(&out, "out", "data/issues.csv", "Output CSV path")
	return cmd
}

// exportIssues writes one CSV line per issue and returns how many it wrote.
func exportIssues(ctx context.Context, store *catalog.Store, out io.Writer) (int, error) {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"id", "series", "number", "title", "cover_date", "key_date", "display_date"}); err != nil {
		return 0, err
	}

	n := 0
	err := store.EachIssue(ctx, func(v catalog.IssueListing) error {
		n++
		return w.Write([]string{
			strconv.FormatInt(v.ID, 10),
			v.SeriesName,
			v.Number,
			v.Title,
			v.CoverDate,
			strconv.Itoa(v.KeyDate),
			datecode.Display(v.KeyDate),
		})
	})
	if err != nil {
		return n, err
	}

	w.Flush()
	return n, w.Error()
}
