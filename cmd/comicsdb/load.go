package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"comicsdb/internal/importer"
	"comicsdb/internal/rawrows"
)

func newLoadCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load the dump's table files into the raw row store",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				dir = cfg.Dump.Dir
			}
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			stats, err := loadDump(cmd, rawrows.NewSQLStore(db), dir)
			if err != nil {
				return err
			}
			for _, s := range stats {
				fmt.Fprintf(cmd.OutOrStdout(), "%-32s %8d rows %6d skipped\n", s.Table, s.Rows, s.Skipped)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "Dump directory (default from config)")
	return cmd
}

func loadDump(cmd *cobra.Command, store rawrows.Writer, dir string) ([]rawrows.LoadStats, error) {
	l := rawrows.NewLoader(dir, store, logger.Named("rawrows"))
	l.NullToken = cfg.Dump.NullToken
	l.Comma = cfg.Dump.Comma()

	stats, err := l.LoadAll(cmd.Context(), importer.SourceTables())
	if err != nil {
		return stats, fmt.Errorf("load dump: %w", err)
	}
	if len(stats) == 0 {
		logger.Warn("no table files found", zap.String("dir", dir))
	}
	return stats, nil
}
