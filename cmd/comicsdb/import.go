package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"comicsdb/internal/catalog"
	"comicsdb/internal/importer"
	"comicsdb/internal/rawrows"
)

func newImportCmd() *cobra.Command {
	var (
		dir  string
		load bool
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Convert the loaded raw rows into the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			rows := rawrows.NewSQLStore(db)
			if load {
				if dir == "" {
					dir = cfg.Dump.Dir
				}
				if _, err := loadDump(cmd, rows, dir); err != nil {
					return err
				}
			}

			im := importer.New(rows, catalog.NewStore(db), logger)
			res, err := im.Run(cmd.Context())
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		},
	}
	cmd.Flags().BoolVar(&load, "load", false, "Load the dump directory first")
	cmd.Flags().StringVar(&dir, "dir", "", "Dump directory for --load (default from config)")
	return cmd
}
