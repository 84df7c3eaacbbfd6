package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"comicsdb/pkg/datecode"
)

func newDateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "date",
		Short: "Convert between YYYY-MM-DD dates and sortable date codes",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "encode YYYY-MM-DD...",
		Short: "Print the date code of each date (0 when malformed)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, a := range args {
				fmt.Fprintln(cmd.OutOrStdout(), datecode.Encode(a))
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "decode CODE...",
		Short: "Print the display form of each date code",
		// negative codes such as -1 are arguments, not shorthand flags
		DisableFlagParsing: true,
		Args:               cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, a := range args {
				if a == "--" {
					continue
				}
				code, err := strconv.Atoi(a)
				if err != nil {
					return fmt.Errorf("invalid code %q: %w", a, err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), datecode.Display(code))
			}
			return nil
		},
	})

	return cmd
}
