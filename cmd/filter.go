package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temporalcortex/tcx/internal/core"
)

var filterPatterns []string

var filterCmd = &cobra.Command{
	Use:   "filter [file]",
	Short: "Drop fields from JSON and encode what remains as TOON",
	Long:  "Reads JSON from file (or stdin) and removes every dotted, wildcard-capable path given with --drop before encoding the result as TOON.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "-"
		if len(args) == 1 {
			path = args[0]
		}
		in, err := readInput(path)
		if err != nil {
			return err
		}
		out, err := core.FilterAndEncode(in, filterPatterns)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	filterCmd.Flags().StringArrayVar(&filterPatterns, "drop", nil, "dotted path to remove, may repeat; '*' matches one level")
}
