package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temporalcortex/tcx/internal/core"
)

var encodeCmd = &cobra.Command{
	Use:   "encode [file]",
	Short: "Encode JSON into the TOON text format",
	Long:  "Reads JSON from file (or stdin when omitted or \"-\") and writes its TOON encoding to stdout.",
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
		out, err := core.Encode(in)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}
