package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temporalcortex/tcx/internal/core"
)

var decodeCmd = &cobra.Command{
	Use:   "decode [file]",
	Short: "Decode TOON text back into JSON",
	Long:  "Reads TOON text from file (or stdin when omitted or \"-\") and writes the equivalent JSON to stdout.",
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
		out, err := core.Decode(in)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}
