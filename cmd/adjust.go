package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temporalcortex/tcx/internal/core"
)

var adjustZone string

var adjustCmd = &cobra.Command{
	Use:   "adjust <instant> <offset>",
	Short: "Shift an instant by a signed offset",
	Long:  "Applies an offset of the form +2h, -30m, +1d or -45s to instant and renders the result in --zone.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := core.AdjustTimestamp(args[0], args[1], defaultZone(adjustZone))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	adjustCmd.Flags().StringVar(&adjustZone, "zone", "", "IANA timezone for the rendered local time (defaults to config timezone)")
}
