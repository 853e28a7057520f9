package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temporalcortex/tcx/internal/core"
)

var durationCmd = &cobra.Command{
	Use:   "duration <instantA> <instantB>",
	Short: "Compute the elapsed duration between two RFC-3339 instants",
	Long:  "Decomposes |instantB - instantA| into days/hours/minutes/seconds and reports the sign of (instantB - instantA).",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := core.ComputeDuration(args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}
