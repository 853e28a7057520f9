package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temporalcortex/tcx/internal/core"
)

var tzZone string

var tzCmd = &cobra.Command{
	Use:   "tz <instant>",
	Short: "Convert an RFC-3339 instant into a given IANA timezone",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := core.ConvertTimezone(args[0], defaultZone(tzZone))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	tzCmd.Flags().StringVar(&tzZone, "zone", "", "IANA timezone (defaults to config timezone)")
}
