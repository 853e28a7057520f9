package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/temporalcortex/tcx/internal/core"
)

var (
	relativeAnchor string
	relativeZone   string
)

var relativeCmd = &cobra.Command{
	Use:   "relative <expression>",
	Short: "Resolve a relative-time expression against an anchor",
	Long:  "Evaluates expressions like 'next tuesday at 3pm', 'in 2 weeks', or '3 days ago' against --anchor (defaults to now) in --zone.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		anchor := relativeAnchor
		if anchor == "" {
			anchor = time.Now().UTC().Format(time.RFC3339)
		}
		out, err := core.ResolveRelative(anchor, args[0], defaultZone(relativeZone))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	relativeCmd.Flags().StringVar(&relativeAnchor, "anchor", "", "RFC-3339 anchor instant (defaults to now)")
	relativeCmd.Flags().StringVar(&relativeZone, "zone", "", "IANA timezone (defaults to config timezone)")
}
