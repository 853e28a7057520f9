package cmd

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/temporalcortex/tcx/internal/watch"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Watch a directory of *.streams.json files and print a line on every change",
	Long:  "Recursively watches dir for writes to *.streams.json files, debouncing bursts, until interrupted. Pair with `tcx availability merge` or `tcx timeline` to react to the signal.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		w := watch.New(args[0], watchDebounce)
		changes := w.Changes(ctx)
		for {
			select {
			case <-ctx.Done():
				return nil
			case _, ok := <-changes:
				if !ok {
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s changed\n", time.Now().UTC().Format(time.RFC3339))
			}
		}
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 250*time.Millisecond, "debounce window for bursty filesystem events")
}
