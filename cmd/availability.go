package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temporalcortex/tcx/internal/core"
)

var (
	availWindowStart string
	availWindowEnd   string
	availOpaque      bool
	availQuiet       bool
	availDurationMin int
)

var availabilityCmd = &cobra.Command{
	Use:   "availability",
	Short: "Merge calendar streams and query free/busy time",
}

var availabilityMergeCmd = &cobra.Command{
	Use:   "merge [streams-file]",
	Short: "Merge calendar streams into a partitioned free/busy timeline",
	Long:  "Reads a JSON array of {stream_id, events:[{start,end}]} streams from streams-file (or stdin) and partitions [--window-start, --window-end) into Free/Busy intervals.",
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
		maybeLogMergeHint(countStreams(in), quietMode(availQuiet))
		out, err := core.MergeAvailability(in, availWindowStart, availWindowEnd, availOpaque)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

var availabilityFindFreeCmd = &cobra.Command{
	Use:   "find-first-free [streams-file]",
	Short: "Find the earliest free interval long enough for a meeting",
	Long:  "Reads calendar streams from streams-file (or stdin) and reports the earliest Free interval at least --duration-min minutes long within [--window-start, --window-end).",
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
		maybeLogMergeHint(countStreams(in), quietMode(availQuiet))
		out, err := core.FindFirstFreeAcross(in, availWindowStart, availWindowEnd, availDurationMin)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

// countStreams reports len(streamsJSON) when it decodes as a JSON array,
// else 0 — used only to size the quiet-hint threshold, never to validate
// input (core.MergeAvailability reports malformed JSON on its own).
func countStreams(streamsJSON string) int {
	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(streamsJSON), &raw); err != nil {
		return 0
	}
	return len(raw)
}

func init() {
	for _, c := range []*cobra.Command{availabilityMergeCmd, availabilityFindFreeCmd} {
		c.Flags().StringVar(&availWindowStart, "window-start", "", "RFC-3339 window start (required)")
		c.Flags().StringVar(&availWindowEnd, "window-end", "", "RFC-3339 window end (required)")
		c.Flags().BoolVar(&availQuiet, "quiet", false, "suppress the multi-stream merge hint")
		_ = c.MarkFlagRequired("window-start")
		_ = c.MarkFlagRequired("window-end")
	}
	availabilityMergeCmd.Flags().BoolVar(&availOpaque, "opaque", false, "omit contributing stream ids from busy intervals")
	availabilityFindFreeCmd.Flags().IntVar(&availDurationMin, "duration-min", 30, "minimum free interval length in minutes")

	availabilityCmd.AddCommand(availabilityMergeCmd)
	availabilityCmd.AddCommand(availabilityFindFreeCmd)
}
