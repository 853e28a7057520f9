package cmd

import (
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/temporalcortex/tcx/internal/core"
)

var (
	rruleAnchor      string
	rruleDurationMin int
	rruleZone        string
	rruleUntil       string
	rruleMaxCount    int
)

var knownByDayCodes = []string{"MO", "TU", "WE", "TH", "FR", "SA", "SU"}

var rruleCmd = &cobra.Command{
	Use:   "rrule <RULE>",
	Short: "Expand an RRULE into concrete occurrences",
	Long:  "Expands a FREQ=...;COUNT=...;BYDAY=... recurrence rule anchored at --anchor into a JSON array of {start,end} instants.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		maxCount := rruleMaxCount
		if maxCount <= 0 {
			maxCount = viper.GetInt("safety_cap")
		}
		out, err := core.ExpandRRule(args[0], rruleAnchor, rruleDurationMin, defaultZone(rruleZone), rruleUntil, maxCount)
		if err != nil {
			if suggestion := suggestByDayFix(args[0], err.Error()); suggestion != "" {
				return fmt.Errorf("%w (%s)", err, suggestion)
			}
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

// suggestByDayFix looks for "invalid BYDAY code %q" in msg and, when found,
// fuzzy-matches the offending token against the known two-letter weekday
// codes so the error can offer a likely correction.
func suggestByDayFix(rule, msg string) string {
	if !strings.Contains(msg, "invalid BYDAY code") {
		return ""
	}
	start := strings.Index(msg, `"`)
	end := strings.LastIndex(msg, `"`)
	if start < 0 || end <= start {
		return ""
	}
	bad := strings.ToUpper(msg[start+1 : end])
	matches := fuzzy.Find(bad, knownByDayCodes)
	if len(matches) == 0 {
		return ""
	}
	return fmt.Sprintf("did you mean %q?", knownByDayCodes[matches[0].Index])
}

func init() {
	rruleCmd.Flags().StringVar(&rruleAnchor, "anchor", "", "anchor local datetime, e.g. 2026-02-16T09:00:00 (required)")
	rruleCmd.Flags().IntVar(&rruleDurationMin, "duration-min", 60, "occurrence duration in minutes")
	rruleCmd.Flags().StringVar(&rruleZone, "zone", "", "IANA timezone (defaults to config timezone)")
	rruleCmd.Flags().StringVar(&rruleUntil, "until", "", "stop expansion at or before this local datetime in --zone, e.g. 2026-03-01T00:00:00")
	rruleCmd.Flags().IntVar(&rruleMaxCount, "max-count", 0, "hard cap on occurrences, overrides COUNT when smaller")
	_ = rruleCmd.MarkFlagRequired("anchor")
}
