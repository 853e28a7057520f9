package cmd

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/temporalcortex/tcx/internal/tui"
	"github.com/temporalcortex/tcx/internal/watch"
)

var (
	timelineWindowStart string
	timelineWindowEnd   string
	timelineOpaque      bool
	timelineNoWatch     bool
)

var timelineCmd = &cobra.Command{
	Use:   "timeline <dir>",
	Short: "Interactively browse a directory of calendar streams as a merged timeline",
	Long:  "Loads every *.streams.json file under dir, merges them over [--window-start, --window-end), and renders the result as a live-refreshing terminal dashboard.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := time.Parse(time.RFC3339, timelineWindowStart)
		if err != nil {
			return err
		}
		we, err := time.Parse(time.RFC3339, timelineWindowEnd)
		if err != nil {
			return err
		}
		var watcher tui.StreamWatch
		if !timelineNoWatch {
			watcher = watch.New(args[0], 250*time.Millisecond)
		}
		model := tui.NewAppModel(tui.Options{
			Dir:         args[0],
			WindowStart: ws,
			WindowEnd:   we,
			Opaque:      timelineOpaque,
			Watch:       watcher,
		})
		p := tea.NewProgram(model)
		_, err = p.Run()
		return err
	},
}

func init() {
	timelineCmd.Flags().StringVar(&timelineWindowStart, "window-start", "", "RFC-3339 window start (required)")
	timelineCmd.Flags().StringVar(&timelineWindowEnd, "window-end", "", "RFC-3339 window end (required)")
	timelineCmd.Flags().BoolVar(&timelineOpaque, "opaque", false, "omit contributing stream ids from busy intervals")
	timelineCmd.Flags().BoolVar(&timelineNoWatch, "no-watch", false, "disable live filesystem watching")
	_ = timelineCmd.MarkFlagRequired("window-start")
	_ = timelineCmd.MarkFlagRequired("window-end")
}
