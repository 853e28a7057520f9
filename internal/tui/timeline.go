package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/temporalcortex/tcx/internal/availability"
)

// RenderAvailabilityTimeline draws the merged Busy/Free intervals over
// [windowStart, windowEnd) as a single horizontal bar of width columns,
// followed by a legend and a compact textual listing of each interval.
func RenderAvailabilityTimeline(intervals []availability.Interval, windowStart, windowEnd time.Time, width int) string {
	barW := width - 2
	if barW < 10 {
		barW = 10
	}
	total := windowEnd.Sub(windowStart).Seconds()

	bgCols := make([]lipgloss.Color, barW)
	for i := range bgCols {
		bgCols[i] = ColorSectionBg
	}
	for _, iv := range intervals {
		if iv.Kind != availability.KindBusy || total <= 0 {
			continue
		}
		relStart := iv.Start.Sub(windowStart).Seconds()
		relEnd := iv.End.Sub(windowStart).Seconds()
		startCol := int((relStart / total) * float64(barW))
		endCol := int((relEnd / total) * float64(barW))
		if startCol < 0 {
			startCol = 0
		}
		if endCol > barW {
			endCol = barW
		}
		if endCol <= startCol {
			endCol = startCol + 1
			if endCol > barW {
				endCol = barW
			}
		}
		for i := startCol; i < endCol; i++ {
			bgCols[i] = ColorWarn
		}
	}

	var bar strings.Builder
	i := 0
	for i < barW {
		j := i + 1
		for j < barW && bgCols[j] == bgCols[i] {
			j++
		}
		span := strings.Repeat(" ", j-i)
		bar.WriteString(lipgloss.NewStyle().Background(bgCols[i]).Render(span))
		i = j
	}

	var body strings.Builder
	body.WriteString(bar.String())
	body.WriteString("\n")
	sample := lipgloss.NewStyle().Background(ColorWarn).Render("  ")
	free := lipgloss.NewStyle().Background(ColorSectionBg).Render("  ")
	body.WriteString(sample + " " + MutedStyle.Render("busy") + "   " + free + " " + MutedStyle.Render("free"))

	return RenderSection(fmt.Sprintf("Availability  %s — %s", windowStart.Format("Jan 02 15:04"), windowEnd.Format("Jan 02 15:04")), body.String(), width)
}

// intervalLine renders one merged interval as a single summary line, used
// to build the scrollable interval list in the dashboard.
func intervalLine(iv availability.Interval) string {
	line := fmt.Sprintf("%-4s %s .. %s", strings.ToUpper(iv.Kind.String()), iv.Start.Format("15:04:05"), iv.End.Format("15:04:05"))
	if len(iv.StreamIDs) > 0 {
		line += "  [" + strings.Join(iv.StreamIDs, ",") + "]"
	}
	return line
}
