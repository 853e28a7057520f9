package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/temporalcortex/tcx/internal/availability"
)

// StreamWatch emits a signal whenever a watched directory's stream files
// change, so the dashboard can reload without polling.
type StreamWatch interface {
	Changes(ctx context.Context) <-chan struct{}
}

// Options configures the availability dashboard.
type Options struct {
	Dir         string
	WindowStart time.Time
	WindowEnd   time.Time
	Opaque      bool
	Watch       StreamWatch
}

// intervalItem wraps an availability.Interval as a list.Item, following the
// teacher's listItem/bubbles-list pattern from its interactive entry form.
type intervalItem struct {
	iv availability.Interval
}

func (i intervalItem) Title() string       { return intervalLine(i.iv) }
func (i intervalItem) Description() string { return strings.ToUpper(i.iv.Kind.String()) }
func (i intervalItem) FilterValue() string { return intervalLine(i.iv) }

// NewAppModel builds the Bubble Tea model for `tcx timeline`: it loads every
// *.streams.json file under opts.Dir, merges them with internal/availability,
// and redraws whenever opts.Watch signals a change (or 'r' is pressed).
func NewAppModel(opts Options) tea.Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Intervals"
	l.SetShowHelp(false)
	return appModel{opts: opts, list: l}
}

type appModel struct {
	opts   Options
	width  int
	height int
	err    error
	result []availability.Interval
	list   list.Model
}

type refreshMsg struct{}

type mergedMsg struct {
	intervals []availability.Interval
	err       error
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.watchCmd())
}

func (m appModel) loadCmd() tea.Cmd {
	opts := m.opts
	return func() tea.Msg {
		streams, err := loadStreamsFromDir(opts.Dir)
		if err != nil {
			return mergedMsg{err: err}
		}
		ivs, err := availability.Merge(streams, opts.WindowStart, opts.WindowEnd, opts.Opaque)
		return mergedMsg{intervals: ivs, err: err}
	}
}

func (m appModel) watchCmd() tea.Cmd {
	if m.opts.Watch == nil {
		return nil
	}
	ch := m.opts.Watch.Changes(context.Background())
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return refreshMsg{}
	}
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		listH := m.height - 12
		if listH < 3 {
			listH = 3
		}
		m.list.SetSize(m.width-4, listH)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			return m, m.loadCmd()
		}
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	case refreshMsg:
		return m, tea.Batch(m.loadCmd(), m.watchCmd())
	case mergedMsg:
		m.err = msg.err
		m.result = msg.intervals
		items := make([]list.Item, len(msg.intervals))
		for i, iv := range msg.intervals {
			items[i] = intervalItem{iv: iv}
		}
		m.list.SetItems(items)
		return m, nil
	}
	return m, nil
}

func (m appModel) View() string {
	width := m.width
	if width <= 0 {
		width = 80
	}
	var b strings.Builder
	b.WriteString(RenderHeader("tcx timeline", m.opts.Dir, width))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(RenderStatus("error", m.err.Error()))
	} else {
		b.WriteString(RenderAvailabilityTimeline(m.result, m.opts.WindowStart, m.opts.WindowEnd, width))
		b.WriteString("\n\n")
		b.WriteString(m.list.View())
	}
	b.WriteString("\n")
	b.WriteString(RenderFooter([]Hint{{Key: "↑/↓", Text: "select"}, {Key: "r", Text: "refresh"}, {Key: "q", Text: "quit"}}, "", width))
	return b.String()
}

type streamFileJSON struct {
	ID     string `json:"stream_id"`
	Events []struct {
		Start string `json:"start"`
		End   string `json:"end"`
	} `json:"events"`
}

// loadStreamsFromDir reads every *.streams.json file directly under dir —
// each holding a JSON array of EventStream objects, per SPEC_FULL.md — and
// unions their streams into a single slice.
func loadStreamsFromDir(dir string) ([]availability.Stream, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []availability.Stream
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".streams.json") {
			continue
		}
		b, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		var raw []streamFileJSON
		if err := json.Unmarshal(b, &raw); err != nil {
			return nil, fmt.Errorf("tui: malformed stream file %s: %w", e.Name(), err)
		}
		for si, rawStream := range raw {
			events := make([]availability.Event, len(rawStream.Events))
			for i, ev := range rawStream.Events {
				start, err := time.Parse(time.RFC3339, ev.Start)
				if err != nil {
					return nil, fmt.Errorf("tui: malformed event start in %s: %w", e.Name(), err)
				}
				end, err := time.Parse(time.RFC3339, ev.End)
				if err != nil {
					return nil, fmt.Errorf("tui: malformed event end in %s: %w", e.Name(), err)
				}
				events[i] = availability.Event{Start: start, End: end}
			}
			id := rawStream.ID
			if id == "" {
				id = fmt.Sprintf("%s#%d", strings.TrimSuffix(e.Name(), ".streams.json"), si)
			}
			out = append(out, availability.Stream{ID: id, Events: events})
		}
	}
	return out, nil
}
