// Package availability merges event streams into a partitioned Busy/Free
// timeline over a window, via a sweep-line over interval endpoints.
package availability

import (
	"fmt"
	"sort"
	"time"
)

// BadInputError reports a malformed window or event stream.
type BadInputError struct {
	Message string
}

func (e *BadInputError) Error() string { return e.Message }

func badInput(format string, args ...any) error {
	return &BadInputError{Message: fmt.Sprintf(format, args...)}
}

// Event is one busy interval contributed by a stream.
type Event struct {
	Start time.Time
	End   time.Time
}

// Stream is a named source of Events; its ID is surfaced in non-opaque
// output to identify which streams contributed to a Busy interval.
type Stream struct {
	ID     string
	Events []Event
}

// Kind distinguishes a Busy interval from a Free one.
type Kind int

const (
	KindFree Kind = iota
	KindBusy
)

func (k Kind) String() string {
	if k == KindBusy {
		return "busy"
	}
	return "free"
}

// Interval is one slice of the merged timeline.
type Interval struct {
	Start     time.Time
	End       time.Time
	Kind      Kind
	StreamIDs []string // nil when Opaque, or when Kind is Free
}

type endpoint struct {
	t        time.Time
	isStart  bool
	streamID string
}

// Merge clips every stream's events to [windowStart, windowEnd), sweeps
// their endpoints, and returns a sequence of intervals partitioning the
// window exactly. When opaque is true, StreamIDs is omitted and adjacent
// Busy intervals coalesce regardless of contributor.
func Merge(streams []Stream, windowStart, windowEnd time.Time, opaque bool) ([]Interval, error) {
	if !windowStart.Before(windowEnd) {
		return nil, badInput("availability: window_start must precede window_end")
	}

	var endpoints []endpoint
	for _, s := range streams {
		for _, ev := range s.Events {
			start := ev.Start
			end := ev.End
			if start.Before(windowStart) {
				start = windowStart
			}
			if end.After(windowEnd) {
				end = windowEnd
			}
			if !start.Before(end) {
				continue // clipped to nothing
			}
			endpoints = append(endpoints, endpoint{t: start, isStart: true, streamID: s.ID})
			endpoints = append(endpoints, endpoint{t: end, isStart: false, streamID: s.ID})
		}
	}

	sort.SliceStable(endpoints, func(i, j int) bool {
		if !endpoints[i].t.Equal(endpoints[j].t) {
			return endpoints[i].t.Before(endpoints[j].t)
		}
		// End-markers before start-markers at the same instant, so
		// back-to-back intervals coalesce instead of producing a
		// zero-width Free gap between them.
		if endpoints[i].isStart != endpoints[j].isStart {
			return !endpoints[i].isStart
		}
		return false
	})

	active := map[string]int{} // streamID -> active event count
	var raw []Interval
	cursor := windowStart
	idx := 0
	for idx < len(endpoints) {
		t := endpoints[idx].t
		if t.After(cursor) {
			raw = append(raw, buildInterval(cursor, t, active, opaque))
			cursor = t
		}
		for idx < len(endpoints) && endpoints[idx].t.Equal(t) {
			ep := endpoints[idx]
			if ep.isStart {
				active[ep.streamID]++
			} else {
				active[ep.streamID]--
				if active[ep.streamID] == 0 {
					delete(active, ep.streamID)
				}
			}
			idx++
		}
	}
	if cursor.Before(windowEnd) {
		raw = append(raw, buildInterval(cursor, windowEnd, active, opaque))
	}

	return mergeAdjacent(raw), nil
}

func buildInterval(start, end time.Time, active map[string]int, opaque bool) Interval {
	if len(active) == 0 {
		return Interval{Start: start, End: end, Kind: KindFree}
	}
	iv := Interval{Start: start, End: end, Kind: KindBusy}
	if !opaque {
		ids := make([]string, 0, len(active))
		for id := range active {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		iv.StreamIDs = ids
	}
	return iv
}

func mergeAdjacent(raw []Interval) []Interval {
	var out []Interval
	for _, iv := range raw {
		if len(out) > 0 {
			prev := &out[len(out)-1]
			if prev.End.Equal(iv.Start) && prev.Kind == iv.Kind && sameIDs(prev.StreamIDs, iv.StreamIDs) {
				prev.End = iv.End
				continue
			}
		}
		out = append(out, iv)
	}
	return out
}

func sameIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// FindFirstFreeAcross sweeps the merged timeline for streams over window
// and returns the earliest Free interval at least duration long, or nil.
func FindFirstFreeAcross(streams []Stream, windowStart, windowEnd time.Time, duration time.Duration) (*Interval, error) {
	intervals, err := Merge(streams, windowStart, windowEnd, true)
	if err != nil {
		return nil, err
	}
	for _, iv := range intervals {
		if iv.Kind == KindFree && iv.End.Sub(iv.Start) >= duration {
			found := iv
			return &found, nil
		}
	}
	return nil, nil
}
