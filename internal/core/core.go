// Package core wires the value/toon/filter/tzres/rrule/temporal/relative/
// availability packages into the module's ten public operations. Every
// operation takes and returns UTF-8 strings so it can be called across a
// language boundary, and fails fast with a typed error before doing any
// allocation-heavy work.
package core

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/temporalcortex/tcx/internal/availability"
	"github.com/temporalcortex/tcx/internal/filter"
	"github.com/temporalcortex/tcx/internal/relative"
	"github.com/temporalcortex/tcx/internal/rrule"
	"github.com/temporalcortex/tcx/internal/temporal"
	"github.com/temporalcortex/tcx/internal/toon"
	"github.com/temporalcortex/tcx/internal/value"
)

// BadInputError reports malformed input: bad JSON/TOON, invalid zone or
// rrule, unparseable datetime, malformed offset spec or pattern.
type BadInputError struct {
	Message string
}

func (e *BadInputError) Error() string { return e.Message }

// OverflowError reports arithmetic or expansion exceeding a safety bound.
type OverflowError struct {
	Message string
}

func (e *OverflowError) Error() string { return e.Message }

func badInput(format string, args ...any) error {
	return &BadInputError{Message: fmt.Sprintf(format, args...)}
}

// wrap maps an underlying package error into this package's typed errors,
// preserving the message. Leaf packages report malformed input either via
// their own local BadInputError types or as plain errors (value, filter);
// both become a BadInputError here.
func wrap(err error) error {
	if err == nil {
		return nil
	}
	return badInput("%s", err.Error())
}

// Encode converts jsonText into its TOON-encoded form.
func Encode(jsonText string) (string, error) {
	v, err := value.FromJSON(jsonText)
	if err != nil {
		return "", wrap(err)
	}
	out, err := toon.Encode(v)
	if err != nil {
		return "", wrap(err)
	}
	return out, nil
}

// Decode converts toonText back into JSON text.
func Decode(toonText string) (string, error) {
	v, err := toon.Decode(toonText)
	if err != nil {
		return "", wrap(err)
	}
	out, err := value.ToJSON(v)
	if err != nil {
		return "", wrap(err)
	}
	return out, nil
}

// FilterAndEncode removes every path matched by patterns from jsonText's
// tree, then returns the TOON encoding of what remains.
func FilterAndEncode(jsonText string, patterns []string) (string, error) {
	pats, err := filter.ParsePatterns(patterns)
	if err != nil {
		return "", wrap(err)
	}
	v, err := value.FromJSON(jsonText)
	if err != nil {
		return "", wrap(err)
	}
	filtered := filter.Apply(v, pats)
	out, err := toon.Encode(filtered)
	if err != nil {
		return "", wrap(err)
	}
	return out, nil
}

type occurrenceJSON struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ExpandRRule expands rule into a JSON array of {start,end} RFC-3339 UTC
// pairs. until and maxCount are optional; pass "" / 0 to omit them.
func ExpandRRule(ruleText, anchorLocal string, durationMin int, zone, until string, maxCount int) (string, error) {
	occs, err := rrule.Expand(ruleText, anchorLocal, durationMin, zone, until, maxCount)
	if err != nil {
		return "", wrap(err)
	}
	out := make([]occurrenceJSON, len(occs))
	for i, o := range occs {
		out[i] = occurrenceJSON{
			Start: temporal.FormatInstant(o.Start),
			End:   temporal.FormatInstant(o.End),
		}
	}
	b, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

type conversionJSON struct {
	UTC           string `json:"utc"`
	Local         string `json:"local"`
	Timezone      string `json:"timezone"`
	OffsetSeconds int    `json:"offset_seconds"`
	DSTActive     bool   `json:"dst_active"`
}

// ConvertTimezone renders instant in zone as a JSON object.
func ConvertTimezone(instant, zone string) (string, error) {
	t, err := temporal.ParseInstant(instant)
	if err != nil {
		return "", wrap(err)
	}
	res, err := temporal.ConvertTimezone(t, zone)
	if err != nil {
		return "", wrap(err)
	}
	b, err := json.Marshal(conversionJSON{
		UTC: res.UTC, Local: res.Local, Timezone: res.Timezone,
		OffsetSeconds: res.OffsetSeconds, DSTActive: res.DSTActive,
	})
	if err != nil {
		return "", err
	}
	return string(b), nil
}

type durationJSON struct {
	TotalSeconds int64 `json:"total_seconds"`
	Days         int64 `json:"days"`
	Hours        int64 `json:"hours"`
	Minutes      int64 `json:"minutes"`
	Seconds      int64 `json:"seconds"`
	Sign         int   `json:"sign"`
}

// ComputeDuration decomposes |b-a| as a JSON object.
func ComputeDuration(instantA, instantB string) (string, error) {
	a, err := temporal.ParseInstant(instantA)
	if err != nil {
		return "", wrap(err)
	}
	b, err := temporal.ParseInstant(instantB)
	if err != nil {
		return "", wrap(err)
	}
	d := temporal.ComputeDuration(a, b)
	out, err := json.Marshal(durationJSON{
		TotalSeconds: d.TotalSeconds, Days: d.Days, Hours: d.Hours,
		Minutes: d.Minutes, Seconds: d.Seconds, Sign: d.Sign,
	})
	if err != nil {
		return "", err
	}
	return string(out), nil
}

type adjustmentJSON struct {
	AdjustedUTC       string `json:"adjusted_utc"`
	AdjustedLocal     string `json:"adjusted_local"`
	AdjustmentApplied string `json:"adjustment_applied"`
}

// AdjustTimestamp applies offsetSpec to instant and renders the result in
// zone, as a JSON object.
func AdjustTimestamp(instant, offsetSpec, zone string) (string, error) {
	t, err := temporal.ParseInstant(instant)
	if err != nil {
		return "", wrap(err)
	}
	res, err := temporal.AdjustTimestamp(t, offsetSpec, zone)
	if err != nil {
		return "", wrap(err)
	}
	out, err := json.Marshal(adjustmentJSON{
		AdjustedUTC: res.AdjustedUTC, AdjustedLocal: res.AdjustedLocal,
		AdjustmentApplied: res.AdjustmentApplied,
	})
	if err != nil {
		return "", err
	}
	return string(out), nil
}

type relativeJSON struct {
	Resolved string `json:"resolved"`
}

// ResolveRelative evaluates expression against anchorInstant in zone,
// returning a JSON object with the resolved UTC instant.
func ResolveRelative(anchorInstant, expression, zone string) (string, error) {
	anchor, err := temporal.ParseInstant(anchorInstant)
	if err != nil {
		return "", wrap(err)
	}
	resolved, err := relative.Resolve(anchor, expression, zone)
	if err != nil {
		return "", wrap(err)
	}
	out, err := json.Marshal(relativeJSON{Resolved: temporal.FormatInstant(resolved)})
	if err != nil {
		return "", err
	}
	return string(out), nil
}

type streamInputJSON struct {
	ID     string `json:"stream_id"`
	Events []struct {
		Start string `json:"start"`
		End   string `json:"end"`
	} `json:"events"`
}

func decodeStreams(streamsJSON string) ([]availability.Stream, error) {
	var in []streamInputJSON
	if err := json.Unmarshal([]byte(streamsJSON), &in); err != nil {
		return nil, badInput("core: malformed streams_json: %v", err)
	}
	out := make([]availability.Stream, len(in))
	for i, s := range in {
		events := make([]availability.Event, len(s.Events))
		for j, e := range s.Events {
			start, err := temporal.ParseInstant(e.Start)
			if err != nil {
				return nil, wrap(err)
			}
			end, err := temporal.ParseInstant(e.End)
			if err != nil {
				return nil, wrap(err)
			}
			events[j] = availability.Event{Start: start, End: end}
		}
		out[i] = availability.Stream{ID: s.ID, Events: events}
	}
	return out, nil
}

type intervalJSON struct {
	Start     string   `json:"start"`
	End       string   `json:"end"`
	Kind      string   `json:"kind"`
	StreamIDs []string `json:"stream_ids,omitempty"`
}

type mergeResultJSON struct {
	Intervals []intervalJSON `json:"intervals"`
}

// MergeAvailability merges streamsJSON's events over [windowStart,
// windowEnd) and returns the partitioned timeline as a JSON object.
func MergeAvailability(streamsJSON, windowStart, windowEnd string, opaque bool) (string, error) {
	streams, err := decodeStreams(streamsJSON)
	if err != nil {
		return "", err
	}
	ws, err := temporal.ParseInstant(windowStart)
	if err != nil {
		return "", wrap(err)
	}
	we, err := temporal.ParseInstant(windowEnd)
	if err != nil {
		return "", wrap(err)
	}
	ivs, err := availability.Merge(streams, ws, we, opaque)
	if err != nil {
		return "", wrap(err)
	}
	out := mergeResultJSON{Intervals: make([]intervalJSON, len(ivs))}
	for i, iv := range ivs {
		out.Intervals[i] = intervalJSON{
			Start:     temporal.FormatInstant(iv.Start),
			End:       temporal.FormatInstant(iv.End),
			Kind:      iv.Kind.String(),
			StreamIDs: iv.StreamIDs,
		}
	}
	b, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// FindFirstFreeAcross returns the earliest Free interval at least
// durationMin minutes long within [windowStart, windowEnd), or the JSON
// literal "null" if none exists.
func FindFirstFreeAcross(streamsJSON, windowStart, windowEnd string, durationMin int) (string, error) {
	if durationMin <= 0 {
		return "", badInput("core: duration_min must be positive, got %d", durationMin)
	}
	streams, err := decodeStreams(streamsJSON)
	if err != nil {
		return "", err
	}
	ws, err := temporal.ParseInstant(windowStart)
	if err != nil {
		return "", wrap(err)
	}
	we, err := temporal.ParseInstant(windowEnd)
	if err != nil {
		return "", wrap(err)
	}
	iv, err := availability.FindFirstFreeAcross(streams, ws, we, time.Duration(durationMin)*time.Minute)
	if err != nil {
		return "", wrap(err)
	}
	if iv == nil {
		return "null", nil
	}
	b, err := json.Marshal(intervalJSON{
		Start: temporal.FormatInstant(iv.Start),
		End:   temporal.FormatInstant(iv.End),
		Kind:  iv.Kind.String(),
	})
	if err != nil {
		return "", err
	}
	return string(b), nil
}
