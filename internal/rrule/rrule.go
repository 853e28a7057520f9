// Package rrule expands a small subset of RFC-5545 recurrence rules
// (FREQ, COUNT, UNTIL, INTERVAL, BYDAY) into concrete {start, end} instant
// pairs, honoring timezone DST transitions via internal/tzres.
package rrule

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/temporalcortex/tcx/internal/tzres"
)

// BadInputError reports a malformed rule, anchor, zone, or duration.
type BadInputError struct {
	Message string
}

func (e *BadInputError) Error() string { return e.Message }

func badInput(format string, args ...any) error {
	return &BadInputError{Message: fmt.Sprintf(format, args...)}
}

// safetyCap bounds runaway expansion when neither COUNT nor UNTIL nor
// max_count limits it.
const safetyCap = 10000

// Freq is the recurrence frequency.
type Freq int

const (
	FreqDaily Freq = iota
	FreqWeekly
	FreqMonthly
	FreqYearly
)

// Spec is a parsed RRULE.
type Spec struct {
	Freq     Freq
	Interval int
	Count    int // 0 means unset
	Until    *time.Time
	ByDay    []time.Weekday
}

var weekdayCodes = map[string]time.Weekday{
	"SU": time.Sunday, "MO": time.Monday, "TU": time.Tuesday, "WE": time.Wednesday,
	"TH": time.Thursday, "FR": time.Friday, "SA": time.Saturday,
}

// Parse parses an RRULE string such as "FREQ=WEEKLY;COUNT=4;BYDAY=MO".
func Parse(rule string) (Spec, error) {
	rule = strings.TrimSpace(rule)
	if rule == "" {
		return Spec{}, badInput("rrule: empty rule")
	}
	spec := Spec{Interval: 1}
	sawFreq := false
	for _, part := range strings.Split(rule, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			return Spec{}, badInput("rrule: malformed clause %q", part)
		}
		key, val := strings.ToUpper(kv[0]), kv[1]
		switch key {
		case "FREQ":
			switch strings.ToUpper(val) {
			case "DAILY":
				spec.Freq = FreqDaily
			case "WEEKLY":
				spec.Freq = FreqWeekly
			case "MONTHLY":
				spec.Freq = FreqMonthly
			case "YEARLY":
				spec.Freq = FreqYearly
			default:
				return Spec{}, badInput("rrule: unsupported FREQ %q", val)
			}
			sawFreq = true
		case "COUNT":
			n, err := strconv.Atoi(val)
			if err != nil || n <= 0 {
				return Spec{}, badInput("rrule: invalid COUNT %q", val)
			}
			spec.Count = n
		case "INTERVAL":
			n, err := strconv.Atoi(val)
			if err != nil || n <= 0 {
				return Spec{}, badInput("rrule: invalid INTERVAL %q", val)
			}
			spec.Interval = n
		case "UNTIL":
			t, err := parseLocalNaive(val)
			if err != nil {
				return Spec{}, badInput("rrule: invalid UNTIL %q: %v", val, err)
			}
			spec.Until = &t
		case "BYDAY":
			for _, code := range strings.Split(val, ",") {
				wd, ok := weekdayCodes[strings.ToUpper(strings.TrimSpace(code))]
				if !ok {
					return Spec{}, badInput("rrule: invalid BYDAY code %q", code)
				}
				spec.ByDay = append(spec.ByDay, wd)
			}
		default:
			return Spec{}, badInput("rrule: unsupported clause %q", key)
		}
	}
	if !sawFreq {
		return Spec{}, badInput("rrule: missing FREQ")
	}
	return spec, nil
}

// Occurrence is one expanded {start, end} pair, both absolute UTC instants.
type Occurrence struct {
	Start time.Time
	End   time.Time
}

// parseLocalNaive parses a local-naive datetime like "2026-02-17T14:00:00"
// (no zone/offset suffix — it is interpreted against whatever zone the
// caller supplies separately).
func parseLocalNaive(s string) (time.Time, error) {
	return time.Parse("2006-01-02T15:04:05", s)
}

// Expand enumerates occurrences of rule starting at anchorLocal (a
// local-naive datetime string), each lasting durationMin minutes, in zone.
// until, if non-empty, is a local-naive upper bound; maxCount, if > 0, is a
// hard cap tighter than COUNT.
func Expand(rule, anchorLocal string, durationMin int, zone string, until string, maxCount int) ([]Occurrence, error) {
	if durationMin <= 0 {
		return nil, badInput("rrule: duration_min must be positive, got %d", durationMin)
	}
	spec, err := Parse(rule)
	if err != nil {
		return nil, err
	}
	if _, err := tzres.Resolve(zone); err != nil {
		return nil, err
	}
	anchor, err := parseLocalNaive(anchorLocal)
	if err != nil {
		return nil, badInput("rrule: invalid anchor %q: %v", anchorLocal, err)
	}

	effectiveUntil := spec.Until
	if until != "" {
		u, err := parseLocalNaive(until)
		if err != nil {
			return nil, badInput("rrule: invalid until %q: %v", until, err)
		}
		// Contradictory COUNT+UNTIL is permitted; the earlier bound wins,
		// so keep whichever UNTIL (rule clause vs explicit argument) is
		// earlier when both are present.
		if effectiveUntil == nil || u.Before(*effectiveUntil) {
			effectiveUntil = &u
		}
	}

	limit := safetyCap
	if maxCount > 0 && maxCount < limit {
		limit = maxCount
	}

	done := make(chan struct{})
	defer close(done)
	candidates := candidateLocals(spec, anchor, done)

	var out []Occurrence
	for cand := range candidates {
		if len(out) >= limit {
			break
		}
		if spec.Count > 0 && len(out) >= spec.Count {
			break
		}
		if effectiveUntil != nil && cand.After(*effectiveUntil) {
			break
		}
		start, err := tzres.LocalToUTC(zone, cand.Year(), cand.Month(), cand.Day(), cand.Hour(), cand.Minute(), cand.Second())
		if err != nil {
			return nil, err
		}
		end := start.Add(time.Duration(durationMin) * time.Minute)
		out = append(out, Occurrence{Start: start, End: end})
	}
	return out, nil
}

// candidateLocals lazily yields local-naive candidate datetimes in
// ascending order, honoring FREQ/INTERVAL/BYDAY. The caller is responsible
// for stopping consumption once COUNT/UNTIL/max_count/safety-cap is hit;
// closing done (as Expand does via defer) unblocks and retires the producer
// goroutine immediately instead of leaving it parked on a full send.
func candidateLocals(spec Spec, anchor time.Time, done <-chan struct{}) <-chan time.Time {
	ch := make(chan time.Time)
	go func() {
		defer close(ch)
		switch spec.Freq {
		case FreqWeekly:
			emitWeekly(ch, spec, anchor, done)
		default:
			emitSimple(ch, spec, anchor, done)
		}
	}()
	return ch
}

func sendCandidate(ch chan<- time.Time, done <-chan struct{}, t time.Time) bool {
	select {
	case ch <- t:
		return true
	case <-done:
		return false
	}
}

func emitSimple(ch chan<- time.Time, spec Spec, anchor time.Time, done <-chan struct{}) {
	cur := anchor
	for i := 0; i < safetyCap; i++ {
		if !sendCandidate(ch, done, cur) {
			return
		}
		switch spec.Freq {
		case FreqDaily:
			cur = cur.AddDate(0, 0, spec.Interval)
		case FreqMonthly:
			cur = cur.AddDate(0, spec.Interval, 0)
		case FreqYearly:
			cur = cur.AddDate(spec.Interval, 0, 0)
		default:
			return
		}
	}
}

// emitWeekly yields candidates for WEEKLY frequency. With no BYDAY it steps
// the anchor's own weekday by INTERVAL weeks. With BYDAY, the anchor's ISO
// week yields every matching weekday at or after the anchor; every
// subsequent INTERVAL-th week yields all matching weekdays in ISO order
// (Monday first, Sunday last), so candidates stay in ascending date order.
func emitWeekly(ch chan<- time.Time, spec Spec, anchor time.Time, done <-chan struct{}) {
	if len(spec.ByDay) == 0 {
		cur := anchor
		for i := 0; i < safetyCap; i++ {
			if !sendCandidate(ch, done, cur) {
				return
			}
			cur = cur.AddDate(0, 0, 7*spec.Interval)
		}
		return
	}

	days := append([]time.Weekday(nil), spec.ByDay...)
	sortWeekdays(days)

	weekStart := startOfISOWeek(anchor)
	emitted := 0
	week := 0
	for emitted < safetyCap {
		base := weekStart.AddDate(0, 0, 7*week*spec.Interval)
		for _, wd := range days {
			offset := int(wd) - int(base.Weekday())
			if offset < 0 {
				offset += 7
			}
			cand := base.AddDate(0, 0, offset)
			if week == 0 && cand.Before(anchor) {
				continue
			}
			if !sendCandidate(ch, done, cand) {
				return
			}
			emitted++
			if emitted >= safetyCap {
				return
			}
		}
		week++
	}
}

func startOfISOWeek(t time.Time) time.Time {
	offset := int(t.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), 0, t.Location()).AddDate(0, 0, -offset)
}

func sortWeekdays(days []time.Weekday) {
	iso := func(d time.Weekday) int { return (int(d) + 6) % 7 }
	for i := 1; i < len(days); i++ {
		for j := i; j > 0 && iso(days[j]) < iso(days[j-1]); j-- {
			days[j], days[j-1] = days[j-1], days[j]
		}
	}
}
