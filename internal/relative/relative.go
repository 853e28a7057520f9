// Package relative parses the small natural-language relative-time grammar
// (today, tomorrow, next WDAY, in N UNIT, ...) into absolute instants.
package relative

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/temporalcortex/tcx/internal/tzres"
)

// BadInputError names the offending token in an unparseable expression.
type BadInputError struct {
	Message string
}

func (e *BadInputError) Error() string { return e.Message }

func badInput(format string, args ...any) error {
	return &BadInputError{Message: fmt.Sprintf(format, args...)}
}

var weekdays = map[string]time.Weekday{
	"sunday": time.Sunday, "monday": time.Monday, "tuesday": time.Tuesday,
	"wednesday": time.Wednesday, "thursday": time.Thursday, "friday": time.Friday,
	"saturday": time.Saturday,
}

var units = map[string]time.Duration{
	"minute": time.Minute, "minutes": time.Minute,
	"hour": time.Hour, "hours": time.Hour,
	"day": 24 * time.Hour, "days": 24 * time.Hour,
	"week": 7 * 24 * time.Hour, "weeks": 7 * 24 * time.Hour,
}

// month and year units are handled separately since their span depends on
// the calendar, not a fixed duration.
var calendarUnits = map[string]string{
	"month": "month", "months": "month",
	"year": "year", "years": "year",
}

var timeRe = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?\s*(am|pm)?$`)

// Resolve evaluates expr against anchor (an absolute instant) in zone,
// returning the resolved instant in UTC.
func Resolve(anchor time.Time, expr, zone string) (time.Time, error) {
	loc, err := tzres.Resolve(zone)
	if err != nil {
		return time.Time{}, err
	}
	local := anchor.In(loc)
	trimmed := strings.TrimSpace(strings.ToLower(expr))
	if trimmed == "" {
		return time.Time{}, badInput("relative: empty expression")
	}
	fields := strings.Fields(trimmed)

	switch {
	case trimmed == "now":
		return anchor.UTC(), nil
	case trimmed == "today":
		return midnight(local, 0), nil
	case trimmed == "tomorrow":
		return midnight(local, 1), nil
	case trimmed == "yesterday":
		return midnight(local, -1), nil
	case fields[0] == "next" && len(fields) >= 2:
		return resolveWeekday(local, fields[1:], true)
	case fields[0] == "last" && len(fields) >= 2:
		return resolveWeekday(local, fields[1:], false)
	case fields[0] == "in" && len(fields) >= 3:
		return resolveInNUnit(local, fields[1:])
	case len(fields) >= 3 && fields[len(fields)-1] == "ago":
		return resolveNUnitAgo(local, fields[:len(fields)-1], -1)
	case len(fields) >= 4 && fields[len(fields)-2] == "from" && fields[len(fields)-1] == "now":
		return resolveNUnitAgo(local, fields[:len(fields)-2], 1)
	default:
		return time.Time{}, badInput("relative: unrecognized expression near %q", fields[0])
	}
}

func midnight(local time.Time, dayOffset int) time.Time {
	y, m, d := local.Date()
	return time.Date(y, m, d+dayOffset, 0, 0, 0, 0, local.Location()).UTC()
}

func resolveWeekday(local time.Time, rest []string, forward bool) (time.Time, error) {
	if len(rest) == 0 {
		return time.Time{}, badInput("relative: missing weekday")
	}
	wday, ok := weekdays[rest[0]]
	if !ok {
		return time.Time{}, badInput("relative: unrecognized weekday %q", rest[0])
	}
	y, m, d := local.Date()
	base := time.Date(y, m, d, 0, 0, 0, 0, local.Location())

	var target time.Time
	if forward {
		for target = base.AddDate(0, 0, 1); target.Weekday() != wday; target = target.AddDate(0, 0, 1) {
		}
	} else {
		for target = base.AddDate(0, 0, -1); target.Weekday() != wday; target = target.AddDate(0, 0, -1) {
		}
	}

	hour, min := 0, 0
	if len(rest) >= 3 && rest[1] == "at" {
		h, m2, err := parseTimeOfDay(rest[2])
		if err != nil {
			return time.Time{}, err
		}
		hour, min = h, m2
	} else if len(rest) > 1 {
		return time.Time{}, badInput("relative: unrecognized token %q", rest[1])
	}
	y, m, d = target.Date()
	return time.Date(y, m, d, hour, min, 0, 0, local.Location()).UTC(), nil
}

func parseTimeOfDay(tok string) (hour, minute int, err error) {
	m := timeRe.FindStringSubmatch(tok)
	if m == nil {
		return 0, 0, badInput("relative: unrecognized time %q", tok)
	}
	h, _ := strconv.Atoi(m[1])
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}
	switch m[3] {
	case "am":
		if h == 12 {
			h = 0
		}
	case "pm":
		if h != 12 {
			h += 12
		}
	default:
		if h > 23 {
			return 0, 0, badInput("relative: hour out of range in %q", tok)
		}
	}
	if h > 23 || minute > 59 {
		return 0, 0, badInput("relative: time out of range in %q", tok)
	}
	return h, minute, nil
}

func resolveInNUnit(local time.Time, rest []string) (time.Time, error) {
	if len(rest) != 2 {
		return time.Time{}, badInput("relative: malformed \"in N UNIT\" expression")
	}
	return applyNUnit(local, rest[0], rest[1], 1)
}

func resolveNUnitAgo(local time.Time, rest []string, sign int) (time.Time, error) {
	if len(rest) != 2 {
		return time.Time{}, badInput("relative: malformed \"N UNIT\" expression")
	}
	return applyNUnit(local, rest[0], rest[1], sign)
}

func applyNUnit(local time.Time, nTok, unitTok string, sign int) (time.Time, error) {
	n, err := strconv.Atoi(nTok)
	if err != nil {
		return time.Time{}, badInput("relative: expected a number, got %q", nTok)
	}
	if cal, ok := calendarUnits[unitTok]; ok {
		y, m, d := local.Date()
		hh, mm, ss := local.Clock()
		switch cal {
		case "month":
			return time.Date(y, m+time.Month(sign*n), d, hh, mm, ss, 0, local.Location()).UTC(), nil
		case "year":
			return time.Date(y+sign*n, m, d, hh, mm, ss, 0, local.Location()).UTC(), nil
		}
	}
	dur, ok := units[unitTok]
	if !ok {
		return time.Time{}, badInput("relative: unrecognized unit %q", unitTok)
	}
	return local.Add(time.Duration(sign*n) * dur).UTC(), nil
}
