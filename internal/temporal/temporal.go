// Package temporal implements the instant-arithmetic operations built on
// top of the timezone resolver: zone conversion, duration decomposition,
// and offset-spec adjustment.
package temporal

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/temporalcortex/tcx/internal/tzres"
)

// BadInputError reports malformed instants or offset specs.
type BadInputError struct {
	Message string
}

func (e *BadInputError) Error() string { return e.Message }

func badInput(format string, args ...any) error {
	return &BadInputError{Message: fmt.Sprintf(format, args...)}
}

// ParseInstant parses an RFC-3339 instant, requiring an explicit offset or
// "Z" suffix (the core operations never accept offset-less instants).
func ParseInstant(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, badInput("temporal: invalid instant %q: %v", s, err)
	}
	return t, nil
}

// FormatInstant renders t as RFC-3339 UTC with a literal "Z" suffix.
func FormatInstant(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05Z")
}

// ConversionResult is the output of ConvertTimezone.
type ConversionResult struct {
	UTC           string
	Local         string
	Timezone      string
	OffsetSeconds int
	DSTActive     bool
}

// ConvertTimezone renders instant in zone, reporting its offset and DST
// state alongside the UTC and local (offset-free) timestamps.
func ConvertTimezone(instant time.Time, zone string) (ConversionResult, error) {
	loc, err := tzres.Resolve(zone)
	if err != nil {
		return ConversionResult{}, err
	}
	local := instant.In(loc)
	_, offset := local.Zone()
	dstActive, err := tzres.DSTActive(zone, instant)
	if err != nil {
		return ConversionResult{}, err
	}
	return ConversionResult{
		UTC:           FormatInstant(instant),
		Local:         local.Format("2006-01-02T15:04:05"),
		Timezone:      zone,
		OffsetSeconds: offset,
		DSTActive:     dstActive,
	}, nil
}

// DurationResult is the output of ComputeDuration: the Euclidean
// decomposition of |b-a| in seconds, plus the sign of b-a.
type DurationResult struct {
	TotalSeconds int64
	Days         int64
	Hours        int64
	Minutes      int64
	Seconds      int64
	Sign         int
}

// ComputeDuration decomposes the absolute difference between a and b into
// days, hours, minutes, and seconds, reporting the direction of b relative
// to a as Sign (+1, -1, or 0).
func ComputeDuration(a, b time.Time) DurationResult {
	delta := b.Sub(a)
	sign := 0
	switch {
	case delta > 0:
		sign = 1
	case delta < 0:
		sign = -1
	}
	total := int64(delta.Seconds())
	if total < 0 {
		total = -total
	}
	days := total / 86400
	rem := total % 86400
	hours := rem / 3600
	rem %= 3600
	minutes := rem / 60
	seconds := rem % 60
	return DurationResult{
		TotalSeconds: total,
		Days:         days,
		Hours:        hours,
		Minutes:      minutes,
		Seconds:      seconds,
		Sign:         sign,
	}
}

var offsetSpecRe = regexp.MustCompile(`^([+-])(\d+)([dhms])$`)

// AdjustmentResult is the output of AdjustTimestamp.
type AdjustmentResult struct {
	AdjustedUTC       string
	AdjustedLocal     string
	AdjustmentApplied string
}

// AdjustTimestamp applies offsetSpec (matching ^[+-]\d+[dhms]$) to instant
// in UTC seconds, then renders the result in zone.
func AdjustTimestamp(instant time.Time, offsetSpec, zone string) (AdjustmentResult, error) {
	m := offsetSpecRe.FindStringSubmatch(offsetSpec)
	if m == nil {
		return AdjustmentResult{}, badInput("temporal: malformed offset spec %q", offsetSpec)
	}
	loc, err := tzres.Resolve(zone)
	if err != nil {
		return AdjustmentResult{}, err
	}
	n, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return AdjustmentResult{}, badInput("temporal: malformed offset spec %q: %v", offsetSpec, err)
	}
	var unitSeconds int64
	switch m[3] {
	case "d":
		unitSeconds = 86400
	case "h":
		unitSeconds = 3600
	case "m":
		unitSeconds = 60
	case "s":
		unitSeconds = 1
	}
	delta := n * unitSeconds
	if m[1] == "-" {
		delta = -delta
	}
	adjusted := instant.Add(time.Duration(delta) * time.Second)
	return AdjustmentResult{
		AdjustedUTC:       FormatInstant(adjusted),
		AdjustedLocal:     adjusted.In(loc).Format("2006-01-02T15:04:05"),
		AdjustmentApplied: offsetSpec,
	}, nil
}
