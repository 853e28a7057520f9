// Package tzres resolves IANA zone identifiers and performs the offset and
// DST-fold arithmetic every other temporal package builds on. It wraps the
// process's embedded tzdata (via the stdlib time package) rather than
// shipping a separate database: no third-party zoneinfo library is used.
package tzres

import (
	"fmt"
	"time"
)

// BadInputError reports a malformed zone id or local time. It mirrors the
// typed-error convention used throughout this module's core operations.
type BadInputError struct {
	Message string
}

func (e *BadInputError) Error() string { return e.Message }

func badInput(format string, args ...any) error {
	return &BadInputError{Message: fmt.Sprintf(format, args...)}
}

// Resolve loads the *time.Location for zoneID, returning BadInput if the
// identifier is unknown to the embedded database.
func Resolve(zoneID string) (*time.Location, error) {
	if zoneID == "" {
		return nil, badInput("tzres: empty zone id")
	}
	loc, err := time.LoadLocation(zoneID)
	if err != nil {
		return nil, badInput("tzres: unknown zone %q: %v", zoneID, err)
	}
	return loc, nil
}

// OffsetAt returns the zone's offset in seconds east of UTC at instant.
func OffsetAt(zoneID string, instant time.Time) (int, error) {
	loc, err := Resolve(zoneID)
	if err != nil {
		return 0, err
	}
	_, offset := instant.In(loc).Zone()
	return offset, nil
}

// DSTActive reports whether zoneID observes daylight saving at instant.
// time.Time carries no direct "is DST" flag, so this compares the zone's
// offset at instant against the offset in January and July of the same
// year: whichever of the two is smaller is taken as standard time, and
// DST is active when the offset at instant exceeds it. This matches the
// northern- and southern-hemisphere convention alike, since one of the two
// reference months always falls in each hemisphere's standard-time season.
func DSTActive(zoneID string, instant time.Time) (bool, error) {
	loc, err := Resolve(zoneID)
	if err != nil {
		return false, err
	}
	local := instant.In(loc)
	year := local.Year()
	jan := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	jul := time.Date(year, time.July, 1, 0, 0, 0, 0, loc)
	_, janOff := jan.Zone()
	_, julOff := jul.Zone()
	standard := janOff
	if julOff < standard {
		standard = julOff
	}
	_, curOff := local.Zone()
	return curOff > standard, nil
}

// LocalToUTC converts a local-naive wall-clock time (year..nanosecond
// components, no offset) in zoneID to an absolute UTC instant.
//
// DST fold policy: a wall-clock that does not exist (spring-forward gap) is
// shifted forward by the size of the gap, landing on the first valid
// instant after the transition. A wall-clock that occurs twice (fall-back
// overlap) resolves to the earlier, pre-transition offset.
func LocalToUTC(zoneID string, year int, month time.Month, day, hour, min, sec int) (time.Time, error) {
	loc, err := Resolve(zoneID)
	if err != nil {
		return time.Time{}, err
	}

	naive := time.Date(year, month, day, hour, min, sec, 0, loc)
	_, naiveOffset := naive.Zone()

	// Gather the offsets in effect shortly before and after this wall-clock
	// reading. If either differs from naive's offset, a transition occurred
	// nearby and this reading may be a gap or overlap.
	before := naive.Add(-3 * time.Hour)
	_, beforeOffset := before.Zone()
	_, afterOffset := naive.Add(3 * time.Hour).Zone()
	if beforeOffset == naiveOffset {
		if afterOffset == naiveOffset {
			return naive.UTC(), nil
		}
		// naive sits before the transition: compare its offset with the
		// one that follows, so beforeOffset stays the pre-transition one.
		beforeOffset, naiveOffset = naiveOffset, afterOffset
	}

	// Build the two candidate absolute instants this wall-clock could
	// denote, one per side of the transition, and keep whichever actually
	// reproduces the requested wall-clock components in this zone.
	candBefore := time.Date(year, month, day, hour, min, sec, 0, time.FixedZone("", beforeOffset)).UTC()
	candNaive := time.Date(year, month, day, hour, min, sec, 0, time.FixedZone("", naiveOffset)).UTC()
	validBefore := sameWallClock(candBefore.In(loc), year, month, day, hour, min, sec)
	validNaive := sameWallClock(candNaive.In(loc), year, month, day, hour, min, sec)

	switch {
	case validBefore && validNaive:
		// Overlap (fall-back): both offsets produce this wall-clock twice.
		// Select the earlier, pre-transition absolute instant.
		if candBefore.Before(candNaive) {
			return candBefore, nil
		}
		return candNaive, nil
	case validBefore:
		return candBefore, nil
	case validNaive:
		return candNaive, nil
	default:
		// Gap (spring-forward): neither offset reproduces the wall-clock
		// exactly because it never occurred. Reading it at the
		// pre-transition offset shifts it forward by the gap size.
		return candBefore, nil
	}
}

func sameWallClock(t time.Time, year int, month time.Month, day, hour, min, sec int) bool {
	return t.Year() == year && t.Month() == month && t.Day() == day &&
		t.Hour() == hour && t.Minute() == min && t.Second() == sec
}
