package tzres

import (
	"testing"
	"time"
)

func TestResolveRejectsUnknownZone(t *testing.T) {
	if _, err := Resolve("Not/AZone"); err == nil {
		t.Fatalf("expected BadInput for unknown zone")
	}
	if _, err := Resolve(""); err == nil {
		t.Fatalf("expected BadInput for empty zone")
	}
}

func TestResolveAcceptsUTCAndIANA(t *testing.T) {
	if _, err := Resolve("UTC"); err != nil {
		t.Fatalf("Resolve(UTC): %v", err)
	}
	if _, err := Resolve("America/New_York"); err != nil {
		t.Fatalf("Resolve(America/New_York): %v", err)
	}
}

func TestOffsetAtMarchIsEDT(t *testing.T) {
	instant := time.Date(2026, time.March, 15, 14, 0, 0, 0, time.UTC)
	off, err := OffsetAt("America/New_York", instant)
	if err != nil {
		t.Fatalf("OffsetAt: %v", err)
	}
	if off != -4*3600 {
		t.Fatalf("offset = %d, want -4h (EDT)", off)
	}
}

func TestDSTActiveDistinguishesSummerAndWinter(t *testing.T) {
	summer := time.Date(2026, time.July, 1, 12, 0, 0, 0, time.UTC)
	winter := time.Date(2026, time.January, 1, 12, 0, 0, 0, time.UTC)
	active, err := DSTActive("America/New_York", summer)
	if err != nil {
		t.Fatalf("DSTActive: %v", err)
	}
	if !active {
		t.Fatalf("expected DST active in July for America/New_York")
	}
	active, err = DSTActive("America/New_York", winter)
	if err != nil {
		t.Fatalf("DSTActive: %v", err)
	}
	if active {
		t.Fatalf("expected DST inactive in January for America/New_York")
	}
}

func TestLocalToUTCOrdinaryTime(t *testing.T) {
	got, err := LocalToUTC("America/New_York", 2026, time.March, 16, 9, 0, 0)
	if err != nil {
		t.Fatalf("LocalToUTC: %v", err)
	}
	want := time.Date(2026, time.March, 16, 13, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestLocalToUTCSpringForwardGapShiftsForward(t *testing.T) {
	// 2026-03-08 02:30 local does not exist in America/New_York (clocks
	// jump from 02:00 EST to 03:00 EDT).
	got, err := LocalToUTC("America/New_York", 2026, time.March, 8, 2, 30, 0)
	if err != nil {
		t.Fatalf("LocalToUTC: %v", err)
	}
	// EST (-5) treats 02:30 as if the gap didn't exist, landing on 07:30 UTC,
	// one hour past the nominal 06:30Z the wall-clock would otherwise imply.
	want := time.Date(2026, time.March, 8, 7, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v (forward-shifted past the gap)", got, want)
	}
}

func TestLocalToUTCFallBackOverlapPicksEarlierOffset(t *testing.T) {
	// 2026-11-01 01:30 local occurs twice in America/New_York: first as
	// EDT (-4), then as EST (-5). The earlier, pre-transition offset wins.
	got, err := LocalToUTC("America/New_York", 2026, time.November, 1, 1, 30, 0)
	if err != nil {
		t.Fatalf("LocalToUTC: %v", err)
	}
	want := time.Date(2026, time.November, 1, 5, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v (pre-transition EDT offset)", got, want)
	}
}
