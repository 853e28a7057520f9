package temporal

import "testing"

func TestConvertTimezoneMarchDST(t *testing.T) {
	instant, err := ParseInstant("2026-03-15T14:00:00Z")
	if err != nil {
		t.Fatalf("ParseInstant: %v", err)
	}
	res, err := ConvertTimezone(instant, "America/New_York")
	if err != nil {
		t.Fatalf("ConvertTimezone: %v", err)
	}
	if res.Local != "2026-03-15T10:00:00" {
		t.Fatalf("local = %q, want 2026-03-15T10:00:00", res.Local)
	}
	if !res.DSTActive {
		t.Fatalf("expected DST active")
	}
	if res.OffsetSeconds != -4*3600 {
		t.Fatalf("offset = %d, want -4h", res.OffsetSeconds)
	}
}

func TestComputeDurationEightHours(t *testing.T) {
	a, _ := ParseInstant("2026-03-16T09:00:00Z")
	b, _ := ParseInstant("2026-03-16T17:00:00Z")
	d := ComputeDuration(a, b)
	if d.TotalSeconds != 28800 || d.Hours != 8 || d.Days != 0 || d.Sign != 1 {
		t.Fatalf("duration = %#v", d)
	}
}

func TestComputeDurationNegativeSign(t *testing.T) {
	a, _ := ParseInstant("2026-03-16T17:00:00Z")
	b, _ := ParseInstant("2026-03-16T09:00:00Z")
	d := ComputeDuration(a, b)
	if d.Sign != -1 || d.TotalSeconds != 28800 {
		t.Fatalf("duration = %#v", d)
	}
}

func TestAdjustTimestampRoundtrip(t *testing.T) {
	instant, _ := ParseInstant("2026-03-16T09:00:00Z")
	up, err := AdjustTimestamp(instant, "+3h", "UTC")
	if err != nil {
		t.Fatalf("AdjustTimestamp(+3h): %v", err)
	}
	upInstant, _ := ParseInstant(up.AdjustedUTC)
	down, err := AdjustTimestamp(upInstant, "-3h", "UTC")
	if err != nil {
		t.Fatalf("AdjustTimestamp(-3h): %v", err)
	}
	if down.AdjustedUTC != FormatInstant(instant) {
		t.Fatalf("roundtrip = %q, want %q", down.AdjustedUTC, FormatInstant(instant))
	}
}

func TestAdjustTimestampRejectsMalformedSpec(t *testing.T) {
	instant, _ := ParseInstant("2026-03-16T09:00:00Z")
	for _, bad := range []string{"3h", "+3x", "+h", "++3h", "+3"} {
		if _, err := AdjustTimestamp(instant, bad, "UTC"); err == nil {
			t.Fatalf("AdjustTimestamp(%q) should fail", bad)
		}
	}
}

func TestAdjustTimestampDayUnit(t *testing.T) {
	instant, _ := ParseInstant("2026-03-16T09:00:00Z")
	res, err := AdjustTimestamp(instant, "+1d", "UTC")
	if err != nil {
		t.Fatalf("AdjustTimestamp: %v", err)
	}
	if res.AdjustedUTC != "2026-03-17T09:00:00Z" {
		t.Fatalf("adjusted = %q", res.AdjustedUTC)
	}
}
