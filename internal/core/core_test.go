package core

import "testing"

func TestEncodeContainsFields(t *testing.T) {
	out, err := Encode(`{"name":"Alice","age":30}`)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !contains(out, "name: Alice") || !contains(out, "age: 30") {
		t.Fatalf("out = %q", out)
	}
}

func TestDecodeRoundtripsAge(t *testing.T) {
	toon, err := Encode(`{"name":"Alice","age":30}`)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out, err := Decode(toon)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !contains(out, `"age":30`) {
		t.Fatalf("out = %q, want integer age", out)
	}
}

func TestFilterAndEncodeRemovesNestedEtag(t *testing.T) {
	out, err := FilterAndEncode(`{"items":[{"name":"E","etag":"x"}]}`, []string{"*.etag"})
	if err != nil {
		t.Fatalf("FilterAndEncode: %v", err)
	}
	if !contains(out, "name") || contains(out, "etag") {
		t.Fatalf("out = %q", out)
	}
}

func TestExpandRRuleDailyThreeEvents(t *testing.T) {
	out, err := ExpandRRule("FREQ=DAILY;COUNT=3", "2026-02-17T14:00:00", 60, "America/Los_Angeles", "", 0)
	if err != nil {
		t.Fatalf("ExpandRRule: %v", err)
	}
	if !contains(out, `"start"`) || !contains(out, `"end"`) {
		t.Fatalf("out = %q", out)
	}
}

func TestConvertTimezoneMarchDST(t *testing.T) {
	out, err := ConvertTimezone("2026-03-15T14:00:00Z", "America/New_York")
	if err != nil {
		t.Fatalf("ConvertTimezone: %v", err)
	}
	if !contains(out, "10:00:00") || !contains(out, `"dst_active":true`) {
		t.Fatalf("out = %q", out)
	}
}

func TestComputeDurationEightHours(t *testing.T) {
	out, err := ComputeDuration("2026-03-16T09:00:00Z", "2026-03-16T17:00:00Z")
	if err != nil {
		t.Fatalf("ComputeDuration: %v", err)
	}
	if !contains(out, `"total_seconds":28800`) || !contains(out, `"hours":8`) || !contains(out, `"days":0`) {
		t.Fatalf("out = %q", out)
	}
}

func TestResolveRelativeNextTuesday(t *testing.T) {
	out, err := ResolveRelative("2026-02-18T14:30:00+00:00", "next Tuesday at 2pm", "UTC")
	if err != nil {
		t.Fatalf("ResolveRelative: %v", err)
	}
	if !contains(out, "2026-02-24T14:00:00Z") {
		t.Fatalf("out = %q", out)
	}
}

func TestMergeAvailabilityEmptyStreamsSingleFreeInterval(t *testing.T) {
	streams := `[{"stream_id":"a","events":[]},{"stream_id":"b","events":[]},{"stream_id":"c","events":[]}]`
	out, err := MergeAvailability(streams, "2026-02-18T00:00:00Z", "2026-02-18T16:00:00Z", false)
	if err != nil {
		t.Fatalf("MergeAvailability: %v", err)
	}
	if !contains(out, `"kind":"free"`) {
		t.Fatalf("out = %q", out)
	}
}

func TestFindFirstFreeAcrossReturnsNullWhenFullyBusy(t *testing.T) {
	streams := `[{"stream_id":"a","events":[{"start":"2026-02-18T00:00:00Z","end":"2026-02-18T16:00:00Z"}]}]`
	out, err := FindFirstFreeAcross(streams, "2026-02-18T00:00:00Z", "2026-02-18T16:00:00Z", 30)
	if err != nil {
		t.Fatalf("FindFirstFreeAcross: %v", err)
	}
	if out != "null" {
		t.Fatalf("out = %q, want null", out)
	}
}

func TestAdjustTimestampRoundtripInvariant(t *testing.T) {
	up, err := AdjustTimestamp("2026-03-16T09:00:00Z", "+90m", "UTC")
	if err != nil {
		t.Fatalf("AdjustTimestamp(+90m): %v", err)
	}
	// extract adjusted_utc the crude way, since this test only checks the
	// roundtrip invariant end to end.
	adjusted := extractField(up, "adjusted_utc")
	down, err := AdjustTimestamp(adjusted, "-90m", "UTC")
	if err != nil {
		t.Fatalf("AdjustTimestamp(-90m): %v", err)
	}
	back := extractField(down, "adjusted_utc")
	if back != "2026-03-16T09:00:00Z" {
		t.Fatalf("roundtrip = %q, want original instant", back)
	}
}

func TestOperationsRejectMalformedInput(t *testing.T) {
	if _, err := Encode(`{bad json`); err == nil {
		t.Fatalf("expected BadInput")
	}
	if _, err := Decode("a:\n   b: 1"); err == nil {
		t.Fatalf("expected BadInput")
	}
	if _, err := FilterAndEncode(`{}`, []string{""}); err == nil {
		t.Fatalf("expected BadInput")
	}
	if _, err := ExpandRRule("", "2026-02-17T14:00:00", 60, "UTC", "", 0); err == nil {
		t.Fatalf("expected BadInput")
	}
	if _, err := ConvertTimezone("not-an-instant", "UTC"); err == nil {
		t.Fatalf("expected BadInput")
	}
	if _, err := AdjustTimestamp("2026-03-16T09:00:00Z", "90m", "UTC"); err == nil {
		t.Fatalf("expected BadInput")
	}
	if _, err := ResolveRelative("2026-02-18T14:30:00Z", "whenever", "UTC"); err == nil {
		t.Fatalf("expected BadInput")
	}
	if _, err := MergeAvailability("not json", "2026-02-18T00:00:00Z", "2026-02-18T01:00:00Z", false); err == nil {
		t.Fatalf("expected BadInput")
	}
}

func extractField(jsonObj, field string) string {
	key := `"` + field + `":"`
	i := indexOf(jsonObj, key)
	if i < 0 {
		return ""
	}
	start := i + len(key)
	end := indexOf(jsonObj[start:], `"`)
	if end < 0 {
		return ""
	}
	return jsonObj[start : start+end]
}

func contains(haystack, needle string) bool { return indexOf(haystack, needle) >= 0 }

func indexOf(haystack, needle string) int {
	n := len(needle)
	if n == 0 {
		return 0
	}
	for i := 0; i+n <= len(haystack); i++ {
		if haystack[i:i+n] == needle {
			return i
		}
	}
	return -1
}
