package relative

import (
	"testing"
	"time"

	"github.com/temporalcortex/tcx/internal/temporal"
)

func mustParse(t *testing.T, s string) time.Time {
	t.Helper()
	ti, err := temporal.ParseInstant(s)
	if err != nil {
		t.Fatalf("ParseInstant(%q): %v", s, err)
	}
	return ti
}

func TestResolveNextWeekdayAtTime(t *testing.T) {
	anchor := mustParse(t, "2026-02-18T14:30:00Z")
	got, err := Resolve(anchor, "next Tuesday at 2pm", "UTC")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Format(time.RFC3339) != "2026-02-24T14:00:00Z" {
		t.Fatalf("got %s, want 2026-02-24T14:00:00Z", got.Format(time.RFC3339))
	}
}

func TestResolveTomorrowMidnightLocal(t *testing.T) {
	anchor := mustParse(t, "2026-02-18T23:30:00Z")
	got, err := Resolve(anchor, "tomorrow", "America/New_York")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	// 23:30 UTC on Feb 18 is 18:30 local on Feb 18 in New York (EST, -5);
	// tomorrow is Feb 19 00:00 local = 05:00 UTC.
	if got.Format(time.RFC3339) != "2026-02-19T05:00:00Z" {
		t.Fatalf("got %s", got.Format(time.RFC3339))
	}
}

func TestResolveInNUnit(t *testing.T) {
	anchor := mustParse(t, "2026-02-18T14:30:00Z")
	got, err := Resolve(anchor, "in 3 hours", "UTC")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Format(time.RFC3339) != "2026-02-18T17:30:00Z" {
		t.Fatalf("got %s", got.Format(time.RFC3339))
	}
}

func TestResolveNUnitAgo(t *testing.T) {
	anchor := mustParse(t, "2026-02-18T14:30:00Z")
	got, err := Resolve(anchor, "2 days ago", "UTC")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Format(time.RFC3339) != "2026-02-16T14:30:00Z" {
		t.Fatalf("got %s", got.Format(time.RFC3339))
	}
}

func TestResolveNUnitFromNow(t *testing.T) {
	anchor := mustParse(t, "2026-02-18T14:30:00Z")
	got, err := Resolve(anchor, "90 minutes from now", "UTC")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Format(time.RFC3339) != "2026-02-18T16:00:00Z" {
		t.Fatalf("got %s", got.Format(time.RFC3339))
	}
}

func TestResolveRejectsUnrecognizedExpression(t *testing.T) {
	anchor := mustParse(t, "2026-02-18T14:30:00Z")
	if _, err := Resolve(anchor, "sometime soon", "UTC"); err == nil {
		t.Fatalf("expected BadInput")
	}
}

func TestResolveRejectsUnknownWeekday(t *testing.T) {
	anchor := mustParse(t, "2026-02-18T14:30:00Z")
	if _, err := Resolve(anchor, "next Funday", "UTC"); err == nil {
		t.Fatalf("expected BadInput for unknown weekday")
	}
}
