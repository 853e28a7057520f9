package availability

import (
	"testing"
	"time"
)

func t0(h, m int) time.Time {
	return time.Date(2026, time.February, 18, h, m, 0, 0, time.UTC)
}

func TestMergeEmptyStreamsYieldsSingleFreeWindow(t *testing.T) {
	window := []Stream{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	ivs, err := Merge(window, t0(0, 0), t0(16, 0), false)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if len(ivs) != 1 {
		t.Fatalf("len(ivs) = %d, want 1", len(ivs))
	}
	if ivs[0].Kind != KindFree || !ivs[0].Start.Equal(t0(0, 0)) || !ivs[0].End.Equal(t0(16, 0)) {
		t.Fatalf("interval = %#v", ivs[0])
	}
}

func TestMergePartitionsWindowExactly(t *testing.T) {
	streams := []Stream{
		{ID: "a", Events: []Event{{Start: t0(9, 0), End: t0(10, 0)}}},
		{ID: "b", Events: []Event{{Start: t0(9, 30), End: t0(11, 0)}}},
	}
	ivs, err := Merge(streams, t0(8, 0), t0(12, 0), false)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if ivs[0].Start != t0(8, 0) || ivs[len(ivs)-1].End != t0(12, 0) {
		t.Fatalf("intervals don't span window: %#v", ivs)
	}
	for i := 1; i < len(ivs); i++ {
		if !ivs[i-1].End.Equal(ivs[i].Start) {
			t.Fatalf("gap between interval %d and %d: %#v", i-1, i, ivs)
		}
	}
}

func TestMergeNonOpaqueTracksContributingStreamIDs(t *testing.T) {
	streams := []Stream{
		{ID: "a", Events: []Event{{Start: t0(9, 0), End: t0(10, 0)}}},
		{ID: "b", Events: []Event{{Start: t0(9, 30), End: t0(10, 30)}}},
	}
	ivs, err := Merge(streams, t0(8, 0), t0(12, 0), false)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	var sawOverlap bool
	for _, iv := range ivs {
		if iv.Kind == KindBusy && len(iv.StreamIDs) == 2 {
			sawOverlap = true
			if iv.StreamIDs[0] != "a" || iv.StreamIDs[1] != "b" {
				t.Fatalf("stream ids = %v, want sorted [a b]", iv.StreamIDs)
			}
		}
	}
	if !sawOverlap {
		t.Fatalf("expected an overlap interval with both stream ids: %#v", ivs)
	}
}

func TestMergeOpaqueOmitsStreamIDsAndCoalesces(t *testing.T) {
	streams := []Stream{
		{ID: "a", Events: []Event{{Start: t0(9, 0), End: t0(10, 0)}}},
		{ID: "b", Events: []Event{{Start: t0(10, 0), End: t0(11, 0)}}},
	}
	ivs, err := Merge(streams, t0(8, 0), t0(12, 0), true)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	for _, iv := range ivs {
		if iv.StreamIDs != nil {
			t.Fatalf("opaque output must omit stream ids: %#v", iv)
		}
	}
	var busyCount int
	for _, iv := range ivs {
		if iv.Kind == KindBusy {
			busyCount++
			if !iv.Start.Equal(t0(9, 0)) || !iv.End.Equal(t0(11, 0)) {
				t.Fatalf("adjacent busy intervals should coalesce: %#v", iv)
			}
		}
	}
	if busyCount != 1 {
		t.Fatalf("busyCount = %d, want 1 (coalesced)", busyCount)
	}
}

func TestMergeRejectsInvertedWindow(t *testing.T) {
	if _, err := Merge(nil, t0(12, 0), t0(8, 0), false); err == nil {
		t.Fatalf("expected BadInput for inverted window")
	}
}

func TestFindFirstFreeAcross(t *testing.T) {
	streams := []Stream{
		{ID: "a", Events: []Event{{Start: t0(9, 0), End: t0(10, 0)}}},
	}
	iv, err := FindFirstFreeAcross(streams, t0(8, 0), t0(12, 0), 90*time.Minute)
	if err != nil {
		t.Fatalf("FindFirstFreeAcross: %v", err)
	}
	if iv == nil {
		t.Fatalf("expected a free interval")
	}
	if !iv.Start.Equal(t0(10, 0)) || !iv.End.Equal(t0(12, 0)) {
		t.Fatalf("interval = %#v, want 10:00-12:00", iv)
	}
}

func TestFindFirstFreeAcrossReturnsNilWhenNoneLongEnough(t *testing.T) {
	streams := []Stream{
		{ID: "a", Events: []Event{{Start: t0(8, 0), End: t0(11, 30)}}},
	}
	iv, err := FindFirstFreeAcross(streams, t0(8, 0), t0(12, 0), 90*time.Minute)
	if err != nil {
		t.Fatalf("FindFirstFreeAcross: %v", err)
	}
	if iv != nil {
		t.Fatalf("expected nil, got %#v", iv)
	}
}
