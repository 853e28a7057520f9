package filter

import (
	"testing"

	"github.com/temporalcortex/tcx/internal/value"
)

func mustFromJSON(t *testing.T, s string) value.Value {
	t.Helper()
	v, err := value.FromJSON(s)
	if err != nil {
		t.Fatalf("FromJSON(%q): %v", s, err)
	}
	return v
}

func TestApplyRootOnlyPattern(t *testing.T) {
	v := mustFromJSON(t, `{"name":"Alice","etag":"abc","kind":"event"}`)
	pats, err := ParsePatterns([]string{"etag", "kind"})
	if err != nil {
		t.Fatalf("ParsePatterns: %v", err)
	}
	out := Apply(v, pats)
	if _, ok := out.Map.Get("etag"); ok {
		t.Fatalf("etag should be removed")
	}
	if _, ok := out.Map.Get("kind"); ok {
		t.Fatalf("kind should be removed")
	}
	name, ok := out.Map.Get("name")
	if !ok || name.String != "Alice" {
		t.Fatalf("name = %#v, want Alice preserved", name)
	}
}

func TestApplyEmptyPatternsPreservesAll(t *testing.T) {
	v := mustFromJSON(t, `{"name":"Alice","etag":"abc"}`)
	out := Apply(v, nil)
	if _, ok := out.Map.Get("etag"); !ok {
		t.Fatalf("etag should survive with no patterns")
	}
}

func TestApplyWildcardOneLevelBelowRoot(t *testing.T) {
	v := mustFromJSON(t, `{"items":[{"name":"Event","etag":"x"},{"name":"Event2","etag":"y"}]}`)
	pats, err := ParsePatterns([]string{"*.etag"})
	if err != nil {
		t.Fatalf("ParsePatterns: %v", err)
	}
	out := Apply(v, pats)
	items, _ := out.Map.Get("items")
	for _, el := range items.Seq {
		if _, ok := el.Map.Get("etag"); ok {
			t.Fatalf("etag should be removed from every element")
		}
		if _, ok := el.Map.Get("name"); !ok {
			t.Fatalf("name should be preserved")
		}
	}
}

func TestApplyPreservesSiblingOrder(t *testing.T) {
	v := mustFromJSON(t, `{"a":1,"etag":"x","b":2,"c":3}`)
	pats, _ := ParsePatterns([]string{"etag"})
	out := Apply(v, pats)
	got := out.Map.Keys()
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("keys = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("keys = %v, want %v", got, want)
		}
	}
}

func TestApplyRootPatternDoesNotMatchNested(t *testing.T) {
	v := mustFromJSON(t, `{"items":[{"name":"E","etag":"x"}]}`)
	pats, _ := ParsePatterns([]string{"etag"})
	out := Apply(v, pats)
	items, _ := out.Map.Get("items")
	if _, ok := items.Seq[0].Map.Get("etag"); !ok {
		t.Fatalf("root-only pattern must not remove nested etag")
	}
}

func TestParsePatternRejectsMalformed(t *testing.T) {
	for _, bad := range []string{"", ".etag", "etag.", "a..b"} {
		if _, err := ParsePattern(bad); err == nil {
			t.Fatalf("ParsePattern(%q) should fail", bad)
		}
	}
}
