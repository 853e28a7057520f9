package watch

import "testing"

func TestIsStreamFileMatchesSuffix(t *testing.T) {
	cases := map[string]bool{
		"/a/b/team.streams.json": true,
		"/a/b/team.json":         false,
		"/a/b/streams.json.bak":  false,
		"streams.json":           false,
		"x.streams.json":         true,
	}
	for path, want := range cases {
		if got := isStreamFile(path); got != want {
			t.Errorf("isStreamFile(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestNewDefaultsDebounce(t *testing.T) {
	w := New("/tmp/somewhere", 0)
	if w.debounce <= 0 {
		t.Fatalf("expected positive default debounce")
	}
}
