// Package filter rewrites a value.Value tree by removing entries that match
// a set of dotted-path patterns (with "*" wildcards) before TOON encoding.
package filter

import (
	"fmt"
	"strings"

	"github.com/temporalcortex/tcx/internal/value"
)

// Pattern is a parsed dotted-path pattern: a non-empty sequence of segments,
// each a literal key or the wildcard "*" matching one key at that depth.
type Pattern struct {
	segments []string
}

// ParsePattern parses a dotted pattern string such as "etag" or "*.etag".
// An empty string or a pattern with a trailing/leading/doubled dot is
// malformed (BadInput).
func ParsePattern(s string) (Pattern, error) {
	if s == "" {
		return Pattern{}, fmt.Errorf("filter: empty pattern")
	}
	if strings.HasPrefix(s, ".") || strings.HasSuffix(s, ".") {
		return Pattern{}, fmt.Errorf("filter: pattern %q has a leading or trailing dot", s)
	}
	segs := strings.Split(s, ".")
	for _, seg := range segs {
		if seg == "" {
			return Pattern{}, fmt.Errorf("filter: pattern %q has an empty segment", s)
		}
	}
	return Pattern{segments: segs}, nil
}

// ParsePatterns parses every pattern string, returning BadInput on the first
// malformed entry.
func ParsePatterns(raw []string) ([]Pattern, error) {
	out := make([]Pattern, 0, len(raw))
	for _, s := range raw {
		p, err := ParsePattern(s)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Apply returns a copy of v with every entry matched by any pattern removed.
// Removal never reorders surviving sibling entries. A pattern matches a path
// when its segments align one-for-one with the path's trailing segments
// counted from the root — "etag" matches only a root-level "etag" key,
// "*.etag" matches an "etag" key one level below any root key, whether that
// level is a Map field or reached through every element of a Seq.
func Apply(v value.Value, patterns []Pattern) value.Value {
	if len(patterns) == 0 {
		return v.Clone()
	}
	return applyAtPath(v, nil, patterns)
}

func applyAtPath(v value.Value, path []string, patterns []Pattern) value.Value {
	switch v.Kind {
	case value.KindMap:
		out := value.NewOrderedMap()
		for _, e := range v.Map.Entries() {
			childPath := append(append([]string{}, path...), e.Key)
			if matchesAny(childPath, patterns) {
				continue
			}
			out.Set(e.Key, applyAtPath(e.Value, childPath, patterns))
		}
		return value.MapOf(out)
	case value.KindSeq:
		out := make([]value.Value, len(v.Seq))
		for i, el := range v.Seq {
			// Seq elements do not themselves add a path segment: a field one
			// level below a Seq-of-Maps is reached through every element.
			out[i] = applyAtPath(el, path, patterns)
		}
		return value.SeqOf(out)
	default:
		return v
	}
}

// matchesAny reports whether path is matched (as a terminal match) by any
// pattern: the pattern's segments must equal path's length-matching suffix,
// where "*" matches any single key.
func matchesAny(path []string, patterns []Pattern) bool {
	for _, p := range patterns {
		if matches(path, p.segments) {
			return true
		}
	}
	return false
}

func matches(path []string, segs []string) bool {
	if len(segs) != len(path) {
		return false
	}
	for i, seg := range segs {
		if seg == "*" {
			continue
		}
		if seg != path[i] {
			return false
		}
	}
	return true
}
