package toon

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/temporalcortex/tcx/internal/value"
)

// BadInputError reports malformed TOON text, naming the offending line.
type BadInputError struct {
	Line    int
	Message string
}

func (e *BadInputError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("toon: line %d: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("toon: %s", e.Message)
}

func badInput(line int, format string, args ...interface{}) error {
	return &BadInputError{Line: line, Message: fmt.Sprintf(format, args...)}
}

type line struct {
	indent int
	text   string
	lineNo int
}

var tableHeaderRe = regexp.MustCompile(`^(.*)\[(\d+)\]\{([^}]*)\}:\s*$`)
var tableHeaderAnonRe = regexp.MustCompile(`^\[(\d+)\]\{([^}]*)\}:\s*$`)

// Decode parses TOON text back into a Value tree. It never silently drops
// data: indentation that is not a multiple of two spaces, a mixed tab, an
// unclosed indentation jump, or a table row count mismatch is a BadInputError.
func Decode(text string) (value.Value, error) {
	lines, err := tokenize(text)
	if err != nil {
		return value.Value{}, err
	}
	if len(lines) == 0 {
		return value.MapOf(value.NewOrderedMap()), nil
	}

	first := lines[0]
	if first.indent != 0 {
		return value.Value{}, badInput(first.lineNo, "document must not be indented")
	}

	if len(lines) == 1 {
		switch first.text {
		case "[]":
			return value.SeqOf(nil), nil
		case "{}":
			return value.MapOf(value.NewOrderedMap()), nil
		}
		if !strings.Contains(first.text, ":") && !strings.HasPrefix(first.text, "-") {
			return parseInlineValueText(first.text)
		}
	}

	if strings.HasPrefix(first.text, "-") {
		v, idx, err := parseSeqBlock(lines, 0, 0)
		if err != nil {
			return value.Value{}, err
		}
		if idx != len(lines) {
			return value.Value{}, badInput(lines[idx].lineNo, "unexpected indentation")
		}
		return v, nil
	}

	if m := tableHeaderAnonRe.FindStringSubmatch(first.text); m != nil {
		n, _ := strconv.Atoi(m[1])
		keys := splitCells(m[2])
		v, idx, err := parseTableRows(lines, 1, 1, n, keys, first.lineNo)
		if err != nil {
			return value.Value{}, err
		}
		if idx != len(lines) {
			return value.Value{}, badInput(lines[idx].lineNo, "unexpected indentation")
		}
		return v, nil
	}

	m, idx, err := parseMapBlock(lines, 0, 0)
	if err != nil {
		return value.Value{}, err
	}
	if idx != len(lines) {
		return value.Value{}, badInput(lines[idx].lineNo, "unexpected indentation jump")
	}
	return value.MapOf(m), nil
}

func tokenize(text string) ([]line, error) {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	var out []line
	for i, l := range raw {
		if strings.TrimSpace(l) == "" {
			continue
		}
		if strings.Contains(l, "\t") {
			lead := l[:len(l)-len(strings.TrimLeft(l, " \t"))]
			if strings.Contains(lead, "\t") {
				return nil, badInput(i+1, "mixed tabs are not allowed in indentation")
			}
		}
		stripped := strings.TrimLeft(l, " ")
		indentSpaces := len(l) - len(stripped)
		if indentSpaces%2 != 0 {
			return nil, badInput(i+1, "indentation must be a multiple of 2 spaces")
		}
		out = append(out, line{indent: indentSpaces / 2, text: stripped, lineNo: i + 1})
	}
	return out, nil
}

// parseMapBlock parses consecutive key-entry lines at the given indent level.
func parseMapBlock(lines []line, idx, indent int) (*value.OrderedMap, int, error) {
	m := value.NewOrderedMap()
	for idx < len(lines) && lines[idx].indent == indent {
		if strings.HasPrefix(lines[idx].text, "-") {
			break
		}
		key, val, nextIdx, err := parseEntryLine(lines, idx, indent)
		if err != nil {
			return nil, 0, err
		}
		m.Set(key, val)
		idx = nextIdx
	}
	return m, idx, nil
}

// parseEntryLine parses a single "key: value", "key:" (nested block), or
// "key[N]{k1,k2}:" (tabular) line at lines[idx], whose indent equals indent.
func parseEntryLine(lines []line, idx, indent int) (key string, val value.Value, nextIdx int, err error) {
	l := lines[idx]

	if m := tableHeaderRe.FindStringSubmatch(l.text); m != nil {
		key = m[1]
		n, _ := strconv.Atoi(m[2])
		keys := splitCells(m[3])
		v, next, e := parseTableRows(lines, idx+1, indent+1, n, keys, l.lineNo)
		return key, v, next, e
	}

	colon := strings.IndexByte(l.text, ':')
	if colon < 0 {
		return "", value.Value{}, 0, badInput(l.lineNo, "expected %q in key line: %s", ":", l.text)
	}
	key = l.text[:colon]
	rest := strings.TrimSpace(l.text[colon+1:])
	idx++

	if rest != "" {
		v, e := parseInlineValueText(rest)
		if e != nil {
			return "", value.Value{}, 0, badInput(l.lineNo, "%v", e)
		}
		return key, v, idx, nil
	}

	// Empty value: a nested block follows at indent+1, or this is an empty map.
	if idx < len(lines) && lines[idx].indent == indent+1 {
		if strings.HasPrefix(lines[idx].text, "-") {
			v, next, e := parseSeqBlock(lines, idx, indent+1)
			return key, v, next, e
		}
		child, next, e := parseMapBlock(lines, idx, indent+1)
		if e != nil {
			return "", value.Value{}, 0, e
		}
		return key, value.MapOf(child), next, nil
	}
	return key, value.MapOf(value.NewOrderedMap()), idx, nil
}

// parseSeqBlock parses consecutive "- ..." lines at the given indent level.
func parseSeqBlock(lines []line, idx, indent int) (value.Value, int, error) {
	var seq []value.Value
	for idx < len(lines) && lines[idx].indent == indent && strings.HasPrefix(lines[idx].text, "-") {
		l := lines[idx]
		content := strings.TrimPrefix(l.text, "-")
		content = strings.TrimPrefix(content, " ")
		idx++

		if content == "" {
			if idx < len(lines) && lines[idx].indent == indent+1 {
				child, next, err := parseBlockAuto(lines, idx, indent+1)
				if err != nil {
					return value.Value{}, 0, err
				}
				seq = append(seq, child)
				idx = next
				continue
			}
			seq = append(seq, value.MapOf(value.NewOrderedMap()))
			continue
		}

		if tm := tableHeaderRe.FindStringSubmatch(content); tm != nil {
			key := tm[1]
			n, _ := strconv.Atoi(tm[2])
			keys := splitCells(tm[3])
			rows, next, err := parseTableRows(lines, idx, indent+1, n, keys, l.lineNo)
			if err != nil {
				return value.Value{}, 0, err
			}
			m := value.NewOrderedMap()
			m.Set(key, rows)
			m2, next2, err := continueMapEntries(m, lines, next, indent+1)
			if err != nil {
				return value.Value{}, 0, err
			}
			seq = append(seq, value.MapOf(m2))
			idx = next2
			continue
		}

		if colon := strings.IndexByte(content, ':'); colon >= 0 {
			key := content[:colon]
			rest := strings.TrimSpace(content[colon+1:])
			m := value.NewOrderedMap()
			var next int
			if rest != "" {
				v, e := parseInlineValueText(rest)
				if e != nil {
					return value.Value{}, 0, badInput(l.lineNo, "%v", e)
				}
				m.Set(key, v)
				next = idx
			} else if idx < len(lines) && lines[idx].indent == indent+1 {
				var child value.Value
				var e error
				if strings.HasPrefix(lines[idx].text, "-") {
					child, next, e = parseSeqBlock(lines, idx, indent+1)
				} else {
					var cm *value.OrderedMap
					cm, next, e = parseMapBlock(lines, idx, indent+1)
					child = value.MapOf(cm)
				}
				if e != nil {
					return value.Value{}, 0, e
				}
				m.Set(key, child)
			} else {
				m.Set(key, value.MapOf(value.NewOrderedMap()))
				next = idx
			}
			m2, next2, err := continueMapEntries(m, lines, next, indent+1)
			if err != nil {
				return value.Value{}, 0, err
			}
			seq = append(seq, value.MapOf(m2))
			idx = next2
			continue
		}

		v, e := parseInlineValueText(content)
		if e != nil {
			return value.Value{}, 0, badInput(l.lineNo, "%v", e)
		}
		seq = append(seq, v)
	}
	return value.SeqOf(seq), idx, nil
}

// continueMapEntries absorbs any further "key: value" lines at indent that
// belong to a map whose first entry was parsed inline after a "- " marker.
func continueMapEntries(m *value.OrderedMap, lines []line, idx, indent int) (*value.OrderedMap, int, error) {
	for idx < len(lines) && lines[idx].indent == indent && !strings.HasPrefix(lines[idx].text, "-") {
		key, val, next, err := parseEntryLine(lines, idx, indent)
		if err != nil {
			return nil, 0, err
		}
		m.Set(key, val)
		idx = next
	}
	return m, idx, nil
}

// parseBlockAuto parses a nested block of unknown kind (map or seq) at indent.
func parseBlockAuto(lines []line, idx, indent int) (value.Value, int, error) {
	if idx < len(lines) && strings.HasPrefix(lines[idx].text, "-") {
		return parseSeqBlock(lines, idx, indent)
	}
	m, next, err := parseMapBlock(lines, idx, indent)
	if err != nil {
		return value.Value{}, 0, err
	}
	return value.MapOf(m), next, nil
}

// parseTableRows consumes exactly n comma-separated rows at the given indent.
// Any line at that indent counts as a row until n are read, so cells may
// hold ':' (timestamps) or start with '-' (negative numbers).
func parseTableRows(lines []line, idx, indent, n int, keys []string, headerLine int) (value.Value, int, error) {
	var rows []value.Value
	for len(rows) < n && idx < len(lines) && lines[idx].indent == indent {
		cells := splitCells(lines[idx].text)
		if len(cells) != len(keys) {
			return value.Value{}, 0, badInput(lines[idx].lineNo, "table row has %d cells, want %d", len(cells), len(keys))
		}
		m := value.NewOrderedMap()
		for i, k := range keys {
			v, err := parseInlineValueText(cells[i])
			if err != nil {
				return value.Value{}, 0, badInput(lines[idx].lineNo, "%v", err)
			}
			m.Set(k, v)
		}
		rows = append(rows, value.MapOf(m))
		idx++
	}
	if len(rows) != n {
		return value.Value{}, 0, badInput(headerLine, "table declares %d rows, found %d", n, len(rows))
	}
	return value.SeqOf(rows), idx, nil
}

// splitCells splits a comma-separated row, respecting JSON-quoted cells so a
// quoted string containing a comma is not split.
func splitCells(s string) []string {
	var cells []string
	var cur strings.Builder
	inQuotes := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"' && (i == 0 || s[i-1] != '\\'):
			inQuotes = !inQuotes
			cur.WriteByte(c)
		case c == ',' && !inQuotes:
			cells = append(cells, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	cells = append(cells, strings.TrimSpace(cur.String()))
	return cells
}

// parseInlineValueText parses a scalar, an inline "[a, b, c]" array, or the
// literal "{}"/"[]" tokens.
func parseInlineValueText(s string) (value.Value, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "{}":
		return value.MapOf(value.NewOrderedMap()), nil
	case "[]":
		return value.SeqOf(nil), nil
	}
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		inner := s[1 : len(s)-1]
		if strings.TrimSpace(inner) == "" {
			return value.SeqOf(nil), nil
		}
		cells := splitCells(inner)
		seq := make([]value.Value, len(cells))
		for i, c := range cells {
			v, err := parseScalar(c)
			if err != nil {
				return value.Value{}, err
			}
			seq[i] = v
		}
		return value.SeqOf(seq), nil
	}
	return parseScalar(s)
}

func parseScalar(s string) (value.Value, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "null":
		return value.Null(), nil
	case "true":
		return value.Bool(true), nil
	case "false":
		return value.Bool(false), nil
	}
	if strings.HasPrefix(s, `"`) {
		var unescaped string
		if err := json.Unmarshal([]byte(s), &unescaped); err != nil {
			return value.Value{}, fmt.Errorf("invalid quoted string: %s", s)
		}
		return value.Str(unescaped), nil
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return value.Int(i), nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return value.Float(f), nil
	}
	return value.Str(s), nil
}
