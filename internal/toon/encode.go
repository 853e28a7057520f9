// Package toon implements the TOON codec: an indentation-structured text
// format that roundtrips losslessly with the value model in internal/value,
// with a tabular compression scheme for uniform-shaped sequences of maps.
package toon

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/temporalcortex/tcx/internal/value"
)

const indentUnit = "  "

// softWidth is the soft line-width budget past which an inline scalar
// sequence is rendered one element per line instead. The grammar leaves the
// exact budget as an open question (spec.md §9); 60 matches the teacher's
// terminal-width-driven TUI columns (internal/tui uses comparable budgets
// for its timeline cells) and keeps inline arrays readable in a standard
// 80-column terminal once a key prefix is added.
const softWidth = 60

// Encode serializes v to TOON text.
func Encode(v value.Value) (string, error) {
	var sb strings.Builder
	switch v.Kind {
	case value.KindMap:
		if v.Map.Len() == 0 {
			return "", nil
		}
		if err := encodeMapBody(&sb, v.Map, 0); err != nil {
			return "", err
		}
	case value.KindSeq:
		if len(v.Seq) == 0 {
			return "[]", nil
		}
		if err := encodeTopLevelSeq(&sb, v.Seq); err != nil {
			return "", err
		}
	default:
		if err := writeScalarLine(&sb, "", v, 0); err != nil {
			return "", err
		}
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

func encodeTopLevelSeq(sb *strings.Builder, seq []value.Value) error {
	if header, rows, ok := tabularShape(seq); ok {
		sb.WriteString(header)
		sb.WriteString(":\n")
		for _, row := range rows {
			sb.WriteString(indentUnit)
			sb.WriteString(row)
			sb.WriteString("\n")
		}
		return nil
	}
	if allScalars(seq) {
		inline := inlineScalarSeq(seq)
		if len(inline)+2 <= softWidth {
			sb.WriteString(inline)
			sb.WriteString("\n")
			return nil
		}
	}
	for _, el := range seq {
		sb.WriteString("- ")
		if err := writeInlineValue(sb, el, 1); err != nil {
			return err
		}
		sb.WriteString("\n")
	}
	return nil
}

func encodeMapBody(sb *strings.Builder, m *value.OrderedMap, depth int) error {
	indent := strings.Repeat(indentUnit, depth)
	for _, e := range m.Entries() {
		key := e.Key
		val := e.Value
		switch val.Kind {
		case value.KindMap:
			if val.Map.Len() == 0 {
				sb.WriteString(indent)
				sb.WriteString(key)
				sb.WriteString(": {}\n")
				continue
			}
			sb.WriteString(indent)
			sb.WriteString(key)
			sb.WriteString(":\n")
			if err := encodeMapBody(sb, val.Map, depth+1); err != nil {
				return err
			}
		case value.KindSeq:
			if err := encodeSeqField(sb, key, val.Seq, depth); err != nil {
				return err
			}
		default:
			sb.WriteString(indent)
			sb.WriteString(key)
			sb.WriteString(": ")
			if err := writeScalar(sb, val); err != nil {
				return err
			}
			sb.WriteString("\n")
		}
	}
	return nil
}

func encodeSeqField(sb *strings.Builder, key string, seq []value.Value, depth int) error {
	indent := strings.Repeat(indentUnit, depth)
	if len(seq) == 0 {
		sb.WriteString(indent)
		sb.WriteString(key)
		sb.WriteString(": []\n")
		return nil
	}
	if header, rows, ok := tabularShape(seq); ok {
		sb.WriteString(indent)
		sb.WriteString(key)
		sb.WriteString(header)
		sb.WriteString(":\n")
		rowIndent := strings.Repeat(indentUnit, depth+1)
		for _, row := range rows {
			sb.WriteString(rowIndent)
			sb.WriteString(row)
			sb.WriteString("\n")
		}
		return nil
	}
	if allScalars(seq) {
		inline := inlineScalarSeq(seq)
		if len(key)+2+len(inline) <= softWidth {
			sb.WriteString(indent)
			sb.WriteString(key)
			sb.WriteString(": ")
			sb.WriteString(inline)
			sb.WriteString("\n")
			return nil
		}
	}
	sb.WriteString(indent)
	sb.WriteString(key)
	sb.WriteString(":\n")
	elemIndent := strings.Repeat(indentUnit, depth+1)
	for _, el := range seq {
		sb.WriteString(elemIndent)
		sb.WriteString("- ")
		if err := writeInlineValue(sb, el, depth+2); err != nil {
			return err
		}
		sb.WriteString("\n")
	}
	return nil
}

// writeInlineValue writes a value following a "- " list marker: scalars
// inline, maps as "key: value" continuation lines indented one level deeper.
func writeInlineValue(sb *strings.Builder, v value.Value, depth int) error {
	switch v.Kind {
	case value.KindMap:
		entries := v.Map.Entries()
		if len(entries) == 0 {
			sb.WriteString("{}")
			return nil
		}
		for i, e := range entries {
			if i > 0 {
				sb.WriteString("\n")
				sb.WriteString(strings.Repeat(indentUnit, depth))
			}
			switch e.Value.Kind {
			case value.KindMap, value.KindSeq:
				sb.WriteString(e.Key)
				sb.WriteString(":\n")
				if e.Value.Kind == value.KindMap {
					if err := encodeMapBody(sb, e.Value.Map, depth+1); err != nil {
						return err
					}
				} else {
					if err := encodeSeqField(sb, "", e.Value.Seq, depth+1); err != nil {
						return err
					}
				}
			default:
				sb.WriteString(e.Key)
				sb.WriteString(": ")
				if err := writeScalar(sb, e.Value); err != nil {
					return err
				}
			}
		}
	case value.KindSeq:
		if allScalars(v.Seq) {
			sb.WriteString(inlineScalarSeq(v.Seq))
			return nil
		}
		for i, el := range v.Seq {
			if i > 0 {
				sb.WriteString("\n")
				sb.WriteString(strings.Repeat(indentUnit, depth))
			}
			sb.WriteString("- ")
			if err := writeInlineValue(sb, el, depth+1); err != nil {
				return err
			}
		}
	default:
		return writeScalar(sb, v)
	}
	return nil
}

func writeScalarLine(sb *strings.Builder, key string, v value.Value, depth int) error {
	if key != "" {
		sb.WriteString(strings.Repeat(indentUnit, depth))
		sb.WriteString(key)
		sb.WriteString(": ")
	}
	if err := writeScalar(sb, v); err != nil {
		return err
	}
	sb.WriteString("\n")
	return nil
}

func writeScalar(sb *strings.Builder, v value.Value) error {
	s, err := ScalarString(v)
	if err != nil {
		return err
	}
	sb.WriteString(s)
	return nil
}

// ScalarString renders a single scalar per the TOON grammar: null/true/false,
// decimal integers, shortest-roundtrip floats, and strings that are unquoted
// unless they contain an ambiguity character, in which case they are quoted
// with JSON-style escaping.
func ScalarString(v value.Value) (string, error) {
	switch v.Kind {
	case value.KindNull:
		return "null", nil
	case value.KindBool:
		if v.Bool {
			return "true", nil
		}
		return "false", nil
	case value.KindInt:
		return strconv.FormatInt(v.Int, 10), nil
	case value.KindFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64), nil
	case value.KindString:
		return quoteStringIfNeeded(v.String), nil
	default:
		return "", fmt.Errorf("toon: %s is not a scalar", v.Kind)
	}
}

// needsQuoting reports whether s must be JSON-quoted: it starts with ':',
// has leading/trailing whitespace, contains a control character, contains a
// comma (the tabular-row and inline-array delimiter), starts with '[' or '"',
// or would be ambiguous with another literal (null, true, false, {}, a number).
func needsQuoting(s string) bool {
	if s == "" {
		return true
	}
	if strings.HasPrefix(s, ":") {
		return true
	}
	if strings.Contains(s, ",") {
		return true
	}
	if s[0] == ' ' || s[len(s)-1] == ' ' || s[0] == '\t' || s[len(s)-1] == '\t' {
		return true
	}
	for _, r := range s {
		if r < 0x20 {
			return true
		}
	}
	switch s {
	case "null", "true", "false", "{}":
		return true
	}
	if strings.HasPrefix(s, "[") || strings.HasPrefix(s, `"`) {
		return true
	}
	if looksNumeric(s) {
		return true
	}
	return false
}

func looksNumeric(s string) bool {
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return true
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return true
	}
	return false
}

func quoteStringIfNeeded(s string) string {
	if !needsQuoting(s) {
		return s
	}
	b, _ := json.Marshal(s)
	return string(b)
}

func allScalars(seq []value.Value) bool {
	for _, v := range seq {
		if v.Kind == value.KindSeq || v.Kind == value.KindMap {
			return false
		}
	}
	return true
}

func inlineScalarSeq(seq []value.Value) string {
	parts := make([]string, len(seq))
	for i, v := range seq {
		s, _ := ScalarString(v)
		parts[i] = s
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// tabularShape reports whether seq qualifies for uniform-shape compression:
// at least 2 Maps, identical key sets in the same order, only scalar values.
// It returns the "[N]{k1,k2,...}" header suffix and one comma-separated row
// per element.
func tabularShape(seq []value.Value) (header string, rows []string, ok bool) {
	if len(seq) < 2 {
		return "", nil, false
	}
	for _, v := range seq {
		if v.Kind != value.KindMap {
			return "", nil, false
		}
	}
	first := seq[0].Map.Keys()
	for _, v := range seq[1:] {
		keys := v.Map.Keys()
		if len(keys) != len(first) {
			return "", nil, false
		}
		for i := range keys {
			if keys[i] != first[i] {
				return "", nil, false
			}
		}
	}
	for _, v := range seq {
		for _, e := range v.Map.Entries() {
			if e.Value.Kind == value.KindSeq || e.Value.Kind == value.KindMap {
				return "", nil, false
			}
		}
	}

	rows = make([]string, len(seq))
	for i, v := range seq {
		cells := make([]string, len(first))
		for j, e := range v.Map.Entries() {
			cells[j], _ = ScalarString(e.Value)
		}
		rows[i] = strings.Join(cells, ",")
	}
	header = fmt.Sprintf("[%d]{%s}", len(seq), strings.Join(first, ","))
	return header, rows, true
}
