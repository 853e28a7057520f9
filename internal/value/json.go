package value

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// FromJSON parses JSON text into a Value tree. It rejects malformed input
// with an error naming the offending token; numeric literals without a
// fractional part or exponent are kept as Int64 so the invariant
// decode(encode(v)) never coerces 1 into 1.0 holds, and object key order is
// preserved exactly as encountered (encoding/json's map[string]interface{}
// does not preserve order, so parsing walks json.Decoder tokens directly).
func FromJSON(text string) (Value, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return Value{}, fmt.Errorf("bad json: %w", err)
	}
	if dec.More() {
		return Value{}, fmt.Errorf("bad json: trailing data after top-level value")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	return decodeFromToken(dec, tok)
}

func decodeFromToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return numberToValue(t)
	case string:
		return Str(t), nil
	case json.Delim:
		switch t {
		case '[':
			return decodeSeq(dec)
		case '{':
			return decodeMap(dec)
		default:
			return Value{}, fmt.Errorf("unexpected delimiter %q", t)
		}
	default:
		return Value{}, fmt.Errorf("unsupported token %T", tok)
	}
}

func decodeSeq(dec *json.Decoder) (Value, error) {
	var seq []Value
	for dec.More() {
		v, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}
		seq = append(seq, v)
	}
	// consume closing ']'
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return SeqOf(seq), nil
}

func decodeMap(dec *json.Decoder) (Value, error) {
	m := NewOrderedMap()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return Value{}, fmt.Errorf("object key is not a string: %v", keyTok)
		}
		v, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}
		m.Set(key, v)
	}
	// consume closing '}'
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return MapOf(m), nil
}

func numberToValue(n json.Number) (Value, error) {
	s := n.String()
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Int(i), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Value{}, fmt.Errorf("invalid number %q", s)
	}
	return Float(f), nil
}

// ToJSON serializes a Value tree to compact JSON text.
func ToJSON(v Value) (string, error) {
	var sb strings.Builder
	if err := writeJSON(&sb, v); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func writeJSON(w io.StringWriter, v Value) error {
	switch v.Kind {
	case KindNull:
		_, _ = w.WriteString("null")
	case KindBool:
		if v.Bool {
			_, _ = w.WriteString("true")
		} else {
			_, _ = w.WriteString("false")
		}
	case KindInt:
		_, _ = w.WriteString(strconv.FormatInt(v.Int, 10))
	case KindFloat:
		_, _ = w.WriteString(formatFloat(v.Float))
	case KindString:
		b, err := json.Marshal(v.String)
		if err != nil {
			return err
		}
		_, _ = w.WriteString(string(b))
	case KindSeq:
		_, _ = w.WriteString("[")
		for i, e := range v.Seq {
			if i > 0 {
				_, _ = w.WriteString(",")
			}
			if err := writeJSON(w, e); err != nil {
				return err
			}
		}
		_, _ = w.WriteString("]")
	case KindMap:
		_, _ = w.WriteString("{")
		for i, e := range v.Map.Entries() {
			if i > 0 {
				_, _ = w.WriteString(",")
			}
			kb, err := json.Marshal(e.Key)
			if err != nil {
				return err
			}
			_, _ = w.WriteString(string(kb))
			_, _ = w.WriteString(":")
			if err := writeJSON(w, e.Value); err != nil {
				return err
			}
		}
		_, _ = w.WriteString("}")
	default:
		return fmt.Errorf("internal: unknown value kind %v", v.Kind)
	}
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
