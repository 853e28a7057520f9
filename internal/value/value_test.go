package value

import "testing"

func TestOrderedMapPreservesInsertionOrder(t *testing.T) {
	m := NewOrderedMap()
	m.Set("z", Int(1))
	m.Set("a", Int(2))
	m.Set("m", Int(3))

	got := m.Keys()
	want := []string{"z", "a", "m"}
	if len(got) != len(want) {
		t.Fatalf("keys = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("keys = %v, want %v", got, want)
		}
	}
}

func TestOrderedMapReplaceKeepsPosition(t *testing.T) {
	m := NewOrderedMap()
	m.Set("a", Int(1))
	m.Set("b", Int(2))
	m.Set("a", Int(99))

	got := m.Keys()
	if got[0] != "a" || got[1] != "b" {
		t.Fatalf("keys = %v, want [a b]", got)
	}
	v, _ := m.Get("a")
	if v.Int != 99 {
		t.Fatalf("a = %d, want 99", v.Int)
	}
}

func TestOrderedMapDeletePreservesSiblingOrder(t *testing.T) {
	m := NewOrderedMap()
	m.Set("a", Int(1))
	m.Set("b", Int(2))
	m.Set("c", Int(3))
	m.Delete("b")

	got := m.Keys()
	if len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Fatalf("keys after delete = %v, want [a c]", got)
	}
}

func TestFromJSONPreservesIntVsFloat(t *testing.T) {
	v, err := FromJSON(`{"n":42,"f":3.14}`)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	n, _ := v.Map.Get("n")
	if n.Kind != KindInt || n.Int != 42 {
		t.Fatalf("n = %#v, want Int(42)", n)
	}
	f, _ := v.Map.Get("f")
	if f.Kind != KindFloat || f.Float != 3.14 {
		t.Fatalf("f = %#v, want Float(3.14)", f)
	}
}

func TestFromJSONPreservesObjectOrder(t *testing.T) {
	v, err := FromJSON(`{"z":1,"a":2,"m":3}`)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	got := v.Map.Keys()
	want := []string{"z", "a", "m"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("keys = %v, want %v", got, want)
		}
	}
}

func TestFromJSONRejectsMalformed(t *testing.T) {
	if _, err := FromJSON("not json"); err == nil {
		t.Fatalf("expected error for malformed json")
	}
	if _, err := FromJSON(`{"a":1} trailing`); err == nil {
		t.Fatalf("expected error for trailing data")
	}
}

func TestRoundtripJSON(t *testing.T) {
	orig := `{"s":"hello","n":42,"f":3.14,"b":true,"nil":null,"arr":[1,2,3]}`
	v, err := FromJSON(orig)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	out, err := ToJSON(v)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	v2, err := FromJSON(out)
	if err != nil {
		t.Fatalf("FromJSON(out): %v", err)
	}
	if !v.Equal(v2) {
		t.Fatalf("roundtrip mismatch: %#v vs %#v", v, v2)
	}
}

func TestEqualDistinguishesIntAndFloat(t *testing.T) {
	if Int(1).Equal(Float(1.0)) {
		t.Fatalf("Int(1) should not equal Float(1.0)")
	}
}
