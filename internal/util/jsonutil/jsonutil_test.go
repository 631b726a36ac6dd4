package jsonutil

import "testing"

func TestMarshalNoEscape(t *testing.T) {
	out, err := MarshalNoEscape(map[string]string{"k": "a < b && c > d"})
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `{"k":"a < b && c > d"}` {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestUnmarshalFlex_Fenced(t *testing.T) {
	raw := []byte("```json\n{\"verdict\": true}\n```")
	var v struct {
		Verdict bool `json:"verdict"`
	}
	if err := UnmarshalFlex(raw, &v); err != nil {
		t.Fatalf("UnmarshalFlex: %v", err)
	}
	if !v.Verdict {
		t.Fatal("verdict not parsed")
	}
}

func TestUnmarshalFlex_Plain(t *testing.T) {
	var m map[string]any
	if err := UnmarshalFlex([]byte(`{"a":1}`), &m); err != nil {
		t.Fatalf("UnmarshalFlex: %v", err)
	}
	if m["a"] != float64(1) {
		t.Fatalf("unexpected map: %v", m)
	}
}
