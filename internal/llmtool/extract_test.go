package llmtool

import "testing"

func TestExtractJSON_ProseWrapped(t *testing.T) {
	raw := "Sure! Here is the verdict you asked for:\n{\"verdict\": true}\nHope that helps."
	v, ok := ExtractJSON(raw, BoolVerdictSchema())
	if !ok {
		t.Fatal("expected extraction to succeed")
	}
	if v["verdict"] != true {
		t.Fatalf("unexpected value: %v", v)
	}
}

func TestExtractJSON_SkipsNonConforming(t *testing.T) {
	raw := `{"note":"not a verdict"} and then {"verdict": false}`
	v, ok := ExtractJSON(raw, BoolVerdictSchema())
	if !ok {
		t.Fatal("expected second fragment to qualify")
	}
	if v["verdict"] != false {
		t.Fatalf("unexpected value: %v", v)
	}
}

func TestExtractJSON_NestedFragment(t *testing.T) {
	raw := `{"result": {"verdict": true}, "comment": "wrapped"}`
	v, ok := ExtractJSON(raw, BoolVerdictSchema())
	if !ok {
		t.Fatal("expected nested fragment to qualify")
	}
	if v["verdict"] != true {
		t.Fatalf("unexpected value: %v", v)
	}
}

func TestExtractJSON_UnbalancedOuter(t *testing.T) {
	raw := `{"a": {"verdict": true}`
	v, ok := ExtractJSON(raw, BoolVerdictSchema())
	if !ok {
		t.Fatal("expected inner balanced fragment to qualify")
	}
	if v["verdict"] != true {
		t.Fatalf("unexpected value: %v", v)
	}
}

func TestExtractJSON_BracesInsideStrings(t *testing.T) {
	raw := `{"summary": "curly {not a brace}", "response_text": "ok \"quoted\""}`
	_, ok := ExtractJSON(raw, TwoFieldResponseSchema())
	if !ok {
		t.Fatal("string-literal braces must not break matching")
	}
}

func TestExtractJSON_NoFragment(t *testing.T) {
	for _, raw := range []string{"", "no json here", "{{{", `{"broken": `, "}{"} {
		if _, ok := ExtractJSON(raw, BoolVerdictSchema()); ok {
			t.Fatalf("expected none for %q", raw)
		}
	}
}
