package llmtool

import "testing"

func synthSchema() Schema {
	return Schema{
		Name: "synth",
		Fields: []Field{
			{Name: "title", Type: "string", Required: true},
			{Name: "count", Type: "int", Required: true},
			{Name: "ratio", Type: "float64"},
			{Name: "ok", Type: "bool", Required: true},
			{Name: "state", Type: "string", Enum: []string{"open", "closed"}},
		},
	}
}

func TestValidate_OK(t *testing.T) {
	v := map[string]any{
		"title": "x",
		"count": float64(3),
		"ok":    true,
		"state": "open",
		"extra": "ignored",
	}
	if err := synthSchema().Validate(v); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidate_MissingRequired(t *testing.T) {
	v := map[string]any{"title": "x", "count": float64(3)}
	if err := synthSchema().Validate(v); err == nil {
		t.Fatal("expected error for missing required field")
	}
}

func TestValidate_TypeMismatch(t *testing.T) {
	cases := []map[string]any{
		{"title": 7, "count": float64(1), "ok": true},
		{"title": "x", "count": "three", "ok": true},
		{"title": "x", "count": 1.5, "ok": true},
		{"title": "x", "count": float64(1), "ok": "yes"},
	}
	s := synthSchema()
	for i, v := range cases {
		if err := s.Validate(v); err == nil {
			t.Fatalf("case %d: expected type error", i)
		}
	}
}

func TestValidate_Enum(t *testing.T) {
	s := synthSchema()
	v := map[string]any{"title": "x", "count": float64(1), "ok": false, "state": "pending"}
	if err := s.Validate(v); err == nil {
		t.Fatal("expected enum violation")
	}
	v["state"] = "closed"
	if err := s.Validate(v); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidate_OptionalAbsent(t *testing.T) {
	v := map[string]any{"title": "x", "count": float64(0), "ok": false}
	if err := synthSchema().Validate(v); err != nil {
		t.Fatalf("optional fields must be allowed to be absent: %v", err)
	}
}

func TestDecisionSchema_EnumMembers(t *testing.T) {
	s := DecisionSchema()
	ok := map[string]any{"decision": "Approved", "reason": "fine"}
	if err := s.Validate(ok); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	bad := map[string]any{"decision": "Maybe", "reason": "hmm"}
	if err := s.Validate(bad); err == nil {
		t.Fatal("expected enum violation for decision")
	}
}
