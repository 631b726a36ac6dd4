package llmtool

import (
	"fmt"
	"math"
	"strings"
)

// Field describes a single output field in a schema.
type Field struct {
	Name        string
	Type        string // "string", "bool", "int", "float64"
	Required    bool
	Description string
	Enum        []string // non-empty restricts a string field to these values
}

// Schema is a named set of typed fields a structured value must satisfy.
// Validation is a pure function over this data; no typing framework involved.
type Schema struct {
	Name   string
	Fields []Field
}

// Validate checks v field-by-field: required fields must be present and of
// matching primitive type, enum fields must equal a declared member.
// Unknown extra fields are ignored.
func (s Schema) Validate(v map[string]any) error {
	if v == nil {
		return fmt.Errorf("schema %s: value is nil", s.Name)
	}
	for _, f := range s.Fields {
		val, ok := v[f.Name]
		if !ok || val == nil {
			if f.Required {
				return fmt.Errorf("schema %s: missing required field %q", s.Name, f.Name)
			}
			continue
		}
		if err := checkType(f, val); err != nil {
			return fmt.Errorf("schema %s: %w", s.Name, err)
		}
	}
	return nil
}

func checkType(f Field, val any) error {
	switch f.Type {
	case "string":
		s, ok := val.(string)
		if !ok {
			return fmt.Errorf("field %q: expected string, got %T", f.Name, val)
		}
		if len(f.Enum) > 0 {
			for _, e := range f.Enum {
				if s == e {
					return nil
				}
			}
			return fmt.Errorf("field %q: %q is not one of %s", f.Name, s, strings.Join(f.Enum, "|"))
		}
	case "bool":
		if _, ok := val.(bool); !ok {
			return fmt.Errorf("field %q: expected bool, got %T", f.Name, val)
		}
	case "int":
		// encoding/json decodes all numbers to float64.
		n, ok := val.(float64)
		if !ok {
			return fmt.Errorf("field %q: expected int, got %T", f.Name, val)
		}
		if n != math.Trunc(n) {
			return fmt.Errorf("field %q: expected int, got %v", f.Name, n)
		}
	case "float64":
		if _, ok := val.(float64); !ok {
			return fmt.Errorf("field %q: expected number, got %T", f.Name, val)
		}
	default:
		return fmt.Errorf("field %q: unsupported type %q", f.Name, f.Type)
	}
	return nil
}

// TwoFieldResponseSchema is the queue pipeline's output contract.
func TwoFieldResponseSchema() Schema {
	return Schema{
		Name: "agent_response",
		Fields: []Field{
			{Name: "summary", Type: "string", Required: true, Description: "Concise English summary of the request."},
			{Name: "response_text", Type: "string", Required: true, Description: "Reply to the requester, in their language."},
		},
	}
}

// DecisionSchema is the coordinator's final output contract.
func DecisionSchema() Schema {
	return Schema{
		Name: "decision",
		Fields: []Field{
			{Name: "decision", Type: "string", Required: true, Enum: []string{"Approved", "Denied"}, Description: "Final verdict on the application."},
			{Name: "reason", Type: "string", Required: true, Description: "Short rationale for the verdict."},
		},
	}
}

// BoolVerdictSchema is the single-boolean contract every evaluator binds to.
func BoolVerdictSchema() Schema {
	return Schema{
		Name: "bool_verdict",
		Fields: []Field{
			{Name: "verdict", Type: "bool", Required: true, Description: "true if the check passes, false otherwise."},
		},
	}
}
