package llmtool

import (
	"context"
	"fmt"

	"creditflow/internal/llm"
	"creditflow/internal/util/jsonutil"
)

// Kind classifies a generation failure.
type Kind int

const (
	// KindTransport: the capability could not be reached or rejected the
	// request. No raw output is available.
	KindTransport Kind = iota
	// KindValidation: the capability answered, but the output failed schema
	// validation even after one fallback-extraction attempt. Raw output is
	// attached for forensics.
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Failure is a typed generation failure. A generation either yields a
// validated value or a *Failure, never both.
type Failure struct {
	Kind Kind
	Raw  string // raw model output, validation failures only
	Err  error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("generation failed (%s): %v", f.Kind, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

// Request carries one structured generation: the task text, the output
// schema, an optional system instruction, and any tools the model may pick.
type Request struct {
	Prompt string
	Schema Schema
	System string
	Tools  []ToolSpec
	Input  any // optional payload appended to the prompt as JSON
}

// Client maps free-form text plus a schema to a validated structured value.
type Client struct {
	Cap llm.Capability
}

func NewClient(cap llm.Capability) *Client {
	return &Client{Cap: cap}
}

// Generate sends the request to the capability and validates the response
// against req.Schema. Validation failures get exactly one fallback-extraction
// attempt over the raw text before being reported. The success value and the
// error are mutually exclusive; no defaults are ever substituted.
func (c *Client) Generate(ctx context.Context, req Request) (map[string]any, error) {
	if c == nil || c.Cap == nil {
		return nil, &Failure{Kind: KindTransport, Err: fmt.Errorf("llmtool: no capability configured")}
	}
	prompt := buildPrompt(req)
	raw, err := c.Cap.GenerateJSON(ctx, req.System, prompt, req.Input)
	if err != nil {
		return nil, &Failure{Kind: KindTransport, Err: err}
	}

	var out map[string]any
	if uerr := jsonutil.UnmarshalFlex(raw, &out); uerr == nil {
		if verr := req.Schema.Validate(out); verr == nil {
			return out, nil
		} else if rec, ok := ExtractJSON(string(raw), req.Schema); ok {
			return rec, nil
		} else {
			return nil, &Failure{Kind: KindValidation, Raw: string(raw), Err: verr}
		}
	}
	// Not even parseable as an object; scan for an embedded fragment.
	if rec, ok := ExtractJSON(string(raw), req.Schema); ok {
		return rec, nil
	}
	return nil, &Failure{Kind: KindValidation, Raw: string(raw), Err: fmt.Errorf("llmtool: response is not a JSON object")}
}
