package credit

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creditflow/internal/llmtool"
)

// echoCap returns a fixed verdict and records every payload it was given.
type echoCap struct {
	verdict  bool
	payloads []string
}

func (e *echoCap) Name() string { return "echo" }
func (e *echoCap) Close() error { return nil }
func (e *echoCap) GenerateJSON(ctx context.Context, system, prompt string, input any) (json.RawMessage, error) {
	e.payloads = append(e.payloads, prompt)
	if e.verdict {
		return json.RawMessage(`{"verdict":true}`), nil
	}
	return json.RawMessage(`{"verdict":false}`), nil
}

func TestEvaluator_Idempotent(t *testing.T) {
	cap := &echoCap{verdict: true}
	ev := NewEvaluator(llmtool.NewClient(cap), "financial_evaluator", DefaultRubrics().FinancialCapacity)

	payload := janeDoe().PayloadJSON()
	first, err := ev.Evaluate(context.Background(), payload)
	require.NoError(t, err)
	second, err := ev.Evaluate(context.Background(), payload)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	// Identical input produced the identical outbound prompt both times.
	require.Len(t, cap.payloads, 2)
	assert.Equal(t, cap.payloads[0], cap.payloads[1])
}

func TestApplicationTools_BackgroundCheckSeesNameOnly(t *testing.T) {
	cap := &echoCap{verdict: true}
	client := llmtool.NewClient(cap)
	app := janeDoe()
	tools := ApplicationTools(client, Rubrics{}, app)

	var background *Tool
	for i := range tools {
		if tools[i].Name == "check_background" {
			background = &tools[i]
		}
	}
	require.NotNil(t, background)
	_, err := background.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, cap.payloads, 1)
	assert.Contains(t, cap.payloads[0], app.FullName)
	assert.NotContains(t, cap.payloads[0], app.NationalID, "background check must not see the sensitive identifier")
}

func TestApplicationTools_RubricOverride(t *testing.T) {
	cap := &echoCap{verdict: true}
	client := llmtool.NewClient(cap)
	tools := ApplicationTools(client, Rubrics{BackgroundCheck: "Always pass."}, janeDoe())
	assert.Len(t, tools, 3)
}
