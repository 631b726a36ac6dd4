package credit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"creditflow/internal/llmtool"
)

// ErrPolicyViolation: the iteration ceiling was exhausted before every tool
// had been invoked. Fatal for the run; no partial decision is synthesized.
var ErrPolicyViolation = errors.New("credit: iteration ceiling reached before deciding")

const defaultMaxIters = 8

// State names the coordinator's position in its run.
type State string

const (
	StateStarted       State = "started"
	StateToolSelection State = "tool_selection"
	StateToolExecuting State = "tool_executing"
	StateDeciding      State = "deciding"
	StateFinished      State = "finished"
	StateFailed        State = "failed"
)

const (
	DecisionApproved = "Approved"
	DecisionDenied   = "Denied"
)

// Decision is the coordinator's final structured output.
type Decision struct {
	Decision string `json:"decision"`
	Reason   string `json:"reason"`
}

// Tool is a named, describable capability the coordinator may invoke.
// Run executes the bound evaluator against its pre-bound payload.
type Tool struct {
	Name        string
	Description string
	Run         func(ctx context.Context) (bool, error)
}

// Verdict is one recorded tool outcome. A nil Outcome means the evaluator
// failed and the tool's contribution is indeterminate.
type Verdict struct {
	Tool    string `json:"tool"`
	Outcome *bool  `json:"outcome"`
	Err     string `json:"error,omitempty"`
}

// EvaluationRun is the transient aggregate of one coordinator invocation:
// recorded verdicts (append-only), the state reached, and the iteration
// count. Discarded once the caller consumes the decision.
type EvaluationRun struct {
	mu         sync.Mutex
	verdicts   []Verdict
	State      State
	Iterations int
}

func (r *EvaluationRun) record(v Verdict) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.verdicts = append(r.verdicts, v)
}

// Verdicts returns a copy of the recorded verdicts in order.
func (r *EvaluationRun) Verdicts() []Verdict {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Verdict, len(r.verdicts))
	copy(out, r.verdicts)
	return out
}

// Coordinator drives the tool-calling loop to a final structured decision.
// It offers every tool until each has been invoked at least once, then folds
// the accumulated verdicts into one deciding generation call.
type Coordinator struct {
	Client      *llmtool.Client
	Instruction string
	Tools       []Tool
	MaxIters    int

	// Logf, when set, receives per-verdict progress lines.
	Logf func(format string, args ...any)
}

func NewCoordinator(client *llmtool.Client, tools []Tool) *Coordinator {
	return &Coordinator{
		Client:      client,
		Instruction: "You are a credit coordinator. Use the provided tools to gather evidence about the credit application before making a final decision.",
		Tools:       tools,
		MaxIters:    defaultMaxIters,
	}
}

func actionSchema() llmtool.Schema {
	return llmtool.Schema{
		Name: "next_action",
		Fields: []llmtool.Field{
			{Name: "action", Type: "string", Required: true, Enum: []string{"tool", "final"}, Description: "\"tool\" to invoke a tool next, \"final\" when ready to decide."},
			{Name: "tool_name", Type: "string", Description: "Name of the tool to invoke when action is \"tool\"."},
		},
	}
}

// Run evaluates one application. Evaluator failures become indeterminate
// verdicts and the run continues; a failed generation call at the
// coordinator level aborts the run.
func (c *Coordinator) Run(ctx context.Context, app ApplicationRecord) (Decision, *EvaluationRun, error) {
	run := &EvaluationRun{State: StateStarted}
	if c.Client == nil || len(c.Tools) == 0 {
		run.State = StateFailed
		return Decision{}, run, fmt.Errorf("credit: coordinator needs a client and at least one tool")
	}
	max := c.MaxIters
	if max <= 0 {
		max = defaultMaxIters
	}

	task := fmt.Sprintf("Evaluate credit application %d for applicant %s.", app.ID, app.FullName)
	specs := make([]llmtool.ToolSpec, 0, len(c.Tools))
	for _, t := range c.Tools {
		specs = append(specs, llmtool.ToolSpec{Name: t.Name, Description: t.Description})
	}

	invoked := make(map[string]bool, len(c.Tools))
	for i := 0; i < max && len(invoked) < len(c.Tools); i++ {
		run.Iterations = i + 1
		run.State = StateToolSelection

		out, err := c.Client.Generate(ctx, llmtool.Request{
			Prompt: task + "\nPick the next tool to run. Every tool must run at least once before a final decision; prefer tools listed under pending_tools.",
			Schema: actionSchema(),
			System: c.Instruction,
			Tools:  specs,
			Input: map[string]any{
				"application":   app,
				"verdicts":      run.Verdicts(),
				"pending_tools": c.pendingNames(invoked),
			},
		})
		if err != nil {
			run.State = StateFailed
			return Decision{}, run, err
		}
		action, _ := out["action"].(string)
		if action == "final" {
			// Premature: tools remain uninvoked. Keep offering them.
			continue
		}
		name, _ := out["tool_name"].(string)
		tool := c.findTool(name)
		if tool == nil {
			continue
		}

		run.State = StateToolExecuting
		outcome, terr := tool.Run(ctx)
		v := Verdict{Tool: tool.Name}
		if terr != nil {
			v.Err = terr.Error()
			c.logf("%s verdict: indeterminate (%v)", tool.Name, terr)
		} else {
			v.Outcome = &outcome
			c.logf("%s verdict: %t", tool.Name, outcome)
		}
		run.record(v)
		invoked[tool.Name] = true
	}

	if len(invoked) < len(c.Tools) {
		run.State = StateFailed
		return Decision{}, run, fmt.Errorf("%w: %d of %d tools invoked after %d iterations",
			ErrPolicyViolation, len(invoked), len(c.Tools), run.Iterations)
	}

	run.State = StateDeciding
	out, err := c.Client.Generate(ctx, llmtool.Request{
		Prompt: task + "\nAll tools have run. Using the recorded verdicts as ground truth, produce the final decision with a short reason. A false verdict on any check means the application cannot be approved.",
		Schema: llmtool.DecisionSchema(),
		System: c.Instruction,
		Input: map[string]any{
			"application": app,
			"verdicts":    run.Verdicts(),
		},
	})
	if err != nil {
		run.State = StateFailed
		return Decision{}, run, err
	}

	dec := Decision{
		Decision: out["decision"].(string),
		Reason:   out["reason"].(string),
	}
	// Tool verdicts take precedence over the model's own narrative: an
	// explicit false verdict can never yield an approval.
	if failed := failedChecks(run.Verdicts()); len(failed) > 0 && dec.Decision == DecisionApproved {
		dec.Decision = DecisionDenied
		dec.Reason = fmt.Sprintf("Failed checks: %s.", strings.Join(failed, ", "))
	}
	run.State = StateFinished
	return dec, run, nil
}

func (c *Coordinator) findTool(name string) *Tool {
	for i := range c.Tools {
		if c.Tools[i].Name == name {
			return &c.Tools[i]
		}
	}
	return nil
}

func (c *Coordinator) pendingNames(invoked map[string]bool) []string {
	var out []string
	for _, t := range c.Tools {
		if !invoked[t.Name] {
			out = append(out, t.Name)
		}
	}
	return out
}

func (c *Coordinator) logf(format string, args ...any) {
	if c.Logf != nil {
		c.Logf(format, args...)
	}
}

func failedChecks(verdicts []Verdict) []string {
	var out []string
	for _, v := range verdicts {
		if v.Outcome != nil && !*v.Outcome {
			out = append(out, v.Tool)
		}
	}
	return out
}
