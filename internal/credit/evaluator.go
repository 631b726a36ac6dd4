package credit

import (
	"context"
	"fmt"

	"creditflow/internal/llmtool"
)

// Evaluator is a single-purpose agent: one fixed rubric, the boolean verdict
// schema, nothing else. Stateless across invocations.
type Evaluator struct {
	Name        string
	Instruction string
	Client      *llmtool.Client
}

func NewEvaluator(client *llmtool.Client, name, instruction string) *Evaluator {
	return &Evaluator{Name: name, Instruction: instruction, Client: client}
}

// Evaluate runs the rubric over payload and returns the single boolean
// verdict. Failures come back as-is; the caller decides what an
// indeterminate verdict means.
func (e *Evaluator) Evaluate(ctx context.Context, payload string) (bool, error) {
	out, err := e.Client.Generate(ctx, llmtool.Request{
		Prompt: payload,
		Schema: llmtool.BoolVerdictSchema(),
		System: e.Instruction,
	})
	if err != nil {
		return false, fmt.Errorf("evaluator %s: %w", e.Name, err)
	}
	v, ok := out["verdict"].(bool)
	if !ok {
		// Schema validation guarantees this; guard anyway.
		return false, fmt.Errorf("evaluator %s: verdict missing from validated output", e.Name)
	}
	return v, nil
}

// Rubrics are the system instructions for the three evaluator roles.
// Override individual entries via config; zero values fall back to defaults.
type Rubrics struct {
	DataCompleteness  string `yaml:"data_completeness"`
	FinancialCapacity string `yaml:"financial_capacity"`
	BackgroundCheck   string `yaml:"background_check"`
}

func DefaultRubrics() Rubrics {
	return Rubrics{
		DataCompleteness:  "Evaluate whether the applicant's data is complete: every field present and plausible. Answer with the boolean verdict only.",
		FinancialCapacity: "Assess the applicant's financial capacity. If income is at least twice the expenses and the credit score is above 650, the verdict is true. Otherwise false.",
		BackgroundCheck:   "Perform a background check on the given applicant name. Everyone passes unless the name suggests fraud. Verdict true for a pass, false otherwise.",
	}
}

func (r Rubrics) withDefaults() Rubrics {
	d := DefaultRubrics()
	if r.DataCompleteness == "" {
		r.DataCompleteness = d.DataCompleteness
	}
	if r.FinancialCapacity == "" {
		r.FinancialCapacity = d.FinancialCapacity
	}
	if r.BackgroundCheck == "" {
		r.BackgroundCheck = d.BackgroundCheck
	}
	return r
}

// ApplicationTools binds the three evaluator roles to one application record
// and exposes them as coordinator tools. The background check only sees the
// applicant's name.
func ApplicationTools(client *llmtool.Client, rubrics Rubrics, app ApplicationRecord) []Tool {
	rubrics = rubrics.withDefaults()
	dataValidator := NewEvaluator(client, "data_validator", rubrics.DataCompleteness)
	financialEvaluator := NewEvaluator(client, "financial_evaluator", rubrics.FinancialCapacity)
	backgroundChecker := NewEvaluator(client, "background_checker", rubrics.BackgroundCheck)

	return []Tool{
		{
			Name:        "validate_data",
			Description: "Check if the applicant's data is complete.",
			Run: func(ctx context.Context) (bool, error) {
				return dataValidator.Evaluate(ctx, app.PayloadJSON())
			},
		},
		{
			Name:        "evaluate_financials",
			Description: "Evaluate the applicant's financial capacity.",
			Run: func(ctx context.Context) (bool, error) {
				return financialEvaluator.Evaluate(ctx, app.PayloadJSON())
			},
		},
		{
			Name:        "check_background",
			Description: "Perform a background check on the applicant.",
			Run: func(ctx context.Context) (bool, error) {
				return backgroundChecker.Evaluate(ctx, app.FullName)
			},
		},
	}
}
