package requests

import (
	"context"
	"fmt"
	"log"

	"creditflow/internal/llmtool"
	"creditflow/internal/store"
)

// DefaultInstruction is the system instruction for the two-field pipeline:
// summarize the request in English, then either affirm or politely refuse.
const DefaultInstruction = `You process user requests.
First, summarize the request in concise American English.
Second, decide whether it can be fulfilled. Refuse anything illegal, dangerous, hateful, or otherwise malicious: reply with a polite refusal in the requester's language. For acceptable requests, reply with a short affirmation in the requester's language.`

// Queue is the slice of the request store the processor needs.
type Queue interface {
	Unprocessed(ctx context.Context) ([]store.Request, error)
	Complete(ctx context.Context, id int, summary, response string) error
}

// Processor drains the queue: one structured generation per pending row,
// writing back the (summary, response_text) pair.
type Processor struct {
	Client      *llmtool.Client
	Queue       Queue
	Instruction string

	// Logf defaults to log.Printf.
	Logf func(format string, args ...any)
}

func NewProcessor(client *llmtool.Client, queue Queue) *Processor {
	return &Processor{Client: client, Queue: queue, Instruction: DefaultInstruction}
}

// ProcessPending handles every unprocessed row once. A failed generation is
// logged and skipped; it never blocks the remaining rows, and nothing is
// written back for it. Returns the number of rows completed.
func (p *Processor) ProcessPending(ctx context.Context) (int, error) {
	pending, err := p.Queue.Unprocessed(ctx)
	if err != nil {
		return 0, fmt.Errorf("requests: fetch unprocessed: %w", err)
	}
	if len(pending) == 0 {
		p.logf("no new requests to process")
		return 0, nil
	}
	p.logf("found %d new requests", len(pending))

	done := 0
	for _, req := range pending {
		out, err := p.Client.Generate(ctx, llmtool.Request{
			Prompt: req.RequestBody,
			Schema: llmtool.TwoFieldResponseSchema(),
			System: p.instruction(),
		})
		if err != nil {
			p.logf("request %d: generation failed: %v", req.ID, err)
			continue
		}
		summary := out["summary"].(string)
		response := out["response_text"].(string)
		if err := p.Queue.Complete(ctx, req.ID, summary, response); err != nil {
			p.logf("request %d: store update failed: %v", req.ID, err)
			continue
		}
		p.logf("request %d processed", req.ID)
		done++
	}
	return done, nil
}

func (p *Processor) instruction() string {
	if p.Instruction != "" {
		return p.Instruction
	}
	return DefaultInstruction
}

func (p *Processor) logf(format string, args ...any) {
	if p.Logf != nil {
		p.Logf(format, args...)
		return
	}
	log.Printf(format, args...)
}
