package requests

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creditflow/internal/llmtool"
	"creditflow/internal/store"
)

// memQueue is an in-memory stand-in for the requests table.
type memQueue struct {
	rows map[int]*store.Request
}

func newMemQueue(bodies ...string) *memQueue {
	q := &memQueue{rows: make(map[int]*store.Request)}
	for i, b := range bodies {
		q.rows[i+1] = &store.Request{
			ID:          i + 1,
			RequestBody: b,
			CreatedAt:   time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC).Add(time.Duration(i) * time.Minute),
		}
	}
	return q
}

func (q *memQueue) Unprocessed(ctx context.Context) ([]store.Request, error) {
	var out []store.Request
	for _, r := range q.rows {
		if r.Response == nil {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (q *memQueue) Complete(ctx context.Context, id int, summary, response string) error {
	r, ok := q.rows[id]
	if !ok || r.Response != nil {
		return nil
	}
	now := time.Now()
	r.Summary = &summary
	r.Response = &response
	r.ProcessedAt = &now
	return nil
}

type twoFieldCap struct {
	failOn string // request body that triggers a transport failure
}

func (c *twoFieldCap) Name() string { return "two-field-stub" }
func (c *twoFieldCap) Close() error { return nil }
func (c *twoFieldCap) GenerateJSON(ctx context.Context, system, prompt string, input any) (json.RawMessage, error) {
	if c.failOn != "" && strings.Contains(prompt, c.failOn) {
		return nil, errors.New("provider unavailable")
	}
	return json.RawMessage(`{"summary":"a math question","response_text":"Okay, I can help with that."}`), nil
}

func TestProcessPending_RoundTrip(t *testing.T) {
	q := newMemQueue("What's 2+2?")
	created := q.rows[1].CreatedAt
	p := NewProcessor(llmtool.NewClient(&twoFieldCap{}), q)

	done, err := p.ProcessPending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, done)

	row := q.rows[1]
	require.NotNil(t, row.Summary)
	require.NotNil(t, row.Response)
	require.NotNil(t, row.ProcessedAt)
	assert.NotEmpty(t, *row.Summary)
	assert.NotEmpty(t, *row.Response)
	assert.Equal(t, created, row.CreatedAt, "created_at must be untouched")
}

func TestProcessPending_FailureSkipsRow(t *testing.T) {
	q := newMemQueue("please fail me", "What's 2+2?")
	p := NewProcessor(llmtool.NewClient(&twoFieldCap{failOn: "please fail me"}), q)
	p.Logf = func(string, ...any) {}

	done, err := p.ProcessPending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, done)
	assert.Nil(t, q.rows[1].Response, "failed row stays unprocessed, no default substituted")
	assert.NotNil(t, q.rows[2].Response)
}

func TestProcessPending_EmptyQueue(t *testing.T) {
	p := NewProcessor(llmtool.NewClient(&twoFieldCap{}), newMemQueue())
	p.Logf = func(string, ...any) {}
	done, err := p.ProcessPending(context.Background())
	require.NoError(t, err)
	assert.Zero(t, done)
}
