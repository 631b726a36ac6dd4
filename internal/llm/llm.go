package llm

import (
	"context"
	"encoding/json"
	"errors"
)

var ErrEmptyResponse = errors.New("llm: empty response from provider")

// Capability is the opaque text-generation service the pipeline talks to.
// Implementations send a system instruction (possibly by concatenation when
// the provider has no dedicated system channel), a prompt, and an input
// payload, and return the provider's raw JSON text.
type Capability interface {
	Name() string
	GenerateJSON(ctx context.Context, system, prompt string, input any) (json.RawMessage, error)
	Close() error
}

// PermanentError indicates an error that will not resolve with retries.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return e.Err.Error() }
func (e *PermanentError) Unwrap() error { return e.Err }

func NewPermanentError(err error) error {
	return &PermanentError{Err: err}
}
