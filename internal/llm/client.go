// Package llm is the narrow boundary to the generative model: one rendered
// prompt in, one text response out. No streaming, no tool calls.
package llm

import (
	"context"
	"errors"
)

// ErrEmptyResponse is returned when the model answers with no text.
var ErrEmptyResponse = errors.New("llm: empty response from model")

// Request is a single-turn generation request.
type Request struct {
	// System carries the persona and output contract.
	System string
	// Prompt is the user turn.
	Prompt string
}

// Client generates text for a request. Implementations are stateless per
// call and safe for concurrent use.
type Client interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// ClientFunc adapts a function to Client.
type ClientFunc func(ctx context.Context, req Request) (string, error)

// Generate calls f.
func (f ClientFunc) Generate(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}
