package llm

import "context"

// Client dispatches an assembled prompt to a strategic-query backend and
// returns its raw text response.
type Client interface {
	Query(ctx context.Context, prompt string) (string, error)
}

// ClientFunc adapts a plain function to the Client interface.
type ClientFunc func(ctx context.Context, prompt string) (string, error)

// Query calls fn.
func (fn ClientFunc) Query(ctx context.Context, prompt string) (string, error) {
	return fn(ctx, prompt)
}
