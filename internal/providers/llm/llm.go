package llm

import "context"

type Provider interface {
	// Generate performs one blocking text-generation call and returns the
	// raw model text. The system prompt may be empty. Errors are transport
	// or model failures; content quality is the caller's concern.
	Generate(ctx context.Context, system, user string, temperature float32) (string, error)
	Close() error
}
