package llm

import (
    "context"
)

// Client is the minimal provider surface used by the solver.
// Any provider implementation should satisfy this. Failures are always
// *Error values classified at this boundary.
type Client interface {
    GenerateText(ctx context.Context, prompt string) (string, error)
    GenerateTextStream(ctx context.Context, prompt string, onDelta func(chunk string) error) error
}
