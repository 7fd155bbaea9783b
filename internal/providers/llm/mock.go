package llm

import (
    "context"
)

// MockClient returns a canned answer. Used in tests and local development
// with LLM_PROVIDER=mock; never selected implicitly.
type MockClient struct {
    Answer string
}

func (m *MockClient) answer() string {
    if m.Answer != "" { return m.Answer }
    return "The answer is $x^2$."
}

func (m *MockClient) GenerateText(ctx context.Context, prompt string) (string, error) {
    return m.answer(), nil
}

func (m *MockClient) GenerateTextStream(ctx context.Context, prompt string, onDelta func(chunk string) error) error {
    return onDelta(m.answer())
}
