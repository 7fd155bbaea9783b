package solver

import (
    "context"
    "strings"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/example/mathsolve/internal/models"
    "github.com/example/mathsolve/internal/providers/llm"
)

type fakeAttempt struct {
    deltas []string
    err    error
}

// fakeClient plays one scripted attempt per GenerateTextStream call.
type fakeClient struct {
    attempts []fakeAttempt
    calls    int
}

func (f *fakeClient) GenerateTextStream(ctx context.Context, prompt string, onDelta func(string) error) error {
    if f.calls >= len(f.attempts) { panic("fakeClient: unexpected extra attempt") }
    a := f.attempts[f.calls]
    f.calls++
    for _, d := range a.deltas {
        if err := onDelta(d); err != nil { return err }
    }
    return a.err
}

func (f *fakeClient) GenerateText(ctx context.Context, prompt string) (string, error) {
    var b strings.Builder
    err := f.GenerateTextStream(ctx, prompt, func(chunk string) error { b.WriteString(chunk); return nil })
    return b.String(), err
}

func overloadErr() *llm.Error {
    return &llm.Error{Category: llm.CategoryOverload, Retryable: true, Message: "gemini status 503: model overloaded"}
}

func quotaErr() *llm.Error {
    return &llm.Error{Category: llm.CategoryQuota, Retryable: true, Message: "gemini status 429: resource exhausted"}
}

func invalidErr() *llm.Error {
    return &llm.Error{Category: llm.CategoryInvalidRequest, Retryable: false, Message: "gemini status 400: bad request"}
}

// newTestSolver records backoff sleeps instead of performing them.
func newTestSolver(c llm.Client) (*Solver, *[]time.Duration) {
    slept := &[]time.Duration{}
    s := New(c)
    s.sleep = func(ctx context.Context, d time.Duration) bool {
        *slept = append(*slept, d)
        return true
    }
    return s, slept
}

func collect(s *Solver, question string) []Update {
    var out []Update
    for u := range s.Stream(context.Background(), question) {
        out = append(out, u)
    }
    return out
}

func TestStreamSnapshotsArePrefixExtending(t *testing.T) {
    s, _ := newTestSolver(&fakeClient{attempts: []fakeAttempt{
        {deltas: []string{"The ", "answer ", "is 4."}},
    }})
    updates := collect(s, "2+2?")
    require.Len(t, updates, 3)
    prev := ""
    for _, u := range updates {
        assert.Equal(t, UpdateSnapshot, u.Kind)
        assert.False(t, u.Failed)
        assert.True(t, strings.HasPrefix(u.Text, prev), "snapshot %q should extend %q", u.Text, prev)
        prev = u.Text
    }
    assert.Equal(t, "The answer is 4.", prev)
}

func TestStreamRetriesWithDoublingDelay(t *testing.T) {
    s, slept := newTestSolver(&fakeClient{attempts: []fakeAttempt{
        {err: overloadErr()},
        {err: quotaErr()},
        {deltas: []string{"ok"}},
    }})
    updates := collect(s, "q")
    require.Len(t, updates, 3)

    assert.Equal(t, UpdateRetry, updates[0].Kind)
    assert.Equal(t, 1, updates[0].Attempt)
    assert.Equal(t, 1500*time.Millisecond, updates[0].Delay)

    assert.Equal(t, UpdateRetry, updates[1].Kind)
    assert.Equal(t, 2, updates[1].Attempt)
    assert.Equal(t, 3*time.Second, updates[1].Delay)

    assert.Equal(t, UpdateSnapshot, updates[2].Kind)
    assert.Equal(t, "ok", updates[2].Text)
    assert.False(t, updates[2].Failed)

    assert.Equal(t, []time.Duration{1500 * time.Millisecond, 3 * time.Second}, *slept)
}

func TestStreamDiscardsPartialOutputOnRetry(t *testing.T) {
    s, _ := newTestSolver(&fakeClient{attempts: []fakeAttempt{
        {deltas: []string{"partial "}, err: overloadErr()},
        {deltas: []string{"clean"}},
    }})
    updates := collect(s, "q")
    require.Len(t, updates, 3)
    assert.Equal(t, "partial ", updates[0].Text)
    assert.Equal(t, UpdateRetry, updates[1].Kind)
    // buffer resets: the new attempt starts from scratch
    assert.Equal(t, "clean", updates[2].Text)
}

func TestStreamExhaustsRetries(t *testing.T) {
    client := &fakeClient{attempts: []fakeAttempt{
        {err: overloadErr()},
        {err: overloadErr()},
        {err: overloadErr()},
        {err: overloadErr()},
    }}
    s, slept := newTestSolver(client)
    updates := collect(s, "q")
    require.Len(t, updates, 4)
    assert.Equal(t, []time.Duration{1500 * time.Millisecond, 3 * time.Second, 6 * time.Second}, *slept)

    last := updates[len(updates)-1]
    assert.Equal(t, UpdateSnapshot, last.Kind)
    assert.True(t, last.Failed)
    assert.Contains(t, last.Text, "model overloaded")
    assert.Equal(t, 4, client.calls)
}

func TestStreamDoesNotRetryNonRetryable(t *testing.T) {
    client := &fakeClient{attempts: []fakeAttempt{{err: invalidErr()}}}
    s, slept := newTestSolver(client)
    updates := collect(s, "q")
    require.Len(t, updates, 1)
    assert.True(t, updates[0].Failed)
    assert.Contains(t, updates[0].Text, "bad request")
    assert.Empty(t, *slept)
    assert.Equal(t, 1, client.calls)
}

func TestStreamEmptyResultYieldsNoSnapshot(t *testing.T) {
    s, _ := newTestSolver(&fakeClient{attempts: []fakeAttempt{{}}})
    updates := collect(s, "q")
    assert.Empty(t, updates)

    s2, _ := newTestSolver(&fakeClient{attempts: []fakeAttempt{{}}})
    text, status := s2.Solve(context.Background(), "q")
    assert.Equal(t, "", text)
    assert.Equal(t, models.StatusCompleted, status)
}

func TestStreamStopsWhenConsumerStops(t *testing.T) {
    client := &fakeClient{attempts: []fakeAttempt{
        {deltas: []string{"a", "b", "c"}, err: overloadErr()},
        {deltas: []string{"never"}},
    }}
    s, slept := newTestSolver(client)
    var seen []Update
    for u := range s.Stream(context.Background(), "q") {
        seen = append(seen, u)
        break
    }
    require.Len(t, seen, 1)
    assert.Equal(t, "a", seen[0].Text)
    // no retry, no sleep, no second attempt after the consumer walked away
    assert.Empty(t, *slept)
    assert.Equal(t, 1, client.calls)
}

func TestSolveCollectsFinalText(t *testing.T) {
    s, _ := newTestSolver(&fakeClient{attempts: []fakeAttempt{
        {deltas: []string{"x = ", "2"}},
    }})
    text, status := s.Solve(context.Background(), "q")
    assert.Equal(t, "x = 2", text)
    assert.Equal(t, models.StatusCompleted, status)
}

func TestSolveReportsFailure(t *testing.T) {
    s, _ := newTestSolver(&fakeClient{attempts: []fakeAttempt{{err: invalidErr()}}})
    text, status := s.Solve(context.Background(), "q")
    assert.Contains(t, text, "bad request")
    assert.Equal(t, models.StatusFailed, status)
}

func TestBuildPrompt(t *testing.T) {
    p := BuildPrompt("What is 2+2?")
    assert.Contains(t, p, "What is 2+2?")
    assert.Contains(t, p, "step by step")
}

func TestExamplePrompts(t *testing.T) {
    assert.Len(t, ExamplePrompts(), 4)
}
