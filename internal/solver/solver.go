package solver

import (
    "context"
    "errors"
    "fmt"
    "iter"
    "strings"
    "time"

    "github.com/example/mathsolve/internal/models"
    "github.com/example/mathsolve/internal/providers/llm"
)

type UpdateKind string

const (
    // UpdateSnapshot carries the full text accumulated so far in the
    // current attempt, never just the newest delta.
    UpdateSnapshot UpdateKind = "snapshot"
    // UpdateRetry announces an upcoming backoff sleep before a retry.
    UpdateRetry UpdateKind = "retry"
)

type Update struct {
    Kind    UpdateKind
    Text    string
    Attempt int
    Delay   time.Duration
    // Failed marks a terminal snapshot whose Text is a formatted error
    // message rather than model output.
    Failed bool
}

type RetryPolicy struct {
    MaxRetries   int
    InitialDelay time.Duration
    Multiplier   float64
}

func DefaultRetryPolicy() RetryPolicy {
    return RetryPolicy{MaxRetries: 3, InitialDelay: 1500 * time.Millisecond, Multiplier: 2}
}

type Solver struct {
    Client llm.Client
    Policy RetryPolicy

    // sleep is swapped out in tests
    sleep func(ctx context.Context, d time.Duration) bool
}

func New(client llm.Client) *Solver {
    return &Solver{Client: client, Policy: DefaultRetryPolicy(), sleep: sleepCtx}
}

var errConsumerStopped = errors.New("consumer stopped")

// Stream turns one question into a lazy sequence of updates: cumulative
// text snapshots while the provider streams, retry notices around backoff
// sleeps, and on unrecoverable failure a single terminal snapshot holding
// a formatted error message. The sequence is finite, forward-only and
// single-use; production stops as soon as the consumer stops iterating.
func (s *Solver) Stream(ctx context.Context, question string) iter.Seq[Update] {
    policy := s.Policy
    if policy.MaxRetries == 0 && policy.InitialDelay == 0 { policy = DefaultRetryPolicy() }
    if policy.Multiplier <= 0 { policy.Multiplier = 2 }
    sleep := s.sleep
    if sleep == nil { sleep = sleepCtx }
    prompt := BuildPrompt(question)

    return func(yield func(Update) bool) {
        delay := policy.InitialDelay
        retries := 0
        for {
            // fresh buffer per attempt: partial output from a failed
            // attempt is discarded, never merged into the next one
            var buf strings.Builder
            stopped := false
            err := s.Client.GenerateTextStream(ctx, prompt, func(chunk string) error {
                buf.WriteString(chunk)
                if !yield(Update{Kind: UpdateSnapshot, Text: buf.String()}) {
                    stopped = true
                    return errConsumerStopped
                }
                return nil
            })
            if stopped { return }
            if err == nil { return }

            var perr *llm.Error
            if errors.As(err, &perr) && perr.Retryable && retries < policy.MaxRetries {
                retries++
                if !yield(Update{Kind: UpdateRetry, Attempt: retries, Delay: delay}) { return }
                if !sleep(ctx, delay) { return }
                delay = time.Duration(float64(delay) * policy.Multiplier)
                continue
            }
            yield(Update{Kind: UpdateSnapshot, Failed: true, Text: fmt.Sprintf("Sorry, something went wrong while solving this problem: %v", err)})
            return
        }
    }
}

// Solve drains the streaming sequence and returns the final text. An
// exhausted sequence with no snapshot is an empty result, not an error.
func (s *Solver) Solve(ctx context.Context, question string) (string, models.Status) {
    text := ""
    status := models.StatusCompleted
    for u := range s.Stream(ctx, question) {
        if u.Kind != UpdateSnapshot { continue }
        text = u.Text
        if u.Failed { status = models.StatusFailed }
    }
    return text, status
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
    t := time.NewTimer(d)
    defer t.Stop()
    select {
    case <-ctx.Done():
        return false
    case <-t.C:
        return true
    }
}
