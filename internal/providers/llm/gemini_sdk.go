//go:build gemini

package llm

import (
    "context"
    "errors"
    "fmt"

    genai "github.com/google/generative-ai-go/genai"
    "google.golang.org/api/googleapi"
    "google.golang.org/api/iterator"
    "google.golang.org/api/option"
)

// GeminiClient wraps the official SDK. Selected with `-tags gemini`; the
// default build uses the lightweight REST client instead.
type GeminiClient struct {
    APIKey string
    Model  string
}

func newGeminiClient(apiKey, model string) Client {
    return &GeminiClient{APIKey: apiKey, Model: model}
}

func (c *GeminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
    model, closeFn, err := c.model(ctx)
    if err != nil { return "", err }
    defer closeFn()
    resp, err := model.GenerateContent(ctx, genai.Text(prompt))
    if err != nil { return "", classifySDK(err) }
    txt := firstText(resp)
    if txt == "" {
        return "", &Error{Category: CategoryUnknown, Retryable: false, Message: "gemini: no candidates"}
    }
    return txt, nil
}

func (c *GeminiClient) GenerateTextStream(ctx context.Context, prompt string, onDelta func(chunk string) error) error {
    model, closeFn, err := c.model(ctx)
    if err != nil { return err }
    defer closeFn()
    it := model.GenerateContentStream(ctx, genai.Text(prompt))
    for {
        resp, err := it.Next()
        if errors.Is(err, iterator.Done) { return nil }
        if err != nil { return classifySDK(err) }
        if txt := firstText(resp); txt != "" {
            if err := onDelta(txt); err != nil { return err }
        }
    }
}

func (c *GeminiClient) model(ctx context.Context) (*genai.GenerativeModel, func(), error) {
    client, err := genai.NewClient(ctx, option.WithAPIKey(c.APIKey))
    if err != nil {
        return nil, nil, &Error{Category: CategoryUnknown, Retryable: false, Message: fmt.Sprintf("gemini client: %v", err)}
    }
    return client.GenerativeModel(c.Model), func() { client.Close() }, nil
}

func classifySDK(err error) *Error {
    var apiErr *googleapi.Error
    if errors.As(err, &apiErr) {
        return classifyStatus("gemini", apiErr.Code, apiErr.Message)
    }
    return classifyTransport("gemini", err)
}

func firstText(r *genai.GenerateContentResponse) string {
    if r == nil { return "" }
    for _, c := range r.Candidates {
        if c.Content == nil { continue }
        for _, part := range c.Content.Parts {
            if t, ok := part.(genai.Text); ok && string(t) != "" {
                return string(t)
            }
        }
    }
    return ""
}
