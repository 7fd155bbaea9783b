package llm

import (
    "bytes"
    "context"
    "encoding/json"
    "fmt"
    "io"
    "net/http"
    "os"
    "strings"
)

type OpenAIClient struct {
    APIKey  string
    Model   string
    BaseURL string
}

func (c *OpenAIClient) GenerateText(ctx context.Context, prompt string) (string, error) {
    body := map[string]any{
        "model":       c.Model,
        "messages":    []map[string]string{{"role": "user", "content": prompt}},
        "temperature": 0.3,
    }
    res, err := c.post(ctx, body)
    if err != nil { return "", err }
    defer res.Body.Close()
    var resp struct {
        Choices []struct {
            Message struct {
                Content string `json:"content"`
            } `json:"message"`
        } `json:"choices"`
    }
    if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
        return "", &Error{Category: CategoryUnknown, Retryable: false, Message: fmt.Sprintf("openai decode: %v", err)}
    }
    if len(resp.Choices) == 0 {
        return "", &Error{Category: CategoryUnknown, Retryable: false, Message: "openai: no choices"}
    }
    return resp.Choices[0].Message.Content, nil
}

func (c *OpenAIClient) GenerateTextStream(ctx context.Context, prompt string, onDelta func(chunk string) error) error {
    body := map[string]any{
        "model":       c.Model,
        "messages":    []map[string]string{{"role": "user", "content": prompt}},
        "temperature": 0.3,
        "stream":      true,
    }
    res, err := c.post(ctx, body)
    if err != nil { return err }
    defer res.Body.Close()
    sc := newLineReader(res.Body)
    for sc.Scan() {
        line := sc.Text()
        if !strings.HasPrefix(line, "data:") { continue }
        data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
        if data == "[DONE]" { break }
        var chunk struct {
            Choices []struct {
                Delta struct {
                    Content string `json:"content"`
                } `json:"delta"`
            } `json:"choices"`
        }
        if err := json.Unmarshal([]byte(data), &chunk); err != nil { continue }
        if len(chunk.Choices) > 0 && chunk.Choices[0].Delta.Content != "" {
            if err := onDelta(chunk.Choices[0].Delta.Content); err != nil { return err }
        }
    }
    if err := sc.Err(); err != nil {
        return classifyTransport("openai", err)
    }
    return nil
}

func (c *OpenAIClient) post(ctx context.Context, body any) (*http.Response, error) {
    b, _ := json.Marshal(body)
    req, _ := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/v1/chat/completions"), bytes.NewReader(b))
    req.Header.Set("Authorization", "Bearer "+c.APIKey)
    req.Header.Set("Content-Type", "application/json")
    httpClient := &http.Client{Timeout: clientTimeout()}
    res, err := httpClient.Do(req)
    if err != nil { return nil, classifyTransport("openai", err) }
    if res.StatusCode < 200 || res.StatusCode >= 300 {
        eb, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
        res.Body.Close()
        return nil, classifyStatus("openai", res.StatusCode, string(eb))
    }
    return res, nil
}

func (c *OpenAIClient) endpoint(path string) string {
    base := c.BaseURL
    if base == "" { base = os.Getenv("OPENAI_API_BASE") }
    if base == "" { base = "https://api.openai.com" }
    return strings.TrimRight(base, "/") + path
}
