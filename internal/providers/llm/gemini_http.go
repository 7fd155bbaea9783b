//go:build !gemini

package llm

import (
    "bytes"
    "context"
    "encoding/json"
    "fmt"
    "io"
    "net/http"
    "net/url"
    "os"
    "strings"
)

// GeminiClient talks to the Generative Language REST API directly. The SDK
// variant lives behind the `gemini` build tag; this one avoids the extra
// dependency surface in the default build.
type GeminiClient struct {
    APIKey string
    Model  string
}

func newGeminiClient(apiKey, model string) Client {
    return &GeminiClient{APIKey: apiKey, Model: model}
}

func (c *GeminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
    res, err := c.post(ctx, "generateContent", "", prompt)
    if err != nil { return "", err }
    defer res.Body.Close()
    var out geminiResponse
    if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
        return "", &Error{Category: CategoryUnknown, Retryable: false, Message: fmt.Sprintf("gemini decode: %v", err)}
    }
    txt := out.firstText()
    if txt == "" {
        return "", &Error{Category: CategoryUnknown, Retryable: false, Message: "gemini: no candidates"}
    }
    return txt, nil
}

func (c *GeminiClient) GenerateTextStream(ctx context.Context, prompt string, onDelta func(chunk string) error) error {
    res, err := c.post(ctx, "streamGenerateContent", "alt=sse", prompt)
    if err != nil { return err }
    defer res.Body.Close()
    sc := newLineReader(res.Body)
    for sc.Scan() {
        line := sc.Text()
        if !strings.HasPrefix(line, "data:") { continue }
        data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
        if data == "" { continue }
        var chunk geminiResponse
        if err := json.Unmarshal([]byte(data), &chunk); err != nil { continue }
        if txt := chunk.firstText(); txt != "" {
            if err := onDelta(txt); err != nil { return err }
        }
    }
    if err := sc.Err(); err != nil {
        return classifyTransport("gemini", err)
    }
    return nil
}

func (c *GeminiClient) post(ctx context.Context, method, query, prompt string) (*http.Response, error) {
    base := "https://generativelanguage.googleapis.com/v1beta"
    if v := os.Getenv("GEMINI_API_URL"); v != "" { base = strings.TrimRight(v, "/") }
    endpoint := fmt.Sprintf("%s/models/%s:%s?key=%s", base, url.PathEscape(c.Model), method, url.QueryEscape(c.APIKey))
    if query != "" { endpoint += "&" + query }
    body := map[string]any{
        "contents": []map[string]any{{
            "role":  "user",
            "parts": []map[string]string{{"text": prompt}},
        }},
    }
    b, _ := json.Marshal(body)
    req, _ := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
    req.Header.Set("content-type", "application/json")
    httpClient := &http.Client{Timeout: clientTimeout()}
    res, err := httpClient.Do(req)
    if err != nil { return nil, classifyTransport("gemini", err) }
    if res.StatusCode < 200 || res.StatusCode >= 300 {
        eb, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
        res.Body.Close()
        return nil, classifyStatus("gemini", res.StatusCode, string(eb))
    }
    return res, nil
}

type geminiResponse struct {
    Candidates []struct {
        Content struct {
            Parts []struct {
                Text string `json:"text"`
            } `json:"parts"`
        } `json:"content"`
    } `json:"candidates"`
}

func (r *geminiResponse) firstText() string {
    for _, c := range r.Candidates {
        for _, p := range c.Content.Parts {
            if p.Text != "" { return p.Text }
        }
    }
    return ""
}
