package llm

import (
    "errors"
    "os"
    "strings"
)

// ErrNoAPIKey is returned when no provider credential is configured.
// Callers must treat it as fatal and refuse to accept input.
var ErrNoAPIKey = errors.New("no API key configured: set GEMINI_API_KEY or OPENAI_API_KEY")

// NewFromEnv returns a Client based on environment variables.
// Supported providers:
// - LLM_PROVIDER=gemini|openai|mock (optional; auto-detected by key presence)
// - For Gemini: GEMINI_API_KEY, optional LLM_MODEL
// - For OpenAI: OPENAI_API_KEY, optional LLM_MODEL, optional OPENAI_API_BASE
func NewFromEnv() (Client, error) {
    prov := strings.ToLower(strings.TrimSpace(os.Getenv("LLM_PROVIDER")))
    switch prov {
    case "gemini":
        if key := strings.TrimSpace(os.Getenv("GEMINI_API_KEY")); key != "" {
            return newGeminiClient(key, getModelWithDefault("LLM_MODEL", "gemini-2.0-flash")), nil
        }
        return nil, ErrNoAPIKey
    case "openai":
        if key := strings.TrimSpace(os.Getenv("OPENAI_API_KEY")); key != "" {
            return &OpenAIClient{APIKey: key, Model: getModelWithDefault("LLM_MODEL", "gpt-4o-mini")}, nil
        }
        return nil, ErrNoAPIKey
    case "mock":
        return &MockClient{}, nil
    }

    // Auto-detect by API key presence if provider not specified
    if key := strings.TrimSpace(os.Getenv("GEMINI_API_KEY")); key != "" {
        return newGeminiClient(key, getModelWithDefault("LLM_MODEL", "gemini-2.0-flash")), nil
    }
    if key := strings.TrimSpace(os.Getenv("OPENAI_API_KEY")); key != "" {
        return &OpenAIClient{APIKey: key, Model: getModelWithDefault("LLM_MODEL", "gpt-4o-mini")}, nil
    }
    return nil, ErrNoAPIKey
}
