package llm

import (
    "fmt"
    "net"
    "strings"
)

type Category string

const (
    CategoryOverload       Category = "overload"
    CategoryQuota          Category = "quota"
    CategoryInvalidRequest Category = "invalid_request"
    CategoryNetwork        Category = "network"
    CategoryUnknown        Category = "unknown"
)

// Error is the single classified error type that leaves this package.
// Callers decide retry behavior from Retryable alone and never look at
// provider status codes or response bodies.
type Error struct {
    Category  Category
    Retryable bool
    Message   string
}

func (e *Error) Error() string {
    return fmt.Sprintf("%s: %s", e.Category, e.Message)
}

// classifyStatus maps a provider HTTP status plus response body to a
// classified error. Overload and quota signals are the only retryable ones.
func classifyStatus(provider string, status int, body string) *Error {
    msg := fmt.Sprintf("%s status %d: %s", provider, status, strings.TrimSpace(body))
    lower := strings.ToLower(body)
    switch {
    case status == 503 || status == 529 || strings.Contains(lower, "overloaded") || strings.Contains(lower, "unavailable"):
        return &Error{Category: CategoryOverload, Retryable: true, Message: msg}
    case status == 429 || strings.Contains(lower, "resource has been exhausted") || strings.Contains(lower, "resource_exhausted") || strings.Contains(lower, "rate limit") || strings.Contains(lower, "quota"):
        return &Error{Category: CategoryQuota, Retryable: true, Message: msg}
    case status >= 400 && status < 500:
        return &Error{Category: CategoryInvalidRequest, Retryable: false, Message: msg}
    default:
        return &Error{Category: CategoryUnknown, Retryable: false, Message: msg}
    }
}

// classifyTransport wraps dial/read failures. They are not retried: the
// backoff loop exists for provider-side overload, not for broken links.
func classifyTransport(provider string, err error) *Error {
    msg := fmt.Sprintf("%s request failed: %v", provider, err)
    if _, ok := err.(net.Error); ok {
        return &Error{Category: CategoryNetwork, Retryable: false, Message: msg}
    }
    if strings.Contains(err.Error(), "connection refused") || strings.Contains(err.Error(), "no such host") {
        return &Error{Category: CategoryNetwork, Retryable: false, Message: msg}
    }
    return &Error{Category: CategoryUnknown, Retryable: false, Message: msg}
}
