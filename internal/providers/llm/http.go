package llm

import (
    "bufio"
    "io"
    "os"
    "time"
)

func clientTimeout() time.Duration {
    if v := os.Getenv("LLM_HTTP_TIMEOUT_MS"); v != "" {
        if ms, err := time.ParseDuration(v + "ms"); err == nil { return ms }
    }
    // generous: a streamed solution can take a while to finish
    return 120 * time.Second
}

// newLineReader returns a scanner for SSE lines.
func newLineReader(r io.Reader) *bufio.Scanner {
    sc := bufio.NewScanner(r)
    buf := make([]byte, 0, 64*1024)
    sc.Buffer(buf, 1024*1024)
    return sc
}

func getModelWithDefault(envKey, def string) string {
    if v := os.Getenv(envKey); v != "" { return v }
    return def
}
