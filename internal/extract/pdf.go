package extract

import (
    "encoding/base64"
    "fmt"
    "os"
    "path/filepath"
    "strconv"
    "strings"

    pdfx "github.com/ledongthuc/pdf"
)

// QuestionFromPDF decodes a base64 PDF (data: URIs accepted) and returns
// its plain text so the frontend can prefill the question box from a
// scanned problem set. Limits are conservative: a homework sheet, not a
// textbook.
func QuestionFromPDF(dataB64 string) (string, error) {
    if strings.TrimSpace(dataB64) == "" {
        return "", fmt.Errorf("missing pdf data")
    }
    maxBytes := envInt("PDF_MAX_BYTES", 10*1024*1024)
    maxPages := envInt("PDF_MAX_PAGES", 5)
    if i := strings.Index(dataB64, ","); i != -1 { dataB64 = dataB64[i+1:] }
    buf, err := base64.StdEncoding.DecodeString(dataB64)
    if err != nil { return "", fmt.Errorf("invalid base64: %w", err) }
    if len(buf) > maxBytes { return "", fmt.Errorf("pdf too large: %d bytes > limit %d", len(buf), maxBytes) }

    // write to temp file because the pdf lib expects a path
    path := filepath.Join(os.TempDir(), fmt.Sprintf("question_%d.pdf", os.Getpid()))
    if err := os.WriteFile(path, buf, 0600); err != nil { return "", err }
    defer os.Remove(path)

    f, r, err := pdfx.Open(path)
    if err != nil { return "", fmt.Errorf("invalid pdf: %w", err) }
    defer f.Close()

    pages := r.NumPage()
    if pages > maxPages { pages = maxPages }
    var out strings.Builder
    for page := 1; page <= pages; page++ {
        p := r.Page(page)
        txt, _ := p.GetPlainText(nil)
        if t := strings.TrimSpace(txt); t != "" {
            out.WriteString(t)
            out.WriteString("\n\n")
        }
    }
    return strings.TrimSpace(out.String()), nil
}

func envInt(key string, def int) int {
    if v := os.Getenv(key); v != "" {
        if n, err := strconv.Atoi(v); err == nil { return n }
    }
    return def
}
