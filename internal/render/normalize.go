package render

import (
    "regexp"
    "strings"

    "github.com/example/mathsolve/internal/models"
)

// substitution rules run once, in order, over the whole text before the
// math-delimiter split. Order matters: later rules must not re-match text
// produced by earlier ones. Each pattern refuses to fire after a backslash
// so already-escaped LaTeX commands pass through untouched.
var substitutions = []struct {
    re   *regexp.Regexp
    repl string
}{
    {regexp.MustCompile(`(^|[^\\A-Za-z0-9])sqrt\(([^()]*)\)`), "${1}√(${2})"},
    {regexp.MustCompile(`(^|[^\\A-Za-z0-9])int\b`), "${1}∫"},
    {regexp.MustCompile(`(^|[^\\A-Za-z0-9])sum\b`), "${1}∑"},
    // exponent heuristic: a bare letter+digits token becomes letter^digits.
    // Must not fire when the preceding rune is alphanumeric, so compound
    // tokens like H2O2 keep their digit-adjacent letters (O2) intact.
    // Known approximation with false positives, kept deliberately simple.
    {regexp.MustCompile(`(^|[^\\A-Za-z0-9])([A-Za-z])(\d+)`), "${1}${2}^${3}"},
}

// mathSpanRe matches a display span ($$...$$) or, failing that, an inline
// span ($...$). Alternation order makes the doubled marker win.
var mathSpanRe = regexp.MustCompile(`(?s)\$\$(.+?)\$\$|\$([^$]+)\$`)

// Normalize converts one completed raw answer into ordered display
// segments: markup stripped, informal math notation canonicalized, then
// split on math delimiters. Whitespace-only spans are dropped.
func Normalize(raw string) []models.Segment {
    text := stripHTML(raw)
    for _, s := range substitutions {
        text = s.re.ReplaceAllString(text, s.repl)
    }

    var out []models.Segment
    last := 0
    for _, m := range mathSpanRe.FindAllStringSubmatchIndex(text, -1) {
        out = appendSegment(out, models.PlainText, text[last:m[0]])
        if m[2] >= 0 {
            out = appendSegment(out, models.DisplayMath, text[m[2]:m[3]])
        } else {
            out = appendSegment(out, models.InlineMath, text[m[4]:m[5]])
        }
        last = m[1]
    }
    out = appendSegment(out, models.PlainText, text[last:])
    return out
}

func appendSegment(segs []models.Segment, kind models.SegmentKind, content string) []models.Segment {
    content = strings.TrimSpace(content)
    if content == "" { return segs }
    return append(segs, models.Segment{Kind: kind, Content: content})
}

// Flush hands each segment to the display write callback. A failure on one
// segment is recorded and the remaining segments are still written.
func Flush(segments []models.Segment, write func(models.Segment) error) []error {
    var errs []error
    for _, seg := range segments {
        if err := write(seg); err != nil {
            errs = append(errs, err)
        }
    }
    return errs
}
