package render

import (
    "regexp"
    "strings"

    "golang.org/x/net/html"
)

var htmlTagRe = regexp.MustCompile(`(?i)</?[a-z][a-z0-9]*(\s[^>]*)?>`)

// stripHTML removes markup from a model answer. Providers occasionally wrap
// solutions in <div>/<p> tags; those break the math delimiter split, so the
// text is extracted before normalization. Answers without tags pass through
// untouched — a bare "<" in an inequality is not treated as markup.
func stripHTML(s string) string {
    if !htmlTagRe.MatchString(s) { return s }
    node, err := html.Parse(strings.NewReader(s))
    if err != nil { return s }
    var b strings.Builder
    extractText(node, &b, false)
    return strings.TrimSpace(b.String())
}

func extractText(n *html.Node, b *strings.Builder, inHidden bool) {
    if n.Type == html.ElementNode {
        // skip script/style/noscript
        switch strings.ToLower(n.Data) {
        case "script", "style", "noscript":
            inHidden = true
        case "br", "p", "div", "li", "tr":
            b.WriteString("\n")
        }
    }
    if !inHidden && n.Type == html.TextNode {
        b.WriteString(n.Data)
    }
    for c := n.FirstChild; c != nil; c = c.NextSibling {
        extractText(c, b, inHidden)
    }
}
