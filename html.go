package silverscrape

import (
	"strings"

	"golang.org/x/net/html"
)

// StripMarkup removes markup from an HTML fragment, collapses
// whitespace, and truncates the result to MaxDescriptionLen code
// points. A fragment that fails to parse degrades to the raw text,
// collapsed and truncated.
func StripMarkup(fragment string) string {
	node, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return TruncateDescription(collapseWhitespace(fragment))
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(node)

	return TruncateDescription(collapseWhitespace(b.String()))
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
