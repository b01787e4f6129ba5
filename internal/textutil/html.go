package textutil

import (
	"strings"

	"golang.org/x/net/html"
)

// ExtractText returns the visible text content of an HTML document.
// Script, style, and other non-rendered elements are skipped, and
// whitespace is normalized.
//
// Design decision: We use golang.org/x/net/html rather than regex because:
//  1. It correctly handles malformed HTML
//  2. Provides a proper DOM-like structure
//  3. More maintainable than complex regex patterns
func ExtractText(htmlContent string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	collectText(doc, &sb)
	return NormalizeWhitespace(sb.String()), nil
}

// skippedElements are HTML elements whose text is never rendered.
var skippedElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"head":     true,
	"template": true,
}

// collectText walks the node tree appending visible text to sb.
func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.ElementNode && skippedElements[n.Data] {
		return
	}
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		sb.WriteByte(' ')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}

// ExtractHTMLTitle returns the content of the document's <title> element,
// or the empty string if none is present.
func ExtractHTMLTitle(htmlContent string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}
	return findTitle(doc), nil
}

// findTitle searches the node tree for the first <title> element.
func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
			return strings.TrimSpace(n.FirstChild.Data)
		}
		return ""
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if title := findTitle(c); title != "" {
			return title
		}
	}
	return ""
}
