package wikipedia

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Page furniture whose lists are not candidates.
var skippedClasses = map[string]bool{
	"navbox":          true,
	"vertical-navbox": true,
	"toc":             true,
	"hatnote":         true,
	"metadata":        true,
	"mw-editsection":  true,
}

// disambiguationOptions returns the article linked first from each list item
// of a rendered disambiguation page, in document order and without
// duplicates. Items whose first link is not an existing article are skipped.
func disambiguationOptions(page string) ([]string, error) {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parsing disambiguation page: %w", err)
	}

	var options []string
	seen := make(map[string]bool)

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if skipped(n) {
				return
			}
			if n.DataAtom == atom.Li {
				if title := itemTitle(n); title != "" && !seen[title] {
					seen[title] = true
					options = append(options, title)
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	return options, nil
}

func skipped(n *html.Node) bool {
	for _, class := range strings.Fields(attr(n, "class")) {
		if skippedClasses[class] || strings.HasPrefix(class, "tocsection") {
			return true
		}
	}
	return false
}

func itemTitle(li *html.Node) string {
	a := firstAnchor(li)
	if a == nil {
		return ""
	}
	if !strings.HasPrefix(attr(a, "href"), "/wiki/") {
		return ""
	}
	for _, class := range strings.Fields(attr(a, "class")) {
		if class == "new" {
			return ""
		}
	}
	if title := strings.TrimSpace(attr(a, "title")); title != "" {
		return title
	}
	return text(a)
}

func firstAnchor(n *html.Node) *html.Node {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.ElementNode && child.DataAtom == atom.A {
			return child
		}
		if a := firstAnchor(child); a != nil {
			return a
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func text(n *html.Node) string {
	var b strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			collect(child)
		}
	}
	collect(n)
	return strings.Join(strings.Fields(b.String()), " ")
}
