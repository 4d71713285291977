package htmldoc

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// chromePattern matches class/id values that mark navigation and other
// site boilerplate on compendium pages.
var chromePattern = regexp.MustCompile(
	`(?i)(^|[^a-z])(nav|navbar|navigation|menu|topnav|sidenav|breadcrumb|breadcrumbs|` +
		`site-header|page-header|masthead|banner|` +
		`footer|site-footer|page-footer|colophon|` +
		`sidebar|widget-area|widget|aside)([^a-z]|$)`)

// chromeChecker decides which DOM subtrees are site chrome rather than
// rulebook content.
type chromeChecker struct {
	body    *html.Node
	wrapper *html.Node
}

func newChromeChecker(body *html.Node) *chromeChecker {
	return &chromeChecker{
		body:    body,
		wrapper: detectWrapper(body),
	}
}

// detectWrapper finds a single structural wrapper element, handling the
// common <body><div id="wrapper">...</div></body> pattern.
func detectWrapper(body *html.Node) *html.Node {
	var structural []*html.Node
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "div", "main":
			structural = append(structural, c)
		case "script", "style", "noscript", "template":
		default:
			return nil
		}
	}
	if len(structural) == 1 {
		return structural[0]
	}
	return nil
}

// isChrome reports whether the node's subtree should be dropped.
func (cc *chromeChecker) isChrome(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}

	switch n.Data {
	case "nav", "aside":
		return true
	}

	switch getAttr(n, "role") {
	case "navigation", "complementary":
		return true
	case "banner", "contentinfo":
		return cc.isTopLevel(n)
	}

	// Page-level header and footer bands are chrome; a header inside an
	// article is content.
	switch n.Data {
	case "header", "footer":
		if cc.isTopLevel(n) {
			return true
		}
	}

	if class := getAttr(n, "class"); class != "" && chromePattern.MatchString(class) {
		return true
	}
	if id := getAttr(n, "id"); id != "" && chromePattern.MatchString(id) {
		return true
	}

	return cc.isLinkFarm(n)
}

func (cc *chromeChecker) isTopLevel(n *html.Node) bool {
	parent := n.Parent
	if parent == nil {
		return false
	}
	return parent == cc.body || (cc.wrapper != nil && parent == cc.wrapper)
}

// isLinkFarm drops block containers whose text is mostly link text,
// which on compendium sites means an index or related-pages box.
func (cc *chromeChecker) isLinkFarm(n *html.Node) bool {
	switch n.Data {
	case "div", "section", "ul", "ol":
	default:
		return false
	}

	total := textLength(n)
	if total == 0 {
		return false
	}
	density := float64(linkTextLength(n)) / float64(total)
	return density > 0.6 && countLinks(n) >= 4
}

func textLength(n *html.Node) int {
	if n.Type == html.TextNode {
		return len(strings.TrimSpace(n.Data))
	}
	total := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		total += textLength(c)
	}
	return total
}

func linkTextLength(n *html.Node) int {
	if n.Type == html.ElementNode && n.Data == "a" {
		return textLength(n)
	}
	total := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		total += linkTextLength(c)
	}
	return total
}

func countLinks(n *html.Node) int {
	count := 0
	if n.Type == html.ElementNode && n.Data == "a" {
		count = 1
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		count += countLinks(c)
	}
	return count
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
