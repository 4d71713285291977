package htmldoc

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"

	"github.com/codexforge/bestiary/textrun"
)

// Synthetic line geometry. HTML carries no page coordinates, so lines
// are stacked top-down on a letter-sized page; segmentation works on
// reading order and font size, which this preserves.
const (
	pageWidth  = 612.0
	pageHeight = 792.0

	bodyFontSize = 12.0
	lineAdvance  = 14.0
	leftMargin   = 36.0
)

// Reader provides access to the text content of one compendium page.
type Reader struct {
	doc      *html.Node
	title    string
	metadata map[string]string
	elements []element
}

// Open opens an HTML file for reading.
func Open(filename string) (*Reader, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return OpenReader(f)
}

// OpenReader parses HTML from an io.Reader. Site chrome (navigation,
// sidebars, headers, footers) is dropped during parsing so that only
// stat-block and flavor text reaches the segmenter.
func OpenReader(r io.Reader) (*Reader, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	reader := &Reader{
		doc:      doc,
		metadata: make(map[string]string),
	}
	reader.extractHead(doc)

	body := findElement(doc, "body")
	if body == nil {
		body = doc
	}
	checker := newChromeChecker(body)
	reader.traverse(body, checker, 0)

	return reader, nil
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	return nil
}

// Title returns the document title from the head element.
func (r *Reader) Title() string {
	return r.title
}

// Meta returns the value of a named meta tag, or "".
func (r *Reader) Meta(name string) string {
	return r.metadata[name]
}

// PageCount returns 1; an HTML page is a single logical page.
func (r *Reader) PageCount() (int, error) {
	return 1, nil
}

// Lines flattens the page content into text lines laid out top-down.
// Headings carry a font size derived from their level so downstream
// header detection keeps working; everything else is body-sized.
func (r *Reader) Lines() []textrun.TextLine {
	var lines []textrun.TextLine
	y := pageHeight - lineAdvance
	for _, el := range r.elements {
		size := bodyFontSize
		header := false
		if el.kind == kindHeading {
			size = headingFontSize(el.level)
			header = true
		}
		lines = append(lines, textrun.TextLine{
			Text:     el.text,
			X:        leftMargin,
			Y:        y,
			FontSize: size,
			IsHeader: header,
		})
		y -= lineAdvance
	}
	return lines
}

func headingFontSize(level int) float64 {
	size := 24.0 - 2.0*float64(level-1)
	if size < 16 {
		size = 16
	}
	return size
}

// extractHead extracts title and meta tags from the head element.
func (r *Reader) extractHead(n *html.Node) {
	if n.Type == html.ElementNode && n.Data == "head" {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.Data {
			case "title":
				r.title = getTextContent(c)
			case "meta":
				name, content := "", ""
				for _, attr := range c.Attr {
					switch attr.Key {
					case "name", "property":
						name = attr.Val
					case "content":
						content = attr.Val
					}
				}
				if name != "" && content != "" {
					r.metadata[name] = content
				}
			}
		}
		return
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.extractHead(c)
	}
}

// traverse walks the DOM collecting flattened content elements in
// document order. listLevel tracks nesting depth for list items.
func (r *Reader) traverse(n *html.Node, checker *chromeChecker, listLevel int) {
	if n.Type == html.ElementNode {
		if skipTag(n.Data) || checker.isChrome(n) {
			return
		}

		switch n.Data {
		case "h1", "h2", "h3", "h4", "h5", "h6":
			level := int(n.Data[1] - '0')
			if text := getTextContent(n); text != "" {
				r.elements = append(r.elements, element{kind: kindHeading, text: text, level: level})
			}
			return

		case "p", "blockquote", "pre":
			if text := getTextContent(n); text != "" {
				r.elements = append(r.elements, element{kind: kindParagraph, text: text})
			}
			return

		case "li":
			if text := getDirectTextContent(n); text != "" {
				r.elements = append(r.elements, element{kind: kindListItem, text: text, level: listLevel})
			}
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && (c.Data == "ul" || c.Data == "ol") {
					r.traverse(c, checker, listLevel+1)
				}
			}
			return

		case "tr":
			// Table rows are joined into one line so stat tables (the
			// six-column ability row in particular) survive flattening.
			if text := rowText(n); text != "" {
				r.elements = append(r.elements, element{kind: kindTableRow, text: text})
			}
			return

		case "br", "hr":
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.traverse(c, checker, listLevel)
	}
}

// rowText joins a table row's cells with single spaces.
func rowText(tr *html.Node) string {
	var cells []string
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
			if text := getTextContent(c); text != "" {
				cells = append(cells, text)
			}
		}
	}
	return strings.Join(cells, " ")
}

// skipTag reports whether the element never contributes page text.
func skipTag(tagName string) bool {
	switch tagName {
	case "script", "style", "noscript", "template", "svg", "math", "iframe", "object", "embed":
		return true
	}
	return false
}

// findElement finds the first element with the given tag name.
func findElement(n *html.Node, tagName string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tagName {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if result := findElement(c, tagName); result != nil {
			return result
		}
	}
	return nil
}

// getTextContent extracts all text content from a node and its descendants.
func getTextContent(n *html.Node) string {
	var b strings.Builder
	collectText(n, &b)
	return strings.Join(strings.Fields(b.String()), " ")
}

func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
	}
	if n.Type == html.ElementNode {
		if skipTag(n.Data) {
			return
		}
		if n.Data == "br" {
			b.WriteString(" ")
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
	if n.Type == html.ElementNode {
		switch n.Data {
		case "p", "div", "li", "h1", "h2", "h3", "h4", "h5", "h6", "tr", "td", "th":
			b.WriteString(" ")
		}
	}
}

// getDirectTextContent gets a node's text excluding nested block elements,
// so a list item's line does not swallow its sub-list.
func getDirectTextContent(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		} else if c.Type == html.ElementNode {
			switch c.Data {
			case "ul", "ol", "div", "p", "table", "blockquote":
			default:
				b.WriteString(getTextContent(c))
				b.WriteString(" ")
			}
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
