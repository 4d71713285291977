// Package htmldoc reads compendium web pages (SRD-style HTML exports)
// and flattens them into positioned text lines for record segmentation.
package htmldoc

// elementKind classifies a flattened content element.
type elementKind int

const (
	kindParagraph elementKind = iota
	kindHeading
	kindListItem
	kindTableRow
)

// element is one flattened block of page content in document order.
type element struct {
	kind  elementKind
	text  string
	level int // heading level 1-6, or list nesting depth
}
