package spatial

import "github.com/codexforge/bestiary/model"

// PageImage is one raster image placed on a page, ready for matching.
// BBox is the placement rectangle in page coordinates and Pix carries
// the decoded pixels used by silhouette filtering. Pix may be nil when
// pixel data is unavailable; such images skip pixel-based filters.
type PageImage struct {
	// Ref identifies the image resource within the document.
	Ref string

	// BBox is the image's placement on the page.
	BBox model.BBox

	// Pix holds the decoded image data, if available.
	Pix *model.RasterImage
}

// contextImage is the last sufficiently large image seen, carried
// forward so that records on following pages can inherit it when their
// own page has no image of its own.
type contextImage struct {
	ref      string
	page     int
	keywords map[string]bool
}

// Session accumulates matching state across the pages of one document.
// A fresh Session handles one document; reusing a Session across
// documents would leak assignment state between them.
type Session struct {
	assignedRecords map[string]bool
	assignedImages  map[string]bool
	context         *contextImage
}

// NewSession returns an empty Session ready for the first page.
func NewSession() *Session {
	return &Session{
		assignedRecords: make(map[string]bool),
		assignedImages:  make(map[string]bool),
	}
}

// RecordAssigned reports whether a record with the given name already
// received an image on an earlier page.
func (s *Session) RecordAssigned(name string) bool {
	return s.assignedRecords[model.NormalizeName(name)]
}

// ImageAssigned reports whether the image resource already belongs to
// some record.
func (s *Session) ImageAssigned(ref string) bool {
	return s.assignedImages[ref]
}

func (s *Session) assign(rec *model.EntityRecord, ref string) {
	rec.ImageRef = ref
	s.assignedRecords[model.NormalizeName(rec.Name)] = true
	s.assignedImages[ref] = true
}
