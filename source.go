package bestiary

import (
	"github.com/codexforge/bestiary/graphicsstate"
	"github.com/codexforge/bestiary/model"
	"github.com/codexforge/bestiary/textrun"
)

// PageSource supplies the raw page content the extraction pipeline works
// on. Page indices are zero-based. The PDF implementation lives in
// internal/pdfsource; any format that can produce positioned glyph runs
// and image paint operators can drive the pipeline.
type PageSource interface {
	// PageCount returns the number of pages in the document.
	PageCount() (int, error)

	// PageSize returns the page dimensions in page units.
	PageSize(page int) (width, height float64, err error)

	// Runs returns the page's glyph runs in stream order.
	Runs(page int) ([]textrun.GlyphRun, error)

	// ImageOps returns the page's paint-stream operators relevant to
	// image placement, in stream order.
	ImageOps(page int) ([]graphicsstate.Op, error)

	// Image decodes the named image resource. Implementations may
	// return a RasterImage with nil Pix when decoding is unsupported;
	// such images still participate in placement-based matching.
	Image(ref string) (*model.RasterImage, error)

	// Close releases the underlying document.
	Close() error
}

// PageRasterizer is an optional extension of PageSource for documents
// that can render a whole page to an encoded image. It enables the OCR
// fallback on pages with no embedded text layer.
type PageRasterizer interface {
	// RenderPage renders the page to PNG-encoded image data.
	RenderPage(page int) ([]byte, error)
}
