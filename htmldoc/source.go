package htmldoc

import (
	"fmt"
	"io"

	"github.com/codexforge/bestiary/graphicsstate"
	"github.com/codexforge/bestiary/model"
	"github.com/codexforge/bestiary/textrun"
)

// Source adapts a Reader to the extraction pipeline's page source
// interface. HTML pages carry no embedded raster images, so the image
// methods report nothing to match.
type Source struct {
	r *Reader
}

// OpenSource opens an HTML file as a pipeline page source.
func OpenSource(filename string) (*Source, error) {
	r, err := Open(filename)
	if err != nil {
		return nil, err
	}
	return &Source{r: r}, nil
}

// NewSource wraps an already parsed Reader.
func NewSource(r *Reader) *Source {
	return &Source{r: r}
}

// FromReader parses HTML from an io.Reader as a pipeline page source.
func FromReader(rd io.Reader) (*Source, error) {
	r, err := OpenReader(rd)
	if err != nil {
		return nil, err
	}
	return &Source{r: r}, nil
}

// Reader returns the underlying document reader.
func (s *Source) Reader() *Reader {
	return s.r
}

// PageCount returns the document's page count.
func (s *Source) PageCount() (int, error) {
	return s.r.PageCount()
}

// PageSize returns the synthetic page dimensions.
func (s *Source) PageSize(page int) (float64, float64, error) {
	if page != 0 {
		return 0, 0, fmt.Errorf("page %d out of range", page+1)
	}
	return pageWidth, pageHeight, nil
}

// Runs converts the document's synthetic lines back into glyph runs,
// one run per line, so normalization reassembles them unchanged.
func (s *Source) Runs(page int) ([]textrun.GlyphRun, error) {
	if page != 0 {
		return nil, fmt.Errorf("page %d out of range", page+1)
	}
	lines := s.r.Lines()
	runs := make([]textrun.GlyphRun, 0, len(lines))
	for _, line := range lines {
		runs = append(runs, textrun.GlyphRun{
			Text:   line.Text,
			Matrix: model.Matrix{line.FontSize, 0, 0, line.FontSize, line.X, line.Y},
		})
	}
	return runs, nil
}

// ImageOps returns no operators; HTML sources have no paint stream.
func (s *Source) ImageOps(page int) ([]graphicsstate.Op, error) {
	return nil, nil
}

// Image always fails; HTML sources expose no raster resources.
func (s *Source) Image(ref string) (*model.RasterImage, error) {
	return nil, fmt.Errorf("image %s not found", ref)
}

// Close releases the underlying reader.
func (s *Source) Close() error {
	return s.r.Close()
}
