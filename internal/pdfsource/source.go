package pdfsource

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	_ "golang.org/x/image/tiff"

	"github.com/codexforge/bestiary/graphicsstate"
	"github.com/codexforge/bestiary/imaging"
	"github.com/codexforge/bestiary/model"
	"github.com/codexforge/bestiary/textrun"
)

// Source reads pages from a PDF file. Page indices are zero-based.
type Source struct {
	file   *os.File
	reader *pdf.Reader
	ctx    *pdfmodel.Context
	dims   []types.Dim

	// images caches decoded resources by name, filled lazily on the
	// first Image call that misses.
	images     map[string]*model.RasterImage
	imagesDone map[int]bool
}

// Open opens the PDF at path. The file stays open until Close.
func Open(path string) (*Source, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}

	conf := pdfmodel.NewDefaultConfiguration()
	conf.ValidationMode = pdfmodel.ValidationRelaxed

	// Image extraction needs the optimized cross reference table.
	ctx, err := api.ReadValidateAndOptimize(file, conf)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("reading PDF context: %w", err)
	}

	dims, err := ctx.PageDims()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("reading page dimensions: %w", err)
	}

	return &Source{
		file:       file,
		reader:     reader,
		ctx:        ctx,
		dims:       dims,
		images:     make(map[string]*model.RasterImage),
		imagesDone: make(map[int]bool),
	}, nil
}

// Close releases the underlying file.
func (s *Source) Close() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

// PageCount returns the number of pages in the document.
func (s *Source) PageCount() (int, error) {
	return s.ctx.PageCount, nil
}

// PageSize returns the page dimensions in page units.
func (s *Source) PageSize(page int) (float64, float64, error) {
	if page < 0 || page >= len(s.dims) {
		return 0, 0, fmt.Errorf("page %d out of range", page+1)
	}
	return s.dims[page].Width, s.dims[page].Height, nil
}

// Runs returns the page's glyph runs in stream order. Each run carries
// its position and font size through the transform matrix.
func (s *Source) Runs(page int) (runs []textrun.GlyphRun, err error) {
	// ledongthuc/pdf panics on some malformed content streams.
	defer func() {
		if r := recover(); r != nil {
			runs = nil
			err = fmt.Errorf("page %d: malformed content: %v", page+1, r)
		}
	}()

	p := s.reader.Page(page + 1)
	if p.V.IsNull() {
		return nil, fmt.Errorf("page %d not found", page+1)
	}

	content := p.Content()
	runs = make([]textrun.GlyphRun, 0, len(content.Text))
	for _, t := range content.Text {
		size := t.FontSize
		if size == 0 {
			size = 12
		}
		runs = append(runs, textrun.GlyphRun{
			Text:   t.S,
			Matrix: model.Matrix{size, 0, 0, size, t.X, t.Y},
		})
	}
	return runs, nil
}

// ImageOps scans the page's content stream for the transform and paint
// operators that place images.
func (s *Source) ImageOps(page int) ([]graphicsstate.Op, error) {
	r, err := pdfcpu.ExtractPageContent(s.ctx, page+1)
	if err != nil {
		return nil, fmt.Errorf("page %d content: %w", page+1, err)
	}
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("page %d content: %w", page+1, err)
	}
	return scanContent(content), nil
}

// Image decodes the named image resource, extracting the whole
// document's images on first use.
func (s *Source) Image(ref string) (*model.RasterImage, error) {
	if img, ok := s.images[ref]; ok {
		return img, nil
	}
	s.loadImages()
	img, ok := s.images[ref]
	if !ok {
		return nil, fmt.Errorf("image %s not found", ref)
	}
	return img, nil
}

// loadImages extracts and decodes every page's image resources once.
// Pages whose extraction fails are skipped; the missing refs surface
// as not-found errors from Image.
func (s *Source) loadImages() {
	for page := 1; page <= s.ctx.PageCount; page++ {
		if s.imagesDone[page] {
			continue
		}
		s.imagesDone[page] = true

		extracted, err := pdfcpu.ExtractPageImages(s.ctx, page, false)
		if err != nil {
			continue
		}
		for _, img := range extracted {
			if img.Name == "" || s.images[img.Name] != nil {
				continue
			}
			s.images[img.Name] = decode(img)
		}
	}
}

// decode converts one extracted resource to NRGBA pixels. Undecodable
// formats keep their name and dimensions but carry no pixel data.
func decode(img pdfmodel.Image) *model.RasterImage {
	raster := &model.RasterImage{Ref: img.Name}

	data, err := io.ReadAll(img)
	if err != nil || len(data) == 0 {
		return raster
	}
	decoded, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return raster
	}

	bounds := decoded.Bounds()
	raster.Width = bounds.Dx()
	raster.Height = bounds.Dy()
	raster.Pix = imaging.ToNRGBA(decoded)
	return raster
}
