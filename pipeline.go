package bestiary

import (
	"github.com/codexforge/bestiary/graphicsstate"
	"github.com/codexforge/bestiary/imaging"
	"github.com/codexforge/bestiary/model"
	"github.com/codexforge/bestiary/ocr"
	"github.com/codexforge/bestiary/segment"
	"github.com/codexforge/bestiary/spatial"
	"github.com/codexforge/bestiary/textrun"
)

// pageData holds everything extracted from one page.
type pageData struct {
	index  int
	width  float64
	height float64
	lines  []textrun.TextLine
}

// collectPages reads and normalizes the text of the requested pages.
// A page that cannot be read degrades to a warning and an error count,
// never a failed run.
func (e *Extractor) collectPages(pageIndices []int, stats *Stats) []pageData {
	normalizer := textrun.NewNormalizer()

	var ocrClient *ocr.Client
	ocrTried := false

	pages := make([]pageData, 0, len(pageIndices))
	for _, idx := range pageIndices {
		width, height, err := e.source.PageSize(idx)
		if err != nil {
			// Letter-sized fallback keeps chrome filtering sane.
			width, height = 612, 792
		}

		runs, err := e.source.Runs(idx)
		if err != nil {
			e.warn(WarnPageText, idx, "reading text runs: %v", err)
			stats.Errors++
			continue
		}

		lines := normalizer.Normalize(runs)

		if len(lines) == 0 && e.options.useOCR {
			if !ocrTried {
				ocrTried = true
				client, err := ocr.New()
				if err != nil {
					e.warn(WarnOCRUnavailable, -1, "%v", err)
				} else {
					ocrClient = client
					defer ocrClient.Close()
				}
			}
			if ocrClient != nil {
				lines = e.recognizePage(ocrClient, idx, height)
			}
		}

		if len(lines) == 0 {
			e.warn(WarnNoText, idx, "page has no usable text")
		}

		pages = append(pages, pageData{
			index:  idx,
			width:  width,
			height: height,
			lines:  lines,
		})
	}
	return pages
}

// recognizePage runs the OCR fallback for one rasterizable page.
func (e *Extractor) recognizePage(client *ocr.Client, idx int, height float64) []textrun.TextLine {
	rasterizer, ok := e.source.(PageRasterizer)
	if !ok {
		e.warn(WarnOCRUnavailable, idx, "source cannot rasterize pages")
		return nil
	}
	data, err := rasterizer.RenderPage(idx)
	if err != nil {
		e.warn(WarnPageText, idx, "rendering page for OCR: %v", err)
		return nil
	}
	lines, err := client.RecognizePage(data, height)
	if err != nil {
		e.warn(WarnPageText, idx, "OCR: %v", err)
		return nil
	}
	return lines
}

// segmentPages runs record segmentation over the document's lines in
// page order.
func (e *Extractor) segmentPages(pages []pageData) []model.EntityRecord {
	var allLines []textrun.TextLine
	for _, pd := range pages {
		allLines = append(allLines, pd.lines...)
	}
	return segment.NewSegmenter().Segment(allLines, e.sourceLabel())
}

// matchImages extracts each page's image placements and assigns them to
// records by spatial proximity, carrying the matching session across
// pages so every image serves at most one record.
func (e *Extractor) matchImages(pages []pageData, records []model.EntityRecord) {
	config := spatial.DefaultConfig()
	config.DenyList = e.options.imageDenyList
	config.DisablePropagation = e.options.disablePropagation
	matcher := spatial.NewMatcher(config)

	recordPtrs := make([]*model.EntityRecord, len(records))
	for i := range records {
		recordPtrs[i] = &records[i]
	}

	collector := graphicsstate.NewCollector()
	sess := spatial.NewSession()

	for _, pd := range pages {
		ops, err := e.source.ImageOps(pd.index)
		if err != nil {
			e.warn(WarnPageImages, pd.index, "reading paint stream: %v", err)
			continue
		}

		placements := collector.Collect(ops)
		images := make([]spatial.PageImage, 0, len(placements))
		for _, pl := range placements {
			images = append(images, spatial.PageImage{
				Ref:  pl.Name,
				BBox: pl.BBox,
				Pix:  e.decodeImage(pl.Name, pd.index),
			})
		}

		sess = matcher.MatchPage(sess, spatial.Page{
			Number: pd.index,
			Width:  pd.width,
			Height: pd.height,
			Lines:  pd.lines,
			Images: images,
		}, recordPtrs)
	}
}

// decodeImage fetches and cleans one image resource. Decoding failures
// degrade to placement-only matching.
func (e *Extractor) decodeImage(ref string, page int) *model.RasterImage {
	raster, err := e.source.Image(ref)
	if err != nil {
		e.warn(WarnImageDecode, page, "image %s: %v", ref, err)
		return nil
	}
	if raster != nil && raster.Pix != nil {
		raster.Pix = imaging.RemoveBackground(raster.Pix)
	}
	return raster
}
