package bestiary

import (
	"fmt"
	"sort"

	"github.com/codexforge/bestiary/internal/pdfsource"
	"github.com/codexforge/bestiary/model"
	"github.com/codexforge/bestiary/segment"
)

// Stats summarizes one extraction run.
type Stats struct {
	// Matched counts records that received an illustration.
	Matched int

	// Skipped counts records extracted without an illustration.
	Skipped int

	// Errors counts pages that could not be processed.
	Errors int
}

// Result is the outcome of a full extraction run.
type Result struct {
	// Records are the merged entity records in encounter order.
	Records []model.EntityRecord

	// Stats aggregates match and error counts for reporting.
	Stats Stats
}

// Extractor provides a fluent interface for extracting entity records
// from rulebook documents. Each configuration method returns a new
// Extractor instance, making it safe for concurrent use and allowing
// method chaining.
type Extractor struct {
	// Source
	filename string
	source   PageSource

	// Lifecycle
	ownsSource   bool // true if we opened the source and should close it
	sourceOpened bool // true if source has been opened

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error

	// Warnings accumulated during processing
	warnings []Warning
}

// clone creates a shallow copy of the Extractor with a deep copy of
// options. This ensures immutability: each chain method returns a new
// instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename:     e.filename,
		source:       e.source,
		ownsSource:   e.ownsSource,
		sourceOpened: e.sourceOpened,
		options:      e.options.clone(),
		err:          e.err,
		warnings:     append([]Warning(nil), e.warnings...),
	}
}

// ensureSource opens the page source if not already open.
func (e *Extractor) ensureSource() error {
	if e.sourceOpened {
		return nil
	}
	if e.filename == "" {
		return fmt.Errorf("no filename specified")
	}

	src, err := pdfsource.Open(e.filename)
	if err != nil {
		return fmt.Errorf("failed to open PDF: %w", err)
	}
	e.source = src
	e.ownsSource = true
	e.sourceOpened = true
	return nil
}

// Close releases resources associated with the Extractor.
// It is safe to call Close multiple times.
func (e *Extractor) Close() error {
	if e.ownsSource && e.source != nil {
		err := e.source.Close()
		e.source = nil
		e.ownsSource = false
		return err
	}
	return nil
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Pages specifies which pages to extract from (1-indexed).
// Multiple calls are cumulative.
//
// Example:
//
//	records, _, err := bestiary.Open("book.pdf").Pages(12, 13).Records()
func (e *Extractor) Pages(pages ...int) *Extractor {
	newExt := e.clone()
	newExt.options.pages = append(newExt.options.pages, pages...)
	return newExt
}

// PageRange specifies a range of pages to extract (1-indexed, inclusive).
//
// Example:
//
//	records, _, err := bestiary.Open("book.pdf").PageRange(10, 40).Records()
func (e *Extractor) PageRange(start, end int) *Extractor {
	newExt := e.clone()
	for i := start; i <= end; i++ {
		newExt.options.pages = append(newExt.options.pages, i)
	}
	return newExt
}

// ExcludeImages skips image extraction and matching entirely. Records
// are produced with empty image references.
//
// Example:
//
//	records, _, err := bestiary.Open("book.pdf").ExcludeImages().Records()
func (e *Extractor) ExcludeImages() *Extractor {
	newExt := e.clone()
	newExt.options.excludeImages = true
	return newExt
}

// DisableImagePropagation turns off the context-image fallback that
// lets records on image-less pages inherit a nearby large illustration.
// Only same-page matches are assigned.
//
// Example:
//
//	result, _, err := bestiary.Open("book.pdf").DisableImagePropagation().Extract()
func (e *Extractor) DisableImagePropagation() *Extractor {
	newExt := e.clone()
	newExt.options.disablePropagation = true
	return newExt
}

// DenyImages excludes the named records from image assignment. Names
// are compared after normalization, so "Will-o'-Wisp" and "will o wisp"
// both match. Multiple calls are cumulative.
//
// Example:
//
//	result, _, err := bestiary.Open("book.pdf").DenyImages("Tarrasque").Extract()
func (e *Extractor) DenyImages(names ...string) *Extractor {
	newExt := e.clone()
	newExt.options.imageDenyList = append(newExt.options.imageDenyList, names...)
	return newExt
}

// WithOCR enables the OCR fallback for pages that have no embedded text
// layer. Requires a source implementing PageRasterizer and a build with
// the "ocr" tag; otherwise affected pages get a warning and no text.
//
// Example:
//
//	records, warnings, err := bestiary.Open("scan.pdf").WithOCR().Records()
func (e *Extractor) WithOCR() *Extractor {
	newExt := e.clone()
	newExt.options.useOCR = true
	return newExt
}

// SourceName overrides the source label stamped onto extracted records.
// Defaults to the opened filename.
//
// Example:
//
//	records, _, err := bestiary.Open("mm-3rd-printing.pdf").
//	    SourceName("Monster Manual").
//	    Records()
func (e *Extractor) SourceName(name string) *Extractor {
	newExt := e.clone()
	newExt.options.sourceName = name
	return newExt
}

// ============================================================================
// Terminal Operations (execute extraction and return results)
// ============================================================================

// Extract runs the full pipeline and returns records together with
// aggregate statistics. This is a terminal operation that closes the
// underlying source.
//
// Returns the result, any warnings encountered during processing, and
// an error if extraction failed outright. Warnings indicate non-fatal
// issues (an unreadable page, an undecodable image) where extraction
// succeeded but results may be incomplete.
//
// Example:
//
//	result, warnings, err := bestiary.Open("book.pdf").Extract()
//	fmt.Printf("%d matched, %d skipped, %d errors\n",
//	    result.Stats.Matched, result.Stats.Skipped, result.Stats.Errors)
func (e *Extractor) Extract() (*Result, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}

	if err := e.ensureSource(); err != nil {
		return nil, nil, err
	}
	defer e.Close()

	pageIndices, err := e.resolvePages()
	if err != nil {
		return nil, nil, err
	}

	result := &Result{}

	pages := e.collectPages(pageIndices, &result.Stats)
	records := segment.Merge(e.segmentPages(pages))

	if !e.options.excludeImages {
		e.matchImages(pages, records)
	}

	for i := range records {
		if records[i].ImageRef != "" {
			result.Stats.Matched++
		} else {
			result.Stats.Skipped++
		}
	}

	result.Records = records
	return result, e.warnings, nil
}

// Records runs the full pipeline and returns just the records. This is
// a terminal operation that closes the underlying source.
//
// Example:
//
//	records, warnings, err := bestiary.Open("book.pdf").Records()
func (e *Extractor) Records() ([]model.EntityRecord, []Warning, error) {
	result, warnings, err := e.Extract()
	if err != nil {
		return nil, warnings, err
	}
	return result.Records, warnings, nil
}

// PageCount returns the total number of pages in the document.
// Note: This does NOT close the source, allowing further operations.
//
// Example:
//
//	ext := bestiary.Open("book.pdf")
//	defer ext.Close()
//	count, err := ext.PageCount()
func (e *Extractor) PageCount() (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	if err := e.ensureSource(); err != nil {
		return 0, err
	}
	return e.source.PageCount()
}

// ============================================================================
// Internal helpers
// ============================================================================

// resolvePages converts 1-indexed page numbers to 0-indexed and
// validates them. If no pages were specified, returns all pages.
func (e *Extractor) resolvePages() ([]int, error) {
	pageCount, err := e.source.PageCount()
	if err != nil {
		return nil, fmt.Errorf("failed to get page count: %w", err)
	}

	if len(e.options.pages) == 0 {
		pageIndices := make([]int, pageCount)
		for i := 0; i < pageCount; i++ {
			pageIndices[i] = i
		}
		return pageIndices, nil
	}

	seen := make(map[int]bool)
	var pageIndices []int
	for _, p := range e.options.pages {
		if p < 1 || p > pageCount {
			return nil, fmt.Errorf("page %d out of range (1-%d)", p, pageCount)
		}
		zeroIndexed := p - 1
		if !seen[zeroIndexed] {
			seen[zeroIndexed] = true
			pageIndices = append(pageIndices, zeroIndexed)
		}
	}

	sort.Ints(pageIndices)
	return pageIndices, nil
}

// sourceLabel is the Source value stamped onto records.
func (e *Extractor) sourceLabel() string {
	if e.options.sourceName != "" {
		return e.options.sourceName
	}
	return e.filename
}

func (e *Extractor) warn(code WarningCode, page int, format string, args ...any) {
	e.warnings = append(e.warnings, Warning{
		Code:    code,
		Page:    page + 1,
		Message: fmt.Sprintf(format, args...),
	})
}
