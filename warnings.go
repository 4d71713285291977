package bestiary

import (
	"fmt"
	"strings"
)

// WarningCode classifies a non-fatal extraction problem.
type WarningCode string

const (
	// WarnPageText means a page's text runs could not be read; the page
	// contributed no records.
	WarnPageText WarningCode = "page-text"

	// WarnPageImages means a page's paint stream could not be read; its
	// images were skipped.
	WarnPageImages WarningCode = "page-images"

	// WarnImageDecode means an image resource could not be decoded; it
	// was matched by placement only.
	WarnImageDecode WarningCode = "image-decode"

	// WarnOCRUnavailable means OCR was requested but support is not
	// compiled in or Tesseract is missing.
	WarnOCRUnavailable WarningCode = "ocr-unavailable"

	// WarnNoText means a page had no usable text and no OCR fallback.
	WarnNoText WarningCode = "no-text"
)

// Warning is a non-fatal problem encountered during extraction.
// Extraction succeeded but results for the affected page or resource
// may be incomplete.
type Warning struct {
	// Code classifies the problem.
	Code WarningCode

	// Page is the 1-indexed page number, or 0 when not page-specific.
	Page int

	// Message describes what went wrong.
	Message string
}

// String renders the warning as "code (page N): message".
func (w Warning) String() string {
	if w.Page > 0 {
		return fmt.Sprintf("%s (page %d): %s", w.Code, w.Page, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Code, w.Message)
}

// FormatWarnings joins warnings into a single semicolon-separated string
// for logging.
func FormatWarnings(warnings []Warning) string {
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}
