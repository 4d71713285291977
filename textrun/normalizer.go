package textrun

import (
	"strings"

	"github.com/codexforge/bestiary/model"
)

// GlyphRun is one raw positioned text run from a page, as supplied by the
// document-rendering collaborator. Position and size are carried entirely
// by the transform matrix active when the run was shown.
type GlyphRun struct {
	Text   string
	Matrix model.Matrix
}

// X returns the run's horizontal position in page space
func (g GlyphRun) X() float64 {
	return g.Matrix.TranslationX()
}

// Y returns the run's vertical position in page space
func (g GlyphRun) Y() float64 {
	return g.Matrix.TranslationY()
}

// FontSize returns the rendered font size derived from the transform
func (g GlyphRun) FontSize() float64 {
	return g.Matrix.VerticalScale()
}

// TextLine is one logical line assembled from glyph runs
type TextLine struct {
	// Text is the concatenated run text
	Text string

	// X, Y is the position of the line's first run in page space
	X float64
	Y float64

	// FontSize is the maximum font size among the line's runs
	FontSize float64

	// IsHeader is true when FontSize exceeds the header threshold
	IsHeader bool
}

// BBox approximates the line's bounding box in page space. Run widths are
// not available from the transform alone, so width is estimated from the
// glyph count at an average advance of half the font size.
func (l TextLine) BBox() model.BBox {
	width := float64(len(l.Text)) * l.FontSize * 0.5
	if width < l.FontSize {
		width = l.FontSize
	}
	return model.NewBBox(l.X, l.Y, width, l.FontSize)
}

// Config holds configuration for run normalization
type Config struct {
	// YTolerance is the maximum vertical distance, in page units, between
	// consecutive runs considered part of the same line (default: 2.0)
	YTolerance float64

	// HeaderFontSize is the font size above which a line is flagged as a
	// header (default: 15.0)
	HeaderFontSize float64
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		YTolerance:     2.0,
		HeaderFontSize: 15.0,
	}
}

// Normalizer groups glyph runs into text lines
type Normalizer struct {
	config Config
}

// NewNormalizer creates a normalizer with default configuration
func NewNormalizer() *Normalizer {
	return &Normalizer{config: DefaultConfig()}
}

// NewNormalizerWithConfig creates a normalizer with custom configuration
func NewNormalizerWithConfig(config Config) *Normalizer {
	return &Normalizer{config: config}
}

// Normalize groups the page's glyph runs into lines. Consecutive runs whose
// vertical positions differ by less than the tolerance are concatenated; a
// run further away flushes the current line and starts a new one. Lines
// containing only whitespace are dropped, never flushed as empty.
func (n *Normalizer) Normalize(runs []GlyphRun) []TextLine {
	var lines []TextLine
	var current []GlyphRun

	flush := func() {
		if line, ok := n.buildLine(current); ok {
			lines = append(lines, line)
		}
		current = current[:0]
	}

	for _, run := range runs {
		if len(current) > 0 {
			prevY := current[len(current)-1].Y()
			if abs(run.Y()-prevY) >= n.config.YTolerance {
				flush()
			}
		}
		current = append(current, run)
	}
	flush()

	return lines
}

// buildLine assembles one line from its runs. Returns false for
// whitespace-only lines.
func (n *Normalizer) buildLine(runs []GlyphRun) (TextLine, bool) {
	if len(runs) == 0 {
		return TextLine{}, false
	}

	var b strings.Builder
	maxSize := 0.0
	for _, run := range runs {
		b.WriteString(run.Text)
		if size := run.FontSize(); size > maxSize {
			maxSize = size
		}
	}

	text := b.String()
	if strings.TrimSpace(text) == "" {
		return TextLine{}, false
	}

	return TextLine{
		Text:     text,
		X:        runs[0].X(),
		Y:        runs[0].Y(),
		FontSize: maxSize,
		IsHeader: maxSize > n.config.HeaderFontSize,
	}, true
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
