package ocr

import (
	"strings"

	"github.com/codexforge/bestiary/textrun"
)

// Synthetic geometry for recognized lines. OCR output carries no glyph
// transforms, so lines are stacked top-down at a fixed advance with a
// nominal body font size.
const (
	syntheticFontSize = 12.0
	syntheticAdvance  = 14.0
	syntheticLeftX    = 36.0
)

// SynthesizeLines converts recognized page text into text lines laid
// out top-down from the page's top edge. Blank lines are dropped. The
// geometry is approximate: segmentation works on it, but spatial image
// matching on OCR pages only sees reading-order positions.
func SynthesizeLines(text string, pageHeight float64) []textrun.TextLine {
	var lines []textrun.TextLine
	y := pageHeight - syntheticAdvance
	for _, raw := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		lines = append(lines, textrun.TextLine{
			Text:     trimmed,
			X:        syntheticLeftX,
			Y:        y,
			FontSize: syntheticFontSize,
		})
		y -= syntheticAdvance
	}
	return lines
}
