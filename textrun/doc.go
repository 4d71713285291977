// Package textrun normalizes raw positioned glyph runs into logical text
// lines. Runs are grouped by vertical proximity in page space; each
// resulting line carries its position, dominant font size, and a header
// flag derived from font size. Output preserves encounter order, which is
// source order, not guaranteed reading order.
package textrun
