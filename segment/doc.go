// Package segment turns normalized text lines into entity records. The
// segmenter detects record boundaries from header lines and stat-block
// type lines, extracts core combat statistics, and absorbs everything else
// into free-text descriptions. The merger deduplicates records across
// documents and passes by normalized name.
//
// The heuristics here are deliberately layered: naive "starts with a size
// word" matching produces false positives all over body prose, so a
// multi-predicate type-line filter and a ban-list of prose fragments do
// the real work of suppressing them.
package segment
