// Package spatial associates extracted raster images with the entity
// records whose names appear near them on the page. Matching is greedy
// over (record, image) pairs scored by vertical distance, with pairs
// whose name text box overlaps the image box taking priority, under a
// global one-image-per-record and one-record-per-image constraint that
// spans the whole document.
//
// Cross-page state (the global assignment sets and the carried "context"
// image) lives in an explicit Session value passed into each page's
// matching step, keeping per-document processing deterministic and
// testable.
package spatial
