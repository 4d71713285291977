package model

import "image"

// RasterImage is a raster extracted from one page together with its
// placement in page space. It lives only for the duration of image
// matching on that page; once a record claims it (or nobody does) the
// pixel data is either persisted by the driver or dropped.
type RasterImage struct {
	// Ref is the image's stable reference (resource name or export path)
	Ref string

	// Width and Height are the intrinsic pixel dimensions
	Width  int
	Height int

	// X, Y anchor the placement box in page space
	X float64
	Y float64

	// DisplayWidth and DisplayHeight are the rendered dimensions on the page
	DisplayWidth  float64
	DisplayHeight float64

	// Pix is the decoded pixel data in NRGBA form
	Pix *image.NRGBA
}

// Bounds returns the placement bounding box in page space
func (ri *RasterImage) Bounds() BBox {
	return BBox{X: ri.X, Y: ri.Y, Width: ri.DisplayWidth, Height: ri.DisplayHeight}
}
