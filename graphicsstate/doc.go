// Package graphicsstate tracks the affine transform state of a page's
// paint operator stream. The collector maintains the running transform
// through save/restore/transform operators and derives each raster
// image's placement box from the transform active at paint time.
package graphicsstate
