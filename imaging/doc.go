// Package imaging provides raster post-processing for extracted
// illustrations: uniform-border detection with flood-fill background
// removal, near-monochrome mask detection, and pixel format
// normalization. All functions are pure with respect to their inputs;
// when nothing can be done confidently the input image is returned
// unchanged rather than guessed at.
package imaging
