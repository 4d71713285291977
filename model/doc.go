// Package model defines the shared data types used throughout bestiary:
// page-space geometry (points, bounding boxes, affine transforms), the
// durable EntityRecord produced by ingestion, and the transient RasterImage
// carried through image matching.
//
// Key types:
//   - [Point] - 2D point in page space
//   - [BBox] - axis-aligned bounding box
//   - [Matrix] - 2D affine transformation matrix
//   - [EntityRecord] - one extracted creature or item
//   - [RasterImage] - a placed raster image awaiting matching
package model
