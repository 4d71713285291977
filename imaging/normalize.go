package imaging

import (
	"image"

	"golang.org/x/image/draw"
)

// ToNRGBA converts any decoded image to NRGBA form, which the rest of the
// pipeline assumes. Images already in NRGBA form are returned as-is.
func ToNRGBA(src image.Image) *image.NRGBA {
	if src == nil {
		return nil
	}
	if nrgba, ok := src.(*image.NRGBA); ok {
		return nrgba
	}
	dst := image.NewNRGBA(src.Bounds())
	draw.Copy(dst, src.Bounds().Min, src, src.Bounds(), draw.Src, nil)
	return dst
}
