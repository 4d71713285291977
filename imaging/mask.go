package imaging

import "image"

// Mask-detection thresholds. Decorative PDF chrome often paints
// soft-mask silhouettes: bright near-white shapes with almost no color
// variance, or black cutouts using only a handful of distinct colors.
// Neither is content art.
const (
	maskBrightMean     = 230
	maskVarianceLimit  = 28.0
	maskDarkFraction   = 0.85
	maskUniqueColorMax = 12
)

// IsMaskSilhouette reports whether the image looks like a monochrome
// mask rather than an illustration: bright near-white with low variance,
// or predominantly black with very few unique colors.
func IsMaskSilhouette(img *image.NRGBA) bool {
	if img == nil {
		return false
	}
	w := img.Rect.Dx()
	h := img.Rect.Dy()
	if w == 0 || h == 0 {
		return false
	}

	// Sample on a coarse grid; exact statistics are not needed.
	step := maxInt(1, minInt(w, h)/64)

	var sum, sumSq float64
	dark := 0
	count := 0
	unique := make(map[uint32]struct{}, maskUniqueColorMax+1)

	for y := 0; y < h; y += step {
		for x := 0; x < w; x += step {
			r, g, b, a := pixelAt(img, x, y)
			if a < alphaThreshold {
				continue
			}
			lum := float64(r+g+b) / 3
			sum += lum
			sumSq += lum * lum
			count++
			if r <= blackThreshold && g <= blackThreshold && b <= blackThreshold {
				dark++
			}
			if len(unique) <= maskUniqueColorMax {
				// Quantize to 4 bits per channel so JPEG noise does not
				// inflate the unique color count.
				key := uint32(r>>4)<<8 | uint32(g>>4)<<4 | uint32(b>>4)
				unique[key] = struct{}{}
			}
		}
	}

	if count == 0 {
		return false
	}

	mean := sum / float64(count)
	variance := sumSq/float64(count) - mean*mean

	if mean >= maskBrightMean && variance <= maskVarianceLimit*maskVarianceLimit {
		return true
	}
	if float64(dark)/float64(count) >= maskDarkFraction && len(unique) <= maskUniqueColorMax {
		return true
	}
	return false
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
