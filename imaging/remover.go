package imaging

import "image"

// Border classification thresholds
const (
	// alphaThreshold below which a border sample counts as transparent
	alphaThreshold = 16

	// whiteThreshold above which all three channels count as near-white
	whiteThreshold = 215

	// blackThreshold below which all three channels count as near-black
	blackThreshold = 55

	// transparentDominance is the border fraction above which the image
	// is considered already background-free and returned unchanged
	transparentDominance = 0.9

	// uniformFraction of border samples a color bucket must reach before
	// it is accepted as the background color
	uniformFraction = 0.6

	// seedTolerance is the per-channel distance from the target color a
	// border pixel may have to seed the fill. Kept tighter than the
	// propagation tolerance so subject pixels touching the edge do not
	// start a fill of their own.
	seedTolerance = 35

	// fillTolerance is the per-channel distance within which the fill
	// propagates through interior pixels. Looser than the seed tolerance
	// so compression speckle in large uniform regions is cleared.
	fillTolerance = 70
)

// RemoveBackground detects a uniform white or black border on the image
// and removes it with a boundary-seeded flood fill, zeroing the alpha of
// background pixels. The input is returned untouched when the border is
// already mostly transparent or no uniform border color is found.
func RemoveBackground(img *image.NRGBA) *image.NRGBA {
	if img == nil {
		return nil
	}
	w := img.Rect.Dx()
	h := img.Rect.Dy()
	if w == 0 || h == 0 {
		return img
	}

	target, ok := detectBorderColor(img)
	if !ok {
		return img
	}

	out := image.NewNRGBA(img.Rect)
	copy(out.Pix, img.Pix)
	floodFill(out, target)
	return out
}

// rgb is a plain color triple used for border averaging
type rgb struct {
	r, g, b int
}

// detectBorderColor samples the image border (top and bottom rows in
// full, left and right columns) and classifies samples into transparent,
// near-white, and near-black buckets. Returns the dominant background
// color, or false when transparency dominates or no bucket is uniform
// enough.
func detectBorderColor(img *image.NRGBA) (rgb, bool) {
	w := img.Rect.Dx()
	h := img.Rect.Dy()

	total := 0
	transparent := 0
	whiteCount := 0
	blackCount := 0
	var whiteSum rgb

	sample := func(x, y int) {
		total++
		r, g, b, a := pixelAt(img, x, y)
		if a < alphaThreshold {
			transparent++
			return
		}
		if r >= whiteThreshold && g >= whiteThreshold && b >= whiteThreshold {
			whiteCount++
			whiteSum.r += r
			whiteSum.g += g
			whiteSum.b += b
			return
		}
		if r <= blackThreshold && g <= blackThreshold && b <= blackThreshold {
			blackCount++
		}
	}

	for x := 0; x < w; x++ {
		sample(x, 0)
		sample(x, h-1)
	}
	for y := 1; y < h-1; y++ {
		sample(0, y)
		sample(w-1, y)
	}

	if total == 0 {
		return rgb{}, false
	}
	if float64(transparent)/float64(total) > transparentDominance {
		return rgb{}, false
	}
	if float64(whiteCount)/float64(total) >= uniformFraction {
		return rgb{
			r: whiteSum.r / whiteCount,
			g: whiteSum.g / whiteCount,
			b: whiteSum.b / whiteCount,
		}, true
	}
	if float64(blackCount)/float64(total) >= uniformFraction {
		return rgb{}, true
	}
	return rgb{}, false
}

// floodFill runs a breadth-first fill seeded from every border pixel near
// the target color, marking visited pixels fully transparent. Seeding is
// stricter than propagation (see seedTolerance, fillTolerance).
func floodFill(img *image.NRGBA, target rgb) {
	w := img.Rect.Dx()
	h := img.Rect.Dy()

	visited := make([]bool, w*h)
	queue := make([][2]int, 0, 2*(w+h))

	trySeed := func(x, y int) {
		if visited[y*w+x] {
			return
		}
		if withinTolerance(img, x, y, target, seedTolerance) {
			visited[y*w+x] = true
			queue = append(queue, [2]int{x, y})
		}
	}

	for x := 0; x < w; x++ {
		trySeed(x, 0)
		trySeed(x, h-1)
	}
	for y := 0; y < h; y++ {
		trySeed(0, y)
		trySeed(w-1, y)
	}

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		x, y := p[0], p[1]
		clearPixel(img, x, y)

		for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			nx, ny := x+d[0], y+d[1]
			if nx < 0 || ny < 0 || nx >= w || ny >= h || visited[ny*w+nx] {
				continue
			}
			if withinTolerance(img, nx, ny, target, fillTolerance) {
				visited[ny*w+nx] = true
				queue = append(queue, [2]int{nx, ny})
			}
		}
	}
}

// withinTolerance reports whether the pixel is within the per-channel
// tolerance of the target color. Already-transparent pixels propagate
// freely so interior holes do not stop the fill.
func withinTolerance(img *image.NRGBA, x, y int, target rgb, tolerance int) bool {
	r, g, b, a := pixelAt(img, x, y)
	if a < alphaThreshold {
		return true
	}
	return absInt(r-target.r) <= tolerance &&
		absInt(g-target.g) <= tolerance &&
		absInt(b-target.b) <= tolerance
}

func pixelAt(img *image.NRGBA, x, y int) (r, g, b, a int) {
	i := img.PixOffset(img.Rect.Min.X+x, img.Rect.Min.Y+y)
	return int(img.Pix[i]), int(img.Pix[i+1]), int(img.Pix[i+2]), int(img.Pix[i+3])
}

func clearPixel(img *image.NRGBA, x, y int) {
	i := img.PixOffset(img.Rect.Min.X+x, img.Rect.Min.Y+y)
	img.Pix[i+3] = 0
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
