package palette

import (
	"image"

	"github.com/bodgit/teletext/raster"
)

// Average returns the mean of each channel over the pixels of m within r,
// truncated towards zero. An empty region is a caller error and returns
// black.
func Average(m *raster.Image, r image.Rectangle) raster.Color {
	r = r.Intersect(m.Rect)
	n := r.Dx() * r.Dy()
	if n == 0 {
		return raster.Color{}
	}

	var sr, sg, sb int
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := m.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			sr += int(m.Pix[i+0])
			sg += int(m.Pix[i+1])
			sb += int(m.Pix[i+2])
			i += 3
		}
	}

	return raster.Color{R: uint8(sr / n), G: uint8(sg / n), B: uint8(sb / n)}
}

func sqDiff(x, y uint8) int {
	d := int(x) - int(y)
	return d * d
}

// Nearest returns the entry with the smallest sum of squared channel
// differences to c. The first such entry wins a tie.
func (p Palette) Nearest(c raster.Color) Colour {
	best, bestSum := 0, int(^uint(0)>>1)
	for i, e := range p {
		sum := sqDiff(e.R, c.R) + sqDiff(e.G, c.G) + sqDiff(e.B, c.B)
		if sum < bestSum {
			best, bestSum = i, sum
			if sum == 0 {
				break
			}
		}
	}
	return p[best]
}

// NearestIndex is like Nearest but returns the position of the entry.
func (p Palette) NearestIndex(c raster.Color) int {
	return p.Index(p.Nearest(c).Color)
}
