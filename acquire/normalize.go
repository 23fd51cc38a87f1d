package acquire

import (
	"image"
	_ "image/gif" // register decoders
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/bodgit/teletext/raster"
	"github.com/disintegration/gift"
)

// Decode decodes the staged file and normalizes it with Normalize.
func (s *Staged) Decode(size int, legacy bool) (*raster.Image, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, &DecodeError{s.Path, err}
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	if err != nil {
		return nil, &DecodeError{s.Path, err}
	}

	return Normalize(m, size, legacy), nil
}

// Normalize rotates m by 90 degrees counter-clockwise and reduces it to a
// size by size 3-channel raster.
//
// The largest centered square is cropped from the rotated image before it
// is resized. In legacy mode the image is instead squashed to size by size
// and the center crop, computed from the already resized dimensions, keeps
// all of it.
func Normalize(m image.Image, size int, legacy bool) *raster.Image {
	g := gift.New(gift.Rotate90())

	if legacy {
		w, h := size, size
		left, top := (w-size)/2, (h-size)/2
		g.Add(
			gift.Resize(w, h, gift.CubicResampling),
			gift.Crop(image.Rect(left, top, left+size, top+size)),
		)
	} else {
		b := g.Bounds(m.Bounds())
		side := b.Dx()
		if b.Dy() < side {
			side = b.Dy()
		}
		g.Add(
			gift.CropToSize(side, side, gift.CenterAnchor),
			gift.Resize(size, size, gift.CubicResampling),
		)
	}

	dst := image.NewNRGBA(g.Bounds(m.Bounds()))
	g.Draw(dst, m)

	out := raster.FromImage(dst)
	if out.Rect.Min != (image.Point{}) {
		out.Rect = out.Rect.Sub(out.Rect.Min)
	}
	return out
}
