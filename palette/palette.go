/*
Package palette implements the fixed eight color Teletext palette and the
quantizer that maps arbitrary colors on to it.
*/
package palette

import (
	"image/color"
	"math/rand"

	"github.com/bodgit/teletext/raster"
	"github.com/lucasb-eyer/go-colorful"
)

// Colour is a named palette entry.
type Colour struct {
	Name string
	raster.Color
}

// Hex returns the colour in #rrggbb form.
func (c Colour) Hex() string {
	r, g, b, _ := c.RGBA()
	return colorful.Color{
		R: float64(r) / 0xffff,
		G: float64(g) / 0xffff,
		B: float64(b) / 0xffff,
	}.Hex()
}

// Palette is an ordered set of colours. Order is significant; it is the
// tie-break when two entries are equally near to a color.
type Palette []Colour

// Teletext is the Mode 7 palette.
var Teletext = Palette{
	{"black", raster.Color{R: 0, G: 0, B: 0}},
	{"white", raster.Color{R: 255, G: 255, B: 255}},
	{"red", raster.Color{R: 255, G: 0, B: 0}},
	{"green", raster.Color{R: 0, G: 255, B: 0}},
	{"blue", raster.Color{R: 0, G: 0, B: 255}},
	{"cyan", raster.Color{R: 0, G: 255, B: 255}},
	{"magenta", raster.Color{R: 255, G: 0, B: 255}},
	{"yellow", raster.Color{R: 255, G: 255, B: 0}},
}

// Lookup returns the entry with the given name.
func (p Palette) Lookup(name string) (Colour, bool) {
	for _, c := range p {
		if c.Name == name {
			return c, true
		}
	}
	return Colour{}, false
}

// Index returns the position of the entry exactly matching c, or -1.
func (p Palette) Index(c raster.Color) int {
	for i, e := range p {
		if e.Color == c {
			return i
		}
	}
	return -1
}

// Except returns a copy of the palette without the named entry.
func (p Palette) Except(name string) Palette {
	out := make(Palette, 0, len(p))
	for _, c := range p {
		if c.Name != name {
			out = append(out, c)
		}
	}
	return out
}

// Random returns an entry chosen uniformly from all entries other than the
// one named exclude.
func (p Palette) Random(rnd *rand.Rand, exclude string) Colour {
	candidates := p.Except(exclude)
	return candidates[rnd.Intn(len(candidates))]
}

// Colors returns the palette as a color.Palette, in order.
func (p Palette) Colors() color.Palette {
	out := make(color.Palette, len(p))
	for i, c := range p {
		out[i] = c.Color
	}
	return out
}
