/*
Package render draws a page: the quantized sextant grid and the caption and
title bars laid over it.
*/
package render

import (
	"fmt"
	"math/rand"

	"github.com/bodgit/teletext/grid"
	"github.com/bodgit/teletext/palette"
	"github.com/bodgit/teletext/raster"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
)

// UnknownColourError is returned when a style names a colour that is not in
// the palette.
type UnknownColourError struct {
	Name string
}

func (e *UnknownColourError) Error() string {
	return fmt.Sprintf("render: unknown colour %q", e.Name)
}

// Renderer draws pages for a single layout. It is not safe for concurrent
// use.
type Renderer struct {
	layout  grid.Layout
	palette palette.Palette
	face    font.Face
	ascent  int
	rnd     *rand.Rand
}

// New returns a Renderer drawing text in f sized to one cell high. rnd
// chooses random text colours and page numbers.
func New(l grid.Layout, f *truetype.Font, rnd *rand.Rand) *Renderer {
	face := newFace(f, l.CellHeight)
	return &Renderer{
		layout:  l,
		palette: palette.Teletext,
		face:    face,
		ascent:  face.Metrics().Ascent.Ceil(),
		rnd:     rnd,
	}
}

// Layout returns the layout being drawn.
func (r *Renderer) Layout() grid.Layout {
	return r.layout
}

// Grid averages every sextant of src, quantizes it to the palette and fills
// the matching rectangle of dst. The chosen indices are returned as a Frame.
func (r *Renderer) Grid(dst, src *raster.Image) *grid.Frame {
	f := grid.NewFrame()
	for _, c := range r.layout.Cells() {
		for _, s := range c.Sextants {
			if s.Dest.Empty() {
				continue
			}
			i := r.palette.NearestIndex(palette.Average(src, s.Source))
			f.Set(c.X, c.Y, s.Position, uint8(i))
			dst.Fill(s.Dest, r.palette[i].Color)
		}
	}
	return f
}

// Paint fills dst from a previously rendered frame.
func (r *Renderer) Paint(dst *raster.Image, f *grid.Frame) {
	for _, c := range r.layout.Cells() {
		for _, s := range c.Sextants {
			if i, ok := f.At(c.X, c.Y, s.Position); ok && int(i) < len(r.palette) {
				dst.Fill(s.Dest, r.palette[i].Color)
			}
		}
	}
}
