/*
Package raster implements a 3-channel RGB image with no alpha channel.

Every pixel is stored as three bytes so an image is always fully opaque;
anything drawn into it has its alpha discarded. The PNG encoder writes such
an image as 8-bit truecolour.
*/
package raster

import (
	"image"
	"image/color"
	"image/draw"
)

const bytesPerPixel = 3

// Color is a 24-bit RGB color. It implements the color.Color interface.
type Color struct {
	R, G, B uint8
}

// RGBA implements color.Color. Alpha is always fully opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

func toColor(c color.Color) Color {
	if c, ok := c.(Color); ok {
		return c
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{n.R, n.G, n.B}
}

// Image is an in-memory image whose At method returns Color values.
type Image struct {
	// Pix holds the image's pixels, in R, G, B order. The pixel at
	// (x, y) starts at Pix[(y-Rect.Min.Y)*Stride + (x-Rect.Min.X)*3].
	Pix []uint8
	// Stride is the Pix stride (in bytes) between vertically adjacent pixels.
	Stride int
	// Rect is the image's bounds.
	Rect image.Rectangle
}

var _ draw.Image = (*Image)(nil)

// New returns a new Image with the given bounds, filled with black.
func New(r image.Rectangle) *Image {
	return &Image{
		Pix:    make([]uint8, r.Dx()*r.Dy()*bytesPerPixel),
		Stride: r.Dx() * bytesPerPixel,
		Rect:   r,
	}
}

// FromImage returns a copy of m converted to 3-channel color.
func FromImage(m image.Image) *Image {
	b := m.Bounds()
	dst := New(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.SetRGB(x, y, toColor(m.At(x, y)))
		}
	}
	return dst
}

// ColorModel implements image.Image. Every pixel is opaque so reporting
// color.RGBAModel is exact and lets encoders pick 8-bit output.
func (p *Image) ColorModel() color.Model { return color.RGBAModel }

// Bounds implements image.Image.
func (p *Image) Bounds() image.Rectangle { return p.Rect }

// At implements image.Image.
func (p *Image) At(x, y int) color.Color {
	return p.RGBAt(x, y)
}

// RGBAt returns the Color of the pixel at (x, y).
func (p *Image) RGBAt(x, y int) Color {
	if !(image.Point{x, y}.In(p.Rect)) {
		return Color{}
	}
	i := p.PixOffset(x, y)
	s := p.Pix[i : i+bytesPerPixel : i+bytesPerPixel]
	return Color{s[0], s[1], s[2]}
}

// PixOffset returns the index of the first element of Pix that corresponds
// to the pixel at (x, y).
func (p *Image) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*bytesPerPixel
}

// Set implements draw.Image.
func (p *Image) Set(x, y int, c color.Color) {
	p.SetRGB(x, y, toColor(c))
}

// SetRGB sets the pixel at (x, y) to c.
func (p *Image) SetRGB(x, y int, c Color) {
	if !(image.Point{x, y}.In(p.Rect)) {
		return
	}
	i := p.PixOffset(x, y)
	s := p.Pix[i : i+bytesPerPixel : i+bytesPerPixel]
	s[0], s[1], s[2] = c.R, c.G, c.B
}

// Fill sets every pixel of r that lies within the image to c.
func (p *Image) Fill(r image.Rectangle, c Color) {
	r = r.Intersect(p.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := p.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			p.Pix[i+0], p.Pix[i+1], p.Pix[i+2] = c.R, c.G, c.B
			i += bytesPerPixel
		}
	}
}

// SubImage returns an image representing the portion of the image p visible
// through r. The returned value shares pixels with the original image.
func (p *Image) SubImage(r image.Rectangle) image.Image {
	r = r.Intersect(p.Rect)
	// If r1 and r2 are Rectangles, r1.Intersect(r2) is not guaranteed to
	// be inside either r1 or r2 if the intersection is empty. Without
	// explicitly checking for this, the Pix[i:] expression below can
	// panic.
	if r.Empty() {
		return &Image{}
	}
	i := p.PixOffset(r.Min.X, r.Min.Y)
	return &Image{
		Pix:    p.Pix[i:],
		Stride: p.Stride,
		Rect:   r,
	}
}

// Opaque implements the Opaque method used by the image encoders. It is
// always true.
func (p *Image) Opaque() bool { return true }
