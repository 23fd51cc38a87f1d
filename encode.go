package teletext

import (
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"image/png"
	"io"
	"strings"

	"github.com/ericpauley/go-quantize/quantize"
)

// Format is an output image format.
type Format string

// Supported formats.
const (
	PNG Format = "png"
	GIF Format = "gif"
)

// ParseFormat returns the Format named by s.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case PNG, GIF:
		return f, nil
	default:
		return "", fmt.Errorf("teletext: unsupported format %q", s)
	}
}

// Encode writes m to w in format f. PNG output is 8-bit truecolour. GIF
// output is reduced with a median cut quantizer and is not dithered so the
// block edges stay sharp.
func Encode(w io.Writer, m image.Image, f Format) error {
	switch f {
	case PNG:
		return png.Encode(w, m)
	case GIF:
		return gif.Encode(w, m, &gif.Options{
			NumColors: 256,
			Quantizer: &quantize.MedianCutQuantizer{},
			Drawer:    draw.Src,
		})
	default:
		return fmt.Errorf("teletext: unsupported format %q", f)
	}
}

// Filename returns the conventional file name for page p.
func Filename(p *Page, f Format) string {
	return fmt.Sprintf("news-%s.%s", p.ID(), f)
}
