package render

import (
	"io/ioutil"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

var (
	defaultOnce sync.Once
	defaultFont *truetype.Font
	defaultErr  error
)

// DefaultFont returns Go Mono, used when no Teletext font is supplied.
func DefaultFont() (*truetype.Font, error) {
	defaultOnce.Do(func() {
		defaultFont, defaultErr = truetype.Parse(gomono.TTF)
	})
	return defaultFont, defaultErr
}

// LoadFont parses the TrueType font at path. Any monospace font works,
// MODE7GX gives the most authentic bars.
func LoadFont(path string) (*truetype.Font, error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return truetype.Parse(b)
}

func newFace(f *truetype.Font, height int) font.Face {
	return truetype.NewFace(f, &truetype.Options{
		Size:    float64(height),
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
