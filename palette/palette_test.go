package palette

import (
	"image"
	"math/rand"
	"testing"

	"github.com/bodgit/teletext/raster"
	"github.com/stretchr/testify/assert"
)

func TestTeletextOrder(t *testing.T) {
	names := make([]string, 0, len(Teletext))
	for _, c := range Teletext {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"black", "white", "red", "green", "blue", "cyan", "magenta", "yellow"}, names)
}

func TestNearestIsExactOnMembers(t *testing.T) {
	for _, c := range Teletext {
		assert.Equal(t, c, Teletext.Nearest(c.Color), c.Name)
	}
}

func TestNearest(t *testing.T) {
	tables := []struct {
		name string
		in   raster.Color
		want string
	}{
		{"black", raster.Color{R: 0, G: 0, B: 0}, "black"},
		{"white", raster.Color{R: 255, G: 255, B: 255}, "white"},
		{"dark red", raster.Color{R: 200, G: 10, B: 10}, "red"},
		{"grey leans black", raster.Color{R: 100, G: 100, B: 100}, "black"},
		{"orange", raster.Color{R: 250, G: 200, B: 20}, "yellow"},
		{"teal", raster.Color{R: 10, G: 200, B: 220}, "cyan"},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			assert.Equal(t, table.want, Teletext.Nearest(table.in).Name)
		})
	}
}

func TestNearestTieBreak(t *testing.T) {
	// Equidistant from black and red, black is defined first
	p := Palette{
		{"black", raster.Color{}},
		{"red", raster.Color{R: 200}},
	}
	assert.Equal(t, "black", p.Nearest(raster.Color{R: 100}).Name)
	assert.Equal(t, 0, p.NearestIndex(raster.Color{R: 100}))
}

func TestAverageUniform(t *testing.T) {
	m := raster.New(image.Rect(0, 0, 5, 4))
	m.Fill(m.Bounds(), raster.Color{R: 12, G: 34, B: 56})
	assert.Equal(t, raster.Color{R: 12, G: 34, B: 56}, Average(m, m.Bounds()))
}

func TestAverageTruncates(t *testing.T) {
	m := raster.New(image.Rect(0, 0, 2, 1))
	m.SetRGB(0, 0, raster.Color{R: 1, G: 255, B: 0})
	m.SetRGB(1, 0, raster.Color{R: 2, G: 0, B: 3})
	assert.Equal(t, raster.Color{R: 1, G: 127, B: 1}, Average(m, m.Bounds()))
}

func TestAverageSubRegion(t *testing.T) {
	m := raster.New(image.Rect(0, 0, 4, 4))
	m.Fill(image.Rect(2, 0, 4, 4), raster.Color{B: 200})
	assert.Equal(t, raster.Color{B: 200}, Average(m, image.Rect(2, 0, 4, 2)))
	assert.Equal(t, raster.Color{B: 100}, Average(m, m.Bounds()))
	assert.Equal(t, raster.Color{}, Average(m, image.Rect(8, 8, 9, 9)))
}

func TestLookup(t *testing.T) {
	c, ok := Teletext.Lookup("cyan")
	assert.True(t, ok)
	assert.Equal(t, raster.Color{R: 0, G: 255, B: 255}, c.Color)
	assert.Equal(t, "#00ffff", c.Hex())

	_, ok = Teletext.Lookup("orange")
	assert.False(t, ok)
}

func TestRandomExcludesBackground(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		c := Teletext.Random(rnd, "black")
		assert.NotEqual(t, "black", c.Name)
		_, ok := Teletext.Lookup(c.Name)
		assert.True(t, ok)
		seen[c.Name] = true
	}
	assert.Len(t, seen, len(Teletext)-1)
}

func TestColors(t *testing.T) {
	p := Teletext.Colors()
	assert.Len(t, p, 8)
	assert.Equal(t, 2, p.Index(raster.Color{R: 255}))
}
