package render

import (
	"errors"
	"image"
	"math/rand"
	"testing"

	"github.com/bodgit/teletext/grid"
	"github.com/bodgit/teletext/palette"
	"github.com/bodgit/teletext/raster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRenderer(t *testing.T, size int, legacy bool, seed int64) *Renderer {
	l, err := grid.NewLayout(size, legacy)
	require.NoError(t, err)
	f, err := DefaultFont()
	require.NoError(t, err)
	return New(l, f, rand.New(rand.NewSource(seed)))
}

func noise(size int, seed int64) *raster.Image {
	rnd := rand.New(rand.NewSource(seed))
	m := raster.New(image.Rect(0, 0, size, size))
	rnd.Read(m.Pix)
	return m
}

func inPalette(c raster.Color) bool {
	return palette.Teletext.Index(c) >= 0
}

func TestGridUniformRed(t *testing.T) {
	for _, legacy := range []bool{false, true} {
		r := newRenderer(t, 96, legacy, 1)
		src := raster.New(image.Rect(0, 0, 96, 96))
		src.Fill(src.Bounds(), raster.Color{R: 250, G: 20, B: 5})

		dst := raster.New(src.Bounds())
		f := r.Grid(dst, src)

		for _, c := range r.Layout().Cells() {
			for _, s := range c.Sextants {
				i, ok := f.At(c.X, c.Y, s.Position)
				if s.Dest.Empty() {
					assert.False(t, ok)
					continue
				}
				require.True(t, ok)
				assert.Equal(t, "red", palette.Teletext[i].Name)
			}
		}

		lines := r.Layout().Lines() * r.Layout().CellHeight
		for y := 0; y < lines; y++ {
			for x := 0; x < 96; x++ {
				require.Equal(t, raster.Color{R: 0xff}, dst.RGBAt(x, y), "legacy=%v (%d, %d)", legacy, x, y)
			}
		}
	}
}

func TestGridOnlyPaletteColours(t *testing.T) {
	for _, size := range []int{16, 100, 257} {
		r := newRenderer(t, size, false, 1)
		dst := raster.New(image.Rect(0, 0, size, size))
		r.Grid(dst, noise(size, int64(size)))

		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				require.True(t, inPalette(dst.RGBAt(x, y)), "size %d (%d, %d)", size, x, y)
			}
		}
	}
}

func TestGridFollowsSource(t *testing.T) {
	r := newRenderer(t, 240, false, 1)
	src := raster.New(image.Rect(0, 0, 240, 240))
	src.Fill(image.Rect(120, 0, 240, 240), raster.Color{G: 0xff})

	dst := raster.New(src.Bounds())
	r.Grid(dst, src)
	assert.Equal(t, raster.Color{}, dst.RGBAt(10, 100))
	assert.Equal(t, raster.Color{G: 0xff}, dst.RGBAt(200, 100))
}

func TestPaintMatchesGrid(t *testing.T) {
	r := newRenderer(t, 128, false, 1)
	src := noise(128, 7)

	want := raster.New(src.Bounds())
	f := r.Grid(want, src)

	got := raster.New(src.Bounds())
	r.Paint(got, f)
	assert.Equal(t, want.Pix, got.Pix)
}

func TestTopBar(t *testing.T) {
	r := newRenderer(t, 480, false, 1)
	dst := raster.New(image.Rect(0, 0, 480, 480))
	dst.Fill(dst.Bounds(), raster.Color{R: 0xff})

	err := r.TopBar(dst, Style{Background: "blue", Text: "yellow"}, "bbc news", "2023-03-05T10:00:00Z")
	require.NoError(t, err)

	bar := r.Layout().TopBar()
	assert.Equal(t, raster.Color{B: 0xff}, dst.RGBAt(0, 0))
	assert.Equal(t, raster.Color{R: 0xff}, dst.RGBAt(0, bar.Max.Y))

	var text int
	for y := bar.Min.Y; y < bar.Max.Y; y++ {
		for x := bar.Min.X; x < bar.Max.X; x++ {
			if dst.RGBAt(x, y) != (raster.Color{B: 0xff}) {
				text++
			}
		}
	}
	assert.NotZero(t, text)
}

func TestTopBarInvalidDate(t *testing.T) {
	r := newRenderer(t, 64, false, 1)
	dst := raster.New(image.Rect(0, 0, 64, 64))

	err := r.TopBar(dst, DefaultStyle, "source", "last tuesday")
	var target *DateParseError
	require.True(t, errors.As(err, &target))
	assert.Equal(t, "last tuesday", target.Date)
	assert.Equal(t, make([]uint8, len(dst.Pix)), dst.Pix)
}

func TestBottomBar(t *testing.T) {
	r := newRenderer(t, 480, false, 1)
	dst := raster.New(image.Rect(0, 0, 480, 480))
	dst.Fill(dst.Bounds(), raster.Color{R: 0xff})

	require.NoError(t, r.BottomBar(dst, Style{Background: "white", Text: "black"}, "Test"))

	bar := r.Layout().BottomBar()
	assert.Equal(t, raster.Color{R: 0xff}, dst.RGBAt(0, bar.Min.Y-1))
	assert.Equal(t, raster.Color{R: 0xff, G: 0xff, B: 0xff}, dst.RGBAt(479, 479))
}

func TestBarsOnTinyCanvas(t *testing.T) {
	r := newRenderer(t, 16, false, 1)
	dst := raster.New(image.Rect(0, 0, 16, 16))
	assert.NoError(t, r.TopBar(dst, DefaultStyle, "a very long source name indeed", "2020-01-01"))
	assert.NoError(t, r.BottomBar(dst, DefaultStyle, "Test"))
	assert.Equal(t, image.Rect(0, 0, 16, 16), dst.Bounds())
}

func TestUnknownColour(t *testing.T) {
	r := newRenderer(t, 64, false, 1)
	dst := raster.New(image.Rect(0, 0, 64, 64))

	var target *UnknownColourError
	err := r.BottomBar(dst, Style{Background: "orange", Text: Random}, "x")
	require.True(t, errors.As(err, &target))
	assert.Equal(t, "orange", target.Name)

	err = r.BottomBar(dst, Style{Background: "black", Text: "mauve"}, "x")
	require.True(t, errors.As(err, &target))
	assert.Equal(t, "mauve", target.Name)
}

func TestRandomTextColour(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		r := newRenderer(t, 64, false, seed)
		for _, bg := range palette.Teletext {
			gotBg, fg, err := r.colours(Style{Background: bg.Name, Text: Random})
			require.NoError(t, err)
			assert.Equal(t, bg, gotBg)
			assert.NotEqual(t, bg.Name, fg.Name)
		}
	}
}

func TestRandomIsSeeded(t *testing.T) {
	a, b := newRenderer(t, 64, false, 42), newRenderer(t, 64, false, 42)
	for i := 0; i < 10; i++ {
		_, fa, _ := a.colours(DefaultStyle)
		_, fb, _ := b.colours(DefaultStyle)
		assert.Equal(t, fa, fb)
	}
}

func TestFormatDate(t *testing.T) {
	tables := []struct {
		in, want string
	}{
		{"2023-03-05T10:00:00Z", "05 March, 2023"},
		{"2023-03-05T10:00:00.123456Z", "05 March, 2023"},
		{"2023-03-05T23:30:00+01:00", "05 March, 2023"},
		{"2023-03-05T23:30:00+0100", "05 March, 2023"},
		{"2021-12-31T08:15:00", "31 December, 2021"},
		{"2021-12-31T08:15", "31 December, 2021"},
		{"2020-02-29", "29 February, 2020"},
	}

	for _, table := range tables {
		got, err := FormatDate(table.in)
		require.NoError(t, err, table.in)
		assert.Equal(t, table.want, got)
	}

	_, err := FormatDate("05/03/2023")
	var target *DateParseError
	assert.True(t, errors.As(err, &target))
}

func TestStyleValidate(t *testing.T) {
	assert.NoError(t, DefaultStyle.Validate(palette.Teletext))
	assert.NoError(t, Style{Background: "blue", Text: "yellow"}.Validate(palette.Teletext))

	var target *UnknownColourError
	require.True(t, errors.As(Style{Background: Random, Text: "white"}.Validate(palette.Teletext), &target))
	assert.Equal(t, Random, target.Name)
	require.True(t, errors.As(Style{Background: "black", Text: "mauve"}.Validate(palette.Teletext), &target))
	assert.Equal(t, "mauve", target.Name)
}
