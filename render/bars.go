package render

import (
	"fmt"
	"image"
	"image/draw"
	"strings"
	"time"

	"github.com/bodgit/teletext/grid"
	"github.com/bodgit/teletext/palette"
	"github.com/bodgit/teletext/raster"
	"github.com/mattn/go-runewidth"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Random as a text colour picks any palette colour other than the
// background.
const Random = "random"

const (
	maxPageNumber = 400
	dateLayout    = "02 January, 2006"

	// Cells of margin before the caption and after the date
	captionMargin = 2
	dateMargin    = 1
)

// Style selects the colours of a bar.
type Style struct {
	Background string `yaml:"background"`
	Text       string `yaml:"text"`
}

// DefaultStyle is black with a random text colour.
var DefaultStyle = Style{
	Background: "black",
	Text:       Random,
}

// Validate returns an UnknownColourError if s names a colour missing from p.
func (s Style) Validate(p palette.Palette) error {
	if _, ok := p.Lookup(s.Background); !ok {
		return &UnknownColourError{s.Background}
	}
	if _, ok := p.Lookup(s.Text); !ok && s.Text != Random {
		return &UnknownColourError{s.Text}
	}
	return nil
}

// DateParseError is returned when a publish date is not ISO-8601.
type DateParseError struct {
	Date string
	Err  error
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("render: invalid date %q: %v", e.Date, e.Err)
}

func (e *DateParseError) Unwrap() error { return e.Err }

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDate parses an ISO-8601 date or date and time.
func ParseDate(s string) (time.Time, error) {
	var err error
	for _, layout := range dateLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &DateParseError{s, err}
}

// FormatDate returns s reformatted as "DD Month, YYYY".
func FormatDate(s string) (string, error) {
	t, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return t.Format(dateLayout), nil
}

func (r *Renderer) colours(s Style) (bg, fg palette.Colour, err error) {
	var ok bool
	if bg, ok = r.palette.Lookup(s.Background); !ok {
		return bg, fg, &UnknownColourError{s.Background}
	}
	if s.Text == Random {
		return bg, r.palette.Random(r.rnd, bg.Name), nil
	}
	if fg, ok = r.palette.Lookup(s.Text); !ok {
		return bg, fg, &UnknownColourError{s.Text}
	}
	return bg, fg, nil
}

func (r *Renderer) text(dst draw.Image, cell image.Point, s string, c raster.Color) {
	p := r.layout.Point(cell.X, cell.Y)
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: r.face,
		Dot:  fixed.P(p.X, p.Y+r.ascent),
	}
	d.DrawString(s)
}

func (r *Renderer) bar(dst *raster.Image, rect image.Rectangle, bg palette.Colour) draw.Image {
	dst.Fill(rect, bg.Color)
	return dst.SubImage(rect).(draw.Image)
}

// TopBar draws the caption bar: a page number and the upper case source
// name on the left and the publish date on the right. Text is clipped to
// the bar.
func (r *Renderer) TopBar(dst *raster.Image, style Style, source, date string) error {
	formatted, err := FormatDate(date)
	if err != nil {
		return err
	}

	bg, fg, err := r.colours(style)
	if err != nil {
		return err
	}

	dateX := grid.Width - runewidth.StringWidth(formatted) - dateMargin
	caption := fmt.Sprintf("P%d %s", r.rnd.Intn(maxPageNumber), strings.ToUpper(source))
	if n := dateX - captionMargin - 1; n > 0 {
		caption = runewidth.Truncate(caption, n, "")
	} else {
		caption = ""
	}

	bar := r.bar(dst, r.layout.TopBar(), bg)
	r.text(bar, image.Pt(captionMargin, 0), caption, fg.Color)
	if dateX < 0 {
		dateX = 0
	}
	r.text(bar, image.Pt(dateX, 0), formatted, fg.Color)

	return nil
}

// BottomBar draws the title bar with the upper case title on its first
// line. Text is clipped to the bar.
func (r *Renderer) BottomBar(dst *raster.Image, style Style, title string) error {
	bg, fg, err := r.colours(style)
	if err != nil {
		return err
	}

	bar := r.bar(dst, r.layout.BottomBar(), bg)
	title = runewidth.Truncate(strings.ToUpper(title), grid.Width, "")
	r.text(bar, image.Pt(0, grid.Height-2), title, fg.Color)

	return nil
}
