package teletext

import (
	"context"
	"image"

	"github.com/bodgit/teletext/grid"
	"github.com/bodgit/teletext/palette"
	"github.com/bodgit/teletext/raster"
	"github.com/bodgit/teletext/render"
	"github.com/google/uuid"
)

// State is a step in rendering a page.
type State int

// Page states, in order.
const (
	Acquiring State = iota
	RenderingGrid
	RenderingBars
	Cleanup
	Ready
)

var stateNames = [...]string{
	"acquiring",
	"rendering grid",
	"rendering bars",
	"cleanup",
	"ready",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Page is a rendered article.
type Page struct {
	id      uuid.UUID
	article Article
	layout  grid.Layout
	state   State

	sha1   string
	canvas *raster.Image
	frame  *grid.Frame
}

// ID returns the unique identifier generated for the page.
func (p *Page) ID() uuid.UUID { return p.id }

// Article returns the article the page was rendered from.
func (p *Page) Article() Article { return p.article }

// Size returns the width and height of the page in pixels.
func (p *Page) Size() int { return p.layout.Size }

// State returns the current state of the page.
func (p *Page) State() State { return p.state }

// SourceSHA1 returns the hex SHA-1 digest of the source photo.
func (p *Page) SourceSHA1() string { return p.sha1 }

// Image returns the finished page. It is always Size by Size pixels with
// three color channels.
func (p *Page) Image() image.Image { return p.canvas }

// Frame returns the palette index chosen for each sextant.
func (p *Page) Frame() *grid.Frame { return p.frame }

func (t *Teletext) setState(p *Page, s State) {
	p.state = s
	t.logger.Printf("Page %s: %s\n", p.id, s)
}

// Render renders a page for article a. It either returns a complete page
// or an error, never a partially drawn page.
//
// The size and bar colours are checked before anything is fetched. The staged photo is
// removed whether or not rendering succeeds; failing to remove it is logged
// and otherwise ignored.
func (t *Teletext) Render(ctx context.Context, a Article, opts Options) (*Page, error) {
	layout, err := grid.NewLayout(opts.Size, opts.Legacy)
	if err != nil {
		return nil, err
	}

	for _, s := range []render.Style{opts.Top, opts.Bottom} {
		if err := s.Validate(palette.Teletext); err != nil {
			return nil, err
		}
	}

	p := &Page{
		id:      uuid.New(),
		article: a,
		layout:  layout,
	}

	t.setState(p, Acquiring)
	staged, err := t.acquirer.Stage(ctx, a.ImageURL)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := staged.Release(); err != nil {
			t.logger.Printf("Page %s: %v\n", p.id, err)
		}
	}()
	p.sha1 = staged.SHA1

	src, err := staged.Decode(layout.Size, layout.Legacy)
	if err != nil {
		return nil, err
	}

	r := render.New(layout, t.font, t.pageRand())
	canvas := raster.New(layout.Bounds())

	t.setState(p, RenderingGrid)
	frame := r.Grid(canvas, src)

	t.setState(p, RenderingBars)
	if err := r.TopBar(canvas, opts.Top, a.Source.Name, a.Date); err != nil {
		return nil, err
	}
	if err := r.BottomBar(canvas, opts.Bottom, a.Title); err != nil {
		return nil, err
	}

	t.setState(p, Cleanup)
	if err := staged.Release(); err != nil {
		t.logger.Printf("Page %s: %v\n", p.id, err)
	}

	p.canvas, p.frame = canvas, frame
	t.setState(p, Ready)

	return p, nil
}
