/*
Package teletext renders news articles as Mode 7 Teletext pages.

Each article's photo is reduced to a 40 by 24 grid of character cells, each
split into six sextants filled with one of eight colours, then framed with a
caption bar carrying the source and date and a title bar carrying the
headline.
*/
package teletext

import (
	"io/ioutil"
	"log"
	"math/rand"
	"sync"

	"github.com/bodgit/teletext/acquire"
	"github.com/bodgit/teletext/render"
	"github.com/golang/freetype/truetype"
)

// DefaultSize is the default width and height of a page in pixels.
const DefaultSize = 512

// Options control how a page is rendered.
type Options struct {
	Size   int
	Top    render.Style
	Bottom render.Style

	// Legacy selects the old sampling and crop; see grid.Layout.
	Legacy bool
}

// DefaultOptions returns 512 pixel pages with black bars and random text
// colours.
func DefaultOptions() Options {
	return Options{
		Size:   DefaultSize,
		Top:    render.DefaultStyle,
		Bottom: render.DefaultStyle,
	}
}

// Teletext renders pages. It is safe for concurrent use.
type Teletext struct {
	acquirer *acquire.Acquirer
	font     *truetype.Font
	logger   *log.Logger

	mu  sync.Mutex
	rnd *rand.Rand
}

// New returns a Teletext fetching photos with a and drawing text with f.
// Each page draws its random choices from a source seeded from seed. A nil
// logger discards output.
func New(a *acquire.Acquirer, f *truetype.Font, seed int64, logger *log.Logger) *Teletext {
	if logger == nil {
		logger = log.New(ioutil.Discard, "", 0)
	}
	return &Teletext{
		acquirer: a,
		font:     f,
		logger:   logger,
		rnd:      rand.New(rand.NewSource(seed)),
	}
}

func (t *Teletext) pageRand() *rand.Rand {
	t.mu.Lock()
	defer t.mu.Unlock()
	return rand.New(rand.NewSource(t.rnd.Int63()))
}
