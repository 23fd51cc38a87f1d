package grid

import (
	"fmt"
	"image"
)

// InvalidSizeError is returned when a page size is not a positive number of
// pixels.
type InvalidSizeError struct {
	Size int
}

func (e *InvalidSizeError) Error() string {
	return fmt.Sprintf("grid: invalid size %d", e.Size)
}

// Sextant pairs the canvas rectangle a sextant is drawn into with the
// source rectangle its color is averaged from.
type Sextant struct {
	Position Position
	Dest     image.Rectangle
	Source   image.Rectangle
}

// Cell is a single character cell.
type Cell struct {
	X, Y     int
	Bounds   image.Rectangle
	Sextants [Sextants]Sextant
}

// Layout maps the character grid on to a square canvas.
type Layout struct {
	Size       int
	CellWidth  int
	CellHeight int

	// Legacy selects the old layout: colors are averaged from fixed 3x2
	// pixel windows in the corner of each cell and the last line of cells
	// is never drawn.
	Legacy bool
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// NewLayout returns the layout for a canvas of size by size pixels.
func NewLayout(size int, legacy bool) (Layout, error) {
	if size <= 0 {
		return Layout{}, &InvalidSizeError{size}
	}
	return Layout{
		Size:       size,
		CellWidth:  ceilDiv(size, Width),
		CellHeight: ceilDiv(size, Height),
		Legacy:     legacy,
	}, nil
}

// Bounds returns the canvas rectangle.
func (l Layout) Bounds() image.Rectangle {
	return image.Rect(0, 0, l.Size, l.Size)
}

// Point returns the canvas position of the top-left corner of the cell at
// (x, y). It is not clipped.
func (l Layout) Point(x, y int) image.Point {
	return image.Pt(x*l.CellWidth, y*l.CellHeight)
}

// Lines returns the number of lines of cells drawn by the grid pass.
func (l Layout) Lines() int {
	if l.Legacy {
		return Height - 1
	}
	return Height
}

// Cell returns the cell at (x, y) clipped to the canvas.
func (l Layout) Cell(x, y int) Cell {
	canvas := l.Bounds()

	origin := l.Point(x, y)
	corner := origin.Add(image.Pt(l.CellWidth, l.CellHeight))
	full := image.Rectangle{Min: origin, Max: corner}

	c := Cell{
		X:      x,
		Y:      y,
		Bounds: full.Intersect(canvas),
	}

	xm := origin.X + l.CellWidth/2
	yt := origin.Y + 33*l.CellHeight/100
	ym := origin.Y + 66*l.CellHeight/100

	dest := [Sextants]image.Rectangle{
		TopLeft:     image.Rect(origin.X, origin.Y, xm, yt),
		TopRight:    image.Rect(xm, origin.Y, corner.X, yt),
		MiddleLeft:  image.Rect(origin.X, yt, xm, ym),
		MiddleRight: image.Rect(xm, yt, corner.X, ym),
		BottomLeft:  image.Rect(origin.X, ym, xm, corner.Y),
		BottomRight: image.Rect(xm, ym, corner.X, corner.Y),
	}

	for i := range dest {
		s := Sextant{
			Position: Position(i),
			Dest:     dest[i].Intersect(canvas),
		}
		if l.Legacy {
			s.Source = legacyWindow(origin, i).Intersect(c.Bounds)
		} else {
			s.Source = s.Dest
		}
		if s.Source.Empty() {
			s.Source = c.Bounds
		}
		c.Sextants[i] = s
	}

	return c
}

// Windows are laid out two down by three across
func legacyWindow(origin image.Point, i int) image.Rectangle {
	row, col := i/3, i%3
	p := origin.Add(image.Pt(col*legacyWindowWidth, row*legacyWindowHeight))
	return image.Rectangle{
		Min: p,
		Max: p.Add(image.Pt(legacyWindowWidth, legacyWindowHeight)),
	}
}

// Cells returns every cell drawn by the grid pass that is at least
// partially visible, in row order.
func (l Layout) Cells() []Cell {
	cells := make([]Cell, 0, numCells)
	for y := 0; y < l.Lines(); y++ {
		for x := 0; x < Width; x++ {
			c := l.Cell(x, y)
			if c.Bounds.Empty() {
				continue
			}
			cells = append(cells, c)
		}
	}
	return cells
}

// TopBar returns the canvas rectangle covered by the caption bar.
func (l Layout) TopBar() image.Rectangle {
	r := image.Rectangle{
		Max: l.Point(Width, topBarLines),
	}
	return r.Intersect(l.Bounds())
}

// BottomBar returns the canvas rectangle covered by the title bar.
func (l Layout) BottomBar() image.Rectangle {
	r := image.Rectangle{
		Min: l.Point(0, Height-bottomBarLines),
		Max: l.Point(Width, Height),
	}
	return r.Intersect(l.Bounds())
}
