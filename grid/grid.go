/*
Package grid implements the Mode 7 character grid.

A page is 40 characters across by 24 characters down regardless of its size
in pixels. Each character cell is ceil(size/40) pixels wide and
ceil(size/24) pixels tall so cells on the right and bottom edges are clipped
by the canvas when the size does not divide evenly. Each cell is split into
six sextants, two across and three down.

A Frame holds the palette index chosen for each sextant. It is written as
2880 bytes; a 4-bit index for each sextant, two sextants per byte, cells in
row order. The index 0xf marks a sextant that was not drawn.
*/
package grid

const (
	// Width is the number of character cells across the page.
	Width = 40
	// Height is the number of character cells down the page.
	Height = 24
	// Sextants is the number of sub-blocks within a cell.
	Sextants = 6

	numCells    = Width * Height
	numSextants = numCells * Sextants
	frameBytes  = numSextants >> 1

	// Lines occupied by the caption and title bars.
	topBarLines    = 1
	bottomBarLines = 2

	// Legacy extraction window, in source pixels.
	legacyWindowHeight = 2
	legacyWindowWidth  = 3
)

// Position identifies a sextant within a cell, in draw order.
type Position int

// Sextant positions.
const (
	TopLeft Position = iota
	TopRight
	MiddleLeft
	MiddleRight
	BottomLeft
	BottomRight
)

var positionNames = [Sextants]string{
	"top-left",
	"top-right",
	"middle-left",
	"middle-right",
	"bottom-left",
	"bottom-right",
}

func (p Position) String() string {
	if p < 0 || p >= Sextants {
		return "unknown"
	}
	return positionNames[p]
}
