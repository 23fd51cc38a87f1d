package grid

import (
	"errors"
	"io"
)

// Empty is the index recorded for a sextant that was not drawn.
const Empty = 0x0f

// Indices above this are not valid palette entries.
const maxIndex = 7

var (
	errNotEnough  = errors.New("grid: not enough frame data")
	errTooMuch    = errors.New("grid: too much frame data")
	errBadPalette = errors.New("grid: invalid palette index")
)

// Frame records the palette index of every sextant on a page.
type Frame struct {
	index [numSextants]uint8
}

// NewFrame returns a frame with every sextant marked Empty.
func NewFrame() *Frame {
	f := new(Frame)
	for i := range f.index {
		f.index[i] = Empty
	}
	return f
}

func offset(x, y int, p Position) int {
	return (y*Width+x)*Sextants + int(p)
}

// Set records index i for the sextant p of the cell at (x, y).
func (f *Frame) Set(x, y int, p Position, i uint8) {
	f.index[offset(x, y, p)] = i
}

// At returns the index recorded for the sextant p of the cell at (x, y) and
// whether it was drawn.
func (f *Frame) At(x, y int, p Position) (uint8, bool) {
	i := f.index[offset(x, y, p)]
	return i, i != Empty
}

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

func upperNibble(b byte) byte {
	return b & 0xf0
}

func lowerNibble(b byte) byte {
	return b & 0x0f
}

func validIndex(i byte) bool {
	return i <= maxIndex || i == Empty
}

// Decode reads a frame from r.
func Decode(r io.Reader) (*Frame, error) {
	var tmp [frameBytes]byte
	if err := readFull(r, tmp[:]); err != nil {
		if err != io.ErrUnexpectedEOF {
			return nil, err
		}
		return nil, errNotEnough
	}

	if n, err := r.Read(tmp[:1]); n != 0 || (err != io.EOF && err != io.ErrUnexpectedEOF) {
		if err != nil {
			return nil, err
		}
		return nil, errTooMuch
	}

	f := new(Frame)
	for i, b := range tmp {
		hi, lo := upperNibble(b)>>4, lowerNibble(b)
		if !validIndex(hi) || !validIndex(lo) {
			return nil, errBadPalette
		}
		f.index[i<<1+0] = hi
		f.index[i<<1+1] = lo
	}

	return f, nil
}

// Encode writes the frame f to w.
func Encode(w io.Writer, f *Frame) error {
	var tmp [frameBytes]byte
	for i := range tmp {
		hi, lo := f.index[i<<1+0], f.index[i<<1+1]
		if !validIndex(hi) || !validIndex(lo) {
			return errBadPalette
		}
		tmp[i] = hi&0x0f<<4 | lo&0x0f
	}
	_, err := w.Write(tmp[:])
	return err
}
