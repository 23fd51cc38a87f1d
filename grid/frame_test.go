package grid

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFrameIsEmpty(t *testing.T) {
	f := NewFrame()
	_, ok := f.At(0, 0, TopLeft)
	assert.False(t, ok)
	_, ok = f.At(Width-1, Height-1, BottomRight)
	assert.False(t, ok)
}

func TestFrameEncodeDecode(t *testing.T) {
	f := NewFrame()
	f.Set(0, 0, TopLeft, 2)
	f.Set(0, 0, TopRight, 7)
	f.Set(39, 23, BottomRight, 5)

	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, f))
	assert.Equal(t, frameBytes, b.Len())
	assert.Equal(t, byte(0x27), b.Bytes()[0])

	decoded, err := Decode(b)
	require.NoError(t, err)
	assert.Equal(t, f, decoded)

	i, ok := decoded.At(39, 23, BottomRight)
	assert.True(t, ok)
	assert.Equal(t, uint8(5), i)
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode(bytes.NewReader(make([]byte, frameBytes-1)))
	assert.Equal(t, errNotEnough, err)

	_, err = Decode(bytes.NewReader(make([]byte, frameBytes+1)))
	assert.Equal(t, errTooMuch, err)

	bad := make([]byte, frameBytes)
	bad[10] = 0x80
	_, err = Decode(bytes.NewReader(bad))
	assert.Equal(t, errBadPalette, err)
}

func TestEncodeRejectsBadIndex(t *testing.T) {
	f := NewFrame()
	f.Set(1, 1, MiddleLeft, 9)
	assert.Equal(t, errBadPalette, Encode(new(bytes.Buffer), f))
}
