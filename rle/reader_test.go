package rle

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecoderSingleToken(t *testing.T) {
	d := NewDecoder([]byte("16:1"))

	out := make([]byte, 16)
	require.True(t, d.Next(out))
	assert.Equal(t, bytes.Repeat([]byte{1}, 16), out)

	assert.False(t, d.Next(out))
	assert.NoError(t, d.Err())
}

func TestDecoderTwoRuns(t *testing.T) {
	d := NewDecoder([]byte("8:0 8:1"))

	out := make([]byte, 16)
	require.True(t, d.Next(out))
	assert.Equal(t, append(bytes.Repeat([]byte{0}, 8), bytes.Repeat([]byte{1}, 8)...), out)
}

func TestDecoderRunSpansFrames(t *testing.T) {
	// One token covering two and a half frames, then enough to finish the
	// third.
	d := NewDecoder([]byte("20:1 4:0"))

	out := make([]byte, 8)

	require.True(t, d.Next(out))
	assert.Equal(t, bytes.Repeat([]byte{1}, 8), out)

	require.True(t, d.Next(out))
	assert.Equal(t, bytes.Repeat([]byte{1}, 8), out)

	require.True(t, d.Next(out))
	assert.Equal(t, append(bytes.Repeat([]byte{1}, 4), bytes.Repeat([]byte{0}, 4)...), out)

	assert.False(t, d.Next(out))
	assert.NoError(t, d.Err())
}

func TestDecoderExactMultiple(t *testing.T) {
	// Total run length 48 over 16 pixel frames: exactly three frames, then
	// clean exhaustion.
	d := NewDecoder([]byte("10:1 6:0 16:1 10:0 6:1"))

	var got []byte
	out := make([]byte, 16)

	frames := 0
	for d.Next(out) {
		got = append(got, out...)
		frames++
	}

	assert.Equal(t, 3, frames)
	assert.NoError(t, d.Err())

	var want []byte
	want = append(want, bytes.Repeat([]byte{1}, 10)...)
	want = append(want, bytes.Repeat([]byte{0}, 6)...)
	want = append(want, bytes.Repeat([]byte{1}, 16)...)
	want = append(want, bytes.Repeat([]byte{0}, 10)...)
	want = append(want, bytes.Repeat([]byte{1}, 6)...)
	assert.Equal(t, want, got)
}

func TestDecoderWhitespace(t *testing.T) {
	d := NewDecoder([]byte("4:1 \t\n 4:0\n\n8:1"))

	out := make([]byte, 16)
	require.True(t, d.Next(out))
	assert.Equal(t, byte(1), out[0])
	assert.Equal(t, byte(0), out[4])
	assert.Equal(t, byte(1), out[8])
}

func TestDecoderZeroLengthRuns(t *testing.T) {
	// A token with no digits is a zero length run, as is an explicit 0.
	d := NewDecoder([]byte(":1 0:0 4:1"))

	out := make([]byte, 4)
	require.True(t, d.Next(out))
	assert.Equal(t, []byte{1, 1, 1, 1}, out)
}

func TestDecoderMalformed(t *testing.T) {
	tests := []struct {
		name   string
		stream string
		err    error
	}{
		{"missing separator", "5x0", ErrMissingSeparator},
		{"no separator at end", "5", ErrMissingSeparator},
		{"bad bit", "5:2", ErrBadBit},
		{"separator then end", "5:", ErrBadBit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDecoder([]byte(tt.stream))
			assert.False(t, d.Next(make([]byte, 8)))
			assert.Equal(t, tt.err, d.Err())

			// The decoder stays failed.
			assert.False(t, d.Next(make([]byte, 8)))
		})
	}
}

func TestDecoderHugeRunLength(t *testing.T) {
	// A run length that overflows int must fail decoding, not wrap to a
	// negative count and corrupt the output position.
	d := NewDecoder([]byte("18446744073709551615:1 5:0"))

	out := make([]byte, 4)
	assert.False(t, d.Next(out))
	assert.Equal(t, ErrRunTooLong, d.Err())

	d = NewDecoder([]byte(strings.Repeat("9", 40) + ":1"))
	assert.False(t, d.Next(out))
	assert.Equal(t, ErrRunTooLong, d.Err())
}

func TestDecoderEmptyStream(t *testing.T) {
	d := NewDecoder(nil)
	assert.False(t, d.Next(make([]byte, 8)))
	assert.NoError(t, d.Err())
}

func TestDecoderTruncatedStream(t *testing.T) {
	// Only half a frame's worth of pixels.
	d := NewDecoder([]byte("4:1"))
	assert.False(t, d.Next(make([]byte, 8)))
	assert.NoError(t, d.Err())
}

func TestDecoderReset(t *testing.T) {
	d := NewDecoder([]byte("12:1"))

	out := make([]byte, 8)
	require.True(t, d.Next(out))
	require.False(t, d.Next(out))

	d.Reset()

	require.True(t, d.Next(out))
	assert.Equal(t, bytes.Repeat([]byte{1}, 8), out)
}

func TestDecoderLongRun(t *testing.T) {
	d := NewDecoder([]byte(strings.Repeat("1024:1 ", 4)))

	out := make([]byte, 4096)
	require.True(t, d.Next(out))
	assert.Equal(t, bytes.Repeat([]byte{1}, 4096), out)
}
