package bitreel

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitreel/bitreel/frame"
)

// fakeClock advances by a fixed amount per Now call, simulating per-frame
// work time, and records every sleep.
type fakeClock struct {
	now    time.Time
	step   time.Duration
	sleeps []time.Duration
}

func (c *fakeClock) Now() time.Time {
	c.now = c.now.Add(c.step)
	return c.now
}

func (c *fakeClock) Sleep(d time.Duration) {
	c.sleeps = append(c.sleeps, d)
}

type recordingSink struct {
	frames [][]byte
	width  int
	height int
	err    error
}

func (s *recordingSink) Render(packed []byte, width, height int) error {
	if s.err != nil {
		return s.err
	}
	s.frames = append(s.frames, append([]byte(nil), packed...))
	s.width = width
	s.height = height
	return nil
}

func TestPlayerPlaysAllFrames(t *testing.T) {
	g := frame.Geometry{Width: 2, Height: 8}
	sink := &recordingSink{}

	// Three 16 pixel frames: all on, all off, all on.
	p, err := NewPlayer([]byte("16:1 16:0 16:1"), g, 12, sink, &fakeClock{}, nil)
	require.NoError(t, err)

	frames, err := p.Play()
	require.NoError(t, err)
	assert.Equal(t, 3, frames)

	require.Len(t, sink.frames, 3)
	assert.Equal(t, []byte{0xff, 0xff}, sink.frames[0])
	assert.Equal(t, []byte{0x00, 0x00}, sink.frames[1])
	assert.Equal(t, []byte{0xff, 0xff}, sink.frames[2])
	assert.Equal(t, 2, sink.width)
	assert.Equal(t, 8, sink.height)
}

func TestPlayerRowMajorMapping(t *testing.T) {
	// First eight pixels clear, next eight lit: in row-major order on a
	// 2 wide frame that is the top four rows clear and the bottom four
	// lit, so each column byte is 0xf0.
	g := frame.Geometry{Width: 2, Height: 8}
	sink := &recordingSink{}

	p, err := NewPlayer([]byte("8:0 8:1"), g, 12, sink, &fakeClock{}, nil)
	require.NoError(t, err)

	_, err = p.Play()
	require.NoError(t, err)

	require.Len(t, sink.frames, 1)
	assert.Equal(t, []byte{0xf0, 0xf0}, sink.frames[0])
}

func TestPlayerStopsOnTruncatedStream(t *testing.T) {
	g := frame.Geometry{Width: 2, Height: 8}
	sink := &recordingSink{}

	// One full frame then half of another.
	p, err := NewPlayer([]byte("16:1 8:0"), g, 12, sink, &fakeClock{}, nil)
	require.NoError(t, err)

	frames, err := p.Play()
	require.NoError(t, err)
	assert.Equal(t, 1, frames)
	assert.Len(t, sink.frames, 1)
}

func TestPlayerStopsOnMalformedStream(t *testing.T) {
	g := frame.Geometry{Width: 2, Height: 8}
	sink := &recordingSink{}

	p, err := NewPlayer([]byte("16:1 16x0"), g, 12, sink, &fakeClock{}, nil)
	require.NoError(t, err)

	frames, err := p.Play()
	require.NoError(t, err)
	assert.Equal(t, 1, frames)
}

func TestPlayerSinkErrorStopsPlayback(t *testing.T) {
	g := frame.Geometry{Width: 2, Height: 8}
	sink := &recordingSink{err: assert.AnError}

	p, err := NewPlayer([]byte("16:1 16:0"), g, 12, sink, &fakeClock{}, nil)
	require.NoError(t, err)

	frames, err := p.Play()
	assert.Error(t, err)
	assert.Equal(t, 0, frames)
}

func TestPlayerPacing(t *testing.T) {
	g := frame.Geometry{Width: 2, Height: 8}

	// Each tick reads the clock twice, so work time equals one step:
	// 10ms against a 10 FPS target leaves 90ms to sleep.
	clock := &fakeClock{step: 10 * time.Millisecond}
	p, err := NewPlayer([]byte("16:1 16:0"), g, 10, Discard, clock, nil)
	require.NoError(t, err)

	frames, err := p.Play()
	require.NoError(t, err)
	require.Equal(t, 2, frames)

	require.Len(t, clock.sleeps, 2)
	for _, d := range clock.sleeps {
		assert.Equal(t, 90*time.Millisecond, d)
	}
}

func TestPlayerSkipsSleepWhenBehind(t *testing.T) {
	g := frame.Geometry{Width: 2, Height: 8}

	// 150ms of work per frame against a 10 FPS target: never sleep.
	clock := &fakeClock{step: 150 * time.Millisecond}
	p, err := NewPlayer([]byte("16:1 16:0"), g, 10, Discard, clock, nil)
	require.NoError(t, err)

	frames, err := p.Play()
	require.NoError(t, err)
	require.Equal(t, 2, frames)
	assert.Empty(t, clock.sleeps)
}

func TestPlayerRejectsBadConfig(t *testing.T) {
	_, err := NewPlayer(nil, frame.Geometry{Width: 2, Height: 7}, 12, Discard, nil, nil)
	assert.Error(t, err)

	_, err = NewPlayer(nil, frame.Geometry{Width: 2, Height: 8}, 0, Discard, nil, nil)
	assert.Error(t, err)
}

func TestTermSink(t *testing.T) {
	g := frame.Geometry{Width: 2, Height: 8}
	f := make([]byte, g.Size())
	f[0] = 1
	f[3] = 1

	packed := make([]byte, g.PackedSize())
	require.NoError(t, g.Pack(f, packed))

	b := new(bytes.Buffer)
	s := NewTermSink(b)
	require.NoError(t, s.Render(packed, g.Width, g.Height))

	assert.Contains(t, b.String(), "# \n")
	assert.Contains(t, b.String(), " #\n")
}
