package bitreel

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/bitreel/bitreel/frame"
	"github.com/bitreel/bitreel/rle"
)

// FrameSink consumes packed frames, typically by drawing them on a physical
// or virtual display. Render is synchronous; an error is fatal to playback.
type FrameSink interface {
	Render(packed []byte, width, height int) error
}

// Clock abstracts the two timing operations playback needs, so pacing can be
// tested without real sleeps.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type realClock struct{}

func (realClock) Now() time.Time        { return time.Now() }
func (realClock) Sleep(d time.Duration) { time.Sleep(d) }

// Player drives the decode, pack and render pipeline at a fixed frame rate.
// It owns one unpacked and one packed frame buffer, both allocated at
// construction and overwritten in place every tick. A Player runs on a single
// goroutine; it is not safe for concurrent use.
type Player struct {
	dec      *rle.Decoder
	geometry frame.Geometry
	interval time.Duration
	sink     FrameSink
	clock    Clock
	logger   *log.Logger

	buf    []byte
	packed []byte
}

// NewPlayer prepares playback of the encoded stream data at fps frames per
// second. clock may be nil to use the real time functions.
func NewPlayer(data []byte, g frame.Geometry, fps int, sink FrameSink, clock Clock, logger *log.Logger) (*Player, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if fps <= 0 {
		return nil, fmt.Errorf("bitreel: frame rate %d out of range", fps)
	}
	if clock == nil {
		clock = realClock{}
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Player{
		dec:      rle.NewDecoder(data),
		geometry: g,
		interval: time.Second / time.Duration(fps),
		sink:     sink,
		clock:    clock,
		logger:   logger,
		buf:      make([]byte, g.Size()),
		packed:   make([]byte, g.PackedSize()),
	}, nil
}

// Play decodes, packs and renders frames until the stream runs out, then
// returns the number of frames played. Stream exhaustion and malformed input
// both end playback normally; only a sink failure is an error. Each frame's
// deadline is computed from its own start time, so a slow frame is not
// compensated for afterwards.
func (p *Player) Play() (int, error) {
	frames := 0
	for {
		start := p.clock.Now()

		if !p.dec.Next(p.buf) {
			p.logger.Printf("Finished after %d frames\n", frames)
			return frames, nil
		}

		if err := p.geometry.Pack(p.buf, p.packed); err != nil {
			return frames, err
		}

		p.logger.Printf("Displaying frame %d...\n", frames)
		if err := p.sink.Render(p.packed, p.geometry.Width, p.geometry.Height); err != nil {
			return frames, err
		}
		frames++

		if work := p.clock.Now().Sub(start); work < p.interval {
			p.clock.Sleep(p.interval - work)
		}
	}
}
