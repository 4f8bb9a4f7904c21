package bitreel

import (
	"bufio"
	"io"

	"github.com/bitreel/bitreel/frame"
)

// TermSink renders frames as text, one character per pixel, suitable for
// previewing a clip in a terminal.
type TermSink struct {
	w   io.Writer
	buf []byte
}

// NewTermSink returns a sink drawing to w, typically os.Stdout.
func NewTermSink(w io.Writer) *TermSink {
	return &TermSink{w: w}
}

// Render unpacks the frame and writes it as rows of '#' and ' ' characters,
// preceded by a cursor-home escape so successive frames overdraw each other.
func (s *TermSink) Render(packed []byte, width, height int) error {
	g := frame.Geometry{Width: width, Height: height}
	if len(s.buf) != g.Size() {
		s.buf = make([]byte, g.Size())
	}
	if err := g.Unpack(packed, s.buf); err != nil {
		return err
	}

	w := bufio.NewWriter(s.w)
	w.WriteString("\x1b[H")
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := byte(' ')
			if s.buf[y*width+x] != 0 {
				c = '#'
			}
			w.WriteByte(c)
		}
		w.WriteByte('\n')
	}

	return w.Flush()
}

// Discard is a FrameSink that throws frames away. Useful for draining a
// stream at full speed.
var Discard FrameSink = discard{}

type discard struct{}

func (discard) Render([]byte, int, int) error { return nil }
