/*
Package clip implements the container file written alongside encoded video
streams so that frame geometry and playback rate travel with the data.

The file is the four byte magic "BRL1", the frame width and height as
big-endian 16-bit values, the target frame rate as a single byte, then the
ASCII run-length encoded stream until end of file.
*/
package clip

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/bitreel/bitreel/frame"
)

// Extension is the conventional filename extension for clip files.
const Extension = ".brl"

var magic = [4]byte{'B', 'R', 'L', '1'}

var (
	errMagic     = errors.New("clip: bad magic")
	errTruncated = errors.New("clip: truncated header")
)

// Clip is an encoded video stream together with the metadata needed to play
// it. It implements the encoding.BinaryMarshaler and
// encoding.BinaryUnmarshaler interfaces.
type Clip struct {
	Geometry frame.Geometry
	FPS      int
	Data     []byte
}

// MarshalBinary encodes the clip into its file form.
func (c *Clip) MarshalBinary() ([]byte, error) {
	if err := c.Geometry.Validate(); err != nil {
		return nil, err
	}
	if c.FPS <= 0 || c.FPS > 255 {
		return nil, fmt.Errorf("clip: frame rate %d out of range", c.FPS)
	}
	if c.Geometry.Width > 0xffff || c.Geometry.Height > 0xffff {
		return nil, fmt.Errorf("clip: geometry %dx%d out of range", c.Geometry.Width, c.Geometry.Height)
	}

	b := new(bytes.Buffer)
	if _, err := b.Write(magic[:]); err != nil {
		return nil, err
	}
	for _, v := range []uint16{uint16(c.Geometry.Width), uint16(c.Geometry.Height)} {
		if err := binary.Write(b, binary.BigEndian, v); err != nil {
			return nil, err
		}
	}
	if err := b.WriteByte(byte(c.FPS)); err != nil {
		return nil, err
	}
	if _, err := b.Write(c.Data); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

// UnmarshalBinary decodes a clip from its file form. The stream itself is not
// validated; a corrupt stream surfaces as early playback termination.
func (c *Clip) UnmarshalBinary(b []byte) error {
	if len(b) < len(magic)+5 {
		return errTruncated
	}
	if !bytes.Equal(b[:len(magic)], magic[:]) {
		return errMagic
	}
	b = b[len(magic):]

	c.Geometry = frame.Geometry{
		Width:  int(binary.BigEndian.Uint16(b[0:2])),
		Height: int(binary.BigEndian.Uint16(b[2:4])),
	}
	c.FPS = int(b[4])
	c.Data = b[5:]

	return c.Geometry.Validate()
}
