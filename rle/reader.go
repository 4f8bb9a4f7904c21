package rle

import "math"

// Decoder reads pixel runs from an encoded stream and expands them into
// fixed-size frame buffers. It is a single forward-only cursor; the stream is
// borrowed, never copied.
//
// A run longer than the space left in the output buffer is split: the excess
// is kept as a pending run and drained first on the following call, so one
// token may span any number of frames.
type Decoder struct {
	data []byte
	pos  int

	// pending run carried over from the previous call; count > 0 when bit
	// is valid
	pending int
	bit     byte

	err error
}

// NewDecoder returns a Decoder reading from the start of data.
func NewDecoder(data []byte) *Decoder {
	return &Decoder{data: data}
}

// Next fills out completely with the next frame's worth of pixel values, one
// byte per pixel, each 0 or 1. It returns false if the stream is exhausted or
// malformed before out could be filled, leaving out partially written; this
// is the normal end of playback. Err tells the two conditions apart.
func (d *Decoder) Next(out []byte) bool {
	if d.err != nil {
		return false
	}

	n := 0
	for n < len(out) {
		if d.pending > 0 {
			w := d.pending
			if w > len(out)-n {
				w = len(out) - n
			}
			for i := 0; i < w; i++ {
				out[n+i] = d.bit
			}
			n += w
			d.pending -= w
			continue
		}

		length, bit, ok := d.readToken()
		if !ok {
			return false
		}

		w := length
		if w > len(out)-n {
			w = len(out) - n
		}
		for i := 0; i < w; i++ {
			out[n+i] = bit
		}
		n += w
		if length > w {
			d.pending = length - w
			d.bit = bit
		}
	}

	return true
}

// Err returns nil if the decoder stopped at a clean end of stream, or the
// first malformed-input error encountered.
func (d *Decoder) Err() error {
	return d.err
}

// Reset rewinds the decoder to the start of the stream and discards any
// pending run, allowing the same stream to be replayed.
func (d *Decoder) Reset() {
	d.pos = 0
	d.pending = 0
	d.bit = 0
	d.err = nil
}

// readToken parses one <digits>:<bit> token plus any trailing whitespace. It
// returns ok == false at end of stream or on malformed input, recording the
// latter in d.err.
func (d *Decoder) readToken() (length int, bit byte, ok bool) {
	if d.pos >= len(d.data) {
		return 0, 0, false
	}

	for d.pos < len(d.data) && isDigit(d.data[d.pos]) {
		if length > (math.MaxInt-9)/10 {
			d.err = ErrRunTooLong
			return 0, 0, false
		}
		length = length*10 + int(d.data[d.pos]-'0')
		d.pos++
	}

	if d.pos >= len(d.data) || d.data[d.pos] != ':' {
		d.err = ErrMissingSeparator
		return 0, 0, false
	}
	d.pos++

	if d.pos >= len(d.data) || (d.data[d.pos] != '0' && d.data[d.pos] != '1') {
		d.err = ErrBadBit
		return 0, 0, false
	}
	bit = d.data[d.pos] - '0'
	d.pos++

	for d.pos < len(d.data) && isSpace(d.data[d.pos]) {
		d.pos++
	}

	return length, bit, true
}
