package frame

// Pack converts an unpacked frame into page-major packed form. The output
// depends only on the input; packing the same frame twice yields identical
// bytes.
func (g Geometry) Pack(frame, out []byte) error {
	if len(frame) != g.Size() {
		return errFrameSize
	}
	if len(out) != g.PackedSize() {
		return errPackSize
	}

	for page := 0; page < g.Pages(); page++ {
		for x := 0; x < g.Width; x++ {
			var b byte
			for bit := 0; bit < 8; bit++ {
				y := page*8 + bit
				if frame[y*g.Width+x] != 0 {
					b |= 1 << bit
				}
			}
			out[page*g.Width+x] = b
		}
	}

	return nil
}

// Unpack is the inverse of Pack, expanding a packed buffer back into one byte
// per pixel.
func (g Geometry) Unpack(packed, out []byte) error {
	if len(packed) != g.PackedSize() {
		return errPackSize
	}
	if len(out) != g.Size() {
		return errFrameSize
	}

	for page := 0; page < g.Pages(); page++ {
		for x := 0; x < g.Width; x++ {
			b := packed[page*g.Width+x]
			for bit := 0; bit < 8; bit++ {
				y := page*8 + bit
				out[y*g.Width+x] = b >> bit & 1
			}
		}
	}

	return nil
}
