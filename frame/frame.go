/*
Package frame converts between unpacked per-pixel frame buffers and the
page-major packed format used by SSD1306/SH1106 class monochrome displays.

An unpacked buffer holds one byte per pixel, 0 or 1, in row-major order. The
packed buffer holds Height/8 pages of Width bytes each; the byte at
[page*Width + x] packs the 8 vertically stacked pixels of column x, rows
page*8 through page*8+7, with bit 0 being the topmost row.
*/
package frame

import "errors"

var (
	errWidth     = errors.New("frame: width must be positive")
	errHeight    = errors.New("frame: height must be a positive multiple of 8")
	errFrameSize = errors.New("frame: wrong unpacked buffer size")
	errPackSize  = errors.New("frame: wrong packed buffer size")
)

// Geometry fixes the dimensions of every frame in a clip. Height must be a
// multiple of 8 so that rows pack evenly into pages.
type Geometry struct {
	Width, Height int
}

// Validate rejects dimensions the packed format cannot represent.
func (g Geometry) Validate() error {
	if g.Width <= 0 {
		return errWidth
	}
	if g.Height <= 0 || g.Height%8 != 0 {
		return errHeight
	}
	return nil
}

// Size returns the number of pixels in one unpacked frame.
func (g Geometry) Size() int {
	return g.Width * g.Height
}

// Pages returns the number of 8-row pages in one frame.
func (g Geometry) Pages() int {
	return g.Height / 8
}

// PackedSize returns the number of bytes in one packed frame.
func (g Geometry) PackedSize() int {
	return g.Width * g.Pages()
}
