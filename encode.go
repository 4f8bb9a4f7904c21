package bitreel

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"

	"github.com/ericpauley/go-quantize/quantize"

	"github.com/bitreel/bitreel/clip"
	"github.com/bitreel/bitreel/frame"
	"github.com/bitreel/bitreel/rle"
)

// EncodeGIF converts an animated GIF into an encoded clip. The GIF's logical
// screen must match the target geometry exactly; no scaling is performed.
// Frames are composited in order onto a shared canvas, honoring each frame's
// disposal method, then reduced to two colors and thresholded so the lighter
// color becomes a lit pixel. Undrawn canvas is treated as dark.
func EncodeGIF(g *gif.GIF, geo frame.Geometry, fps int) (*clip.Clip, error) {
	if err := geo.Validate(); err != nil {
		return nil, err
	}
	if g.Config.Width != geo.Width || g.Config.Height != geo.Height {
		return nil, fmt.Errorf("bitreel: GIF is %dx%d, want %dx%d", g.Config.Width, g.Config.Height, geo.Width, geo.Height)
	}

	background := image.NewUniform(color.Black)
	canvas := image.NewRGBA(image.Rect(0, 0, geo.Width, geo.Height))
	draw.Draw(canvas, canvas.Rect, background, image.Point{}, draw.Src)
	pixels := make([]byte, geo.Size())

	b := new(bytes.Buffer)
	enc := rle.NewWriter(b)

	for i, m := range g.Image {
		var saved *image.RGBA
		if i < len(g.Disposal) && g.Disposal[i] == gif.DisposalPrevious {
			saved = image.NewRGBA(canvas.Rect)
			copy(saved.Pix, canvas.Pix)
		}

		draw.Draw(canvas, m.Bounds(), m, m.Bounds().Min, draw.Over)
		threshold(canvas, pixels)
		if err := enc.Write(pixels); err != nil {
			return nil, err
		}

		if i < len(g.Disposal) {
			switch g.Disposal[i] {
			case gif.DisposalBackground:
				draw.Draw(canvas, m.Bounds(), background, image.Point{}, draw.Src)
			case gif.DisposalPrevious:
				canvas = saved
			}
		}
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}

	return &clip.Clip{
		Geometry: geo,
		FPS:      fps,
		Data:     b.Bytes(),
	}, nil
}

// threshold reduces m to two colors and writes 0 or 1 per pixel into out,
// the lighter of the two colors mapping to 1.
func threshold(m *image.RGBA, out []byte) {
	q := quantize.MedianCutQuantizer{}
	p := q.Quantize(make(color.Palette, 0, 2), m)

	// Midpoint between the two quantized colors; a single-color image is
	// cut against mid-gray instead.
	cut := uint32(1 << 15)
	if len(p) == 2 {
		cut = (luma(p[0]) + luma(p[1])) / 2
	}

	b := m.Bounds()
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			var bit byte
			if luma(p[p.Index(m.At(x, y))]) > cut {
				bit = 1
			}
			out[i] = bit
			i++
		}
	}
}

func luma(c color.Color) uint32 {
	r, g, b, _ := c.RGBA()
	return (299*r + 587*g + 114*b) / 1000
}
