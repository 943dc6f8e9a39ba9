package render

import (
	"image"
	"image/color"

	"mnist-ca/internal/core"

	"gonum.org/v1/gonum/floats"
)

// Options controls how a snapshot is turned into pixels.
type Options struct {
	// Scale is the side length in pixels of one cell.
	Scale int
	// Channel selects which state component is drawn.
	Channel int
	// Max is the value drawn as white. Zero means the largest value in
	// the frame being drawn.
	Max float64
	// Palette switches to discrete coloring when set.
	Palette []color.RGBA
}

// BrainPalette colors the ready, firing and refractory states.
var BrainPalette = []color.RGBA{
	{R: 0, G: 0, B: 0, A: 255},
	{R: 255, G: 255, B: 255, A: 255},
	{R: 40, G: 90, B: 200, A: 255},
}

// Pixels renders one cell per pixel into an RGBA buffer of len h*w*4.
func Pixels(values []float64, arity int, opts Options) []byte {
	if arity <= 0 {
		arity = 1
	}
	buf := make([]byte, len(values)/arity*4)
	FillPixels(buf, values, arity, opts)
	return buf
}

// FillPixels is Pixels writing into a caller-owned buffer.
func FillPixels(buf []byte, values []float64, arity int, opts Options) {
	if len(opts.Palette) > 0 {
		fillPaletteRGBA(buf, values, arity, opts.Channel, opts.Palette)
		return
	}
	max := opts.Max
	if max <= 0 && len(values) > 0 {
		max = floats.Max(values)
	}
	fillGrayRGBA(buf, values, arity, opts.Channel, max)
}

// Frame renders a snapshot as an image with each cell drawn as a
// Scale x Scale block.
func Frame(s core.Snapshot, opts Options) *image.RGBA {
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	px := Pixels(s.Values, s.Arity, opts)
	img := image.NewRGBA(image.Rect(0, 0, s.Width*scale, s.Height*scale))
	for r := 0; r < s.Height; r++ {
		for c := 0; c < s.Width; c++ {
			base := (r*s.Width + c) * 4
			for dy := 0; dy < scale; dy++ {
				off := img.PixOffset(c*scale, r*scale+dy)
				for dx := 0; dx < scale; dx++ {
					copy(img.Pix[off+dx*4:off+dx*4+4], px[base:base+4])
				}
			}
		}
	}
	return img
}

// HistoryMax returns the largest value of the given channel across a
// history, for a stable gray scale over an animation.
func HistoryMax(h core.History, channel int) float64 {
	max := 0.0
	for _, s := range h {
		for i := channel; i < len(s.Values); i += s.Arity {
			if s.Values[i] > max {
				max = s.Values[i]
			}
		}
	}
	return max
}
