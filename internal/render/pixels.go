package render

import "image/color"

// fillGrayRGBA converts one channel of row-major cell values into grayscale
// RGBA pixels in buf. Values are scaled so that max maps to white.
func fillGrayRGBA(buf []byte, values []float64, arity, channel int, max float64) {
	if max <= 0 {
		max = 1
	}
	for i := 0; i*arity+channel < len(values); i++ {
		v := values[i*arity+channel] / max
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		g := uint8(v*255 + 0.5)
		base := i * 4
		buf[base+0] = g
		buf[base+1] = g
		buf[base+2] = g
		buf[base+3] = 0xff
	}
}

// fillPaletteRGBA converts discrete cell states into RGBA pixels using a
// palette. States past the end of the palette use its last entry. When the
// palette is empty the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, values []float64, arity, channel int, palette []color.RGBA) {
	n := len(values) / arity
	if len(palette) == 0 {
		for i := 0; i < n*4; i++ {
			buf[i] = 0
		}
		return
	}

	last := len(palette) - 1
	for i := 0; i < n; i++ {
		idx := int(values[i*arity+channel])
		if idx > last {
			idx = last
		}
		if idx < 0 {
			idx = 0
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}
