package render

import (
	"image/color"
	"math"

	"mnist-ca/internal/core"
)

// FrozenMask marks the cells the automaton never updates with 1.
func FrozenMask(a *core.Automaton) []float32 {
	size := a.Size()
	mask := make([]float32, size.W*size.H)
	for r := 0; r < size.H; r++ {
		for c := 0; c < size.W; c++ {
			if a.Frozen(core.Coord{Row: r, Col: c}) {
				mask[r*size.W+c] = 1
			}
		}
	}
	return mask
}

// AliveMask marks cells whose channel value is above zero.
func AliveMask(s core.Snapshot, channel int) []float32 {
	mask := make([]float32, s.Height*s.Width)
	for i := range mask {
		if s.Values[i*s.Arity+channel] > 0 {
			mask[i] = 1
		}
	}
	return mask
}

// FillMaskRGBA tints buf with translucent color where mask is non-zero.
func FillMaskRGBA(buf []byte, mask []float32, tint color.RGBA) {
	const (
		maxAlpha      = 140.0
		glowBase      = 0.35
		glowRange     = 0.65
		intensityBias = 0.75
	)
	for i, m := range mask {
		base := i * 4
		intensity := float64(m)
		if intensity < 0 {
			intensity = 0
		}
		if intensity > 1 {
			intensity = 1
		}
		if intensity == 0 {
			buf[base+0] = 0
			buf[base+1] = 0
			buf[base+2] = 0
			buf[base+3] = 0
			continue
		}

		alpha := uint8(math.Round(maxAlpha * math.Pow(intensity, intensityBias)))
		glow := glowBase + glowRange*math.Sqrt(intensity)

		buf[base+0] = scaleComponent(tint.R, glow)
		buf[base+1] = scaleComponent(tint.G, glow)
		buf[base+2] = scaleComponent(tint.B, glow)
		buf[base+3] = alpha
	}
}

func scaleComponent(value uint8, factor float64) uint8 {
	scaled := math.Round(float64(value) * factor)
	if scaled < 0 {
		return 0
	}
	if scaled > 255 {
		return 255
	}
	return uint8(scaled)
}
