//go:build ebiten

package ui

import (
	"image/color"

	"mnist-ca/internal/core"
	"mnist-ca/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Overlay draws optional masks on top of the grid: the cells frozen by the
// edge rule and the cells currently alive.
type Overlay struct {
	scale      int
	showFrozen bool
	showAlive  bool

	frozen  []float32
	maskImg *ebiten.Image
	maskBuf []byte
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(a *core.Automaton, scale int) *Overlay {
	size := a.Size()
	return &Overlay{
		scale:   scale,
		frozen:  render.FrozenMask(a),
		maskImg: ebiten.NewImage(size.W, size.H),
		maskBuf: make([]byte, 4*size.W*size.H),
	}
}

// Update toggles masks from the keyboard.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showFrozen = !o.showFrozen
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showAlive = !o.showAlive
	}
}

// Draw renders the enabled masks for snapshot s.
func (o *Overlay) Draw(screen *ebiten.Image, s core.Snapshot) {
	if o.showFrozen {
		o.drawMask(screen, o.frozen, color.RGBA{R: 255, G: 120, B: 40})
	}
	if o.showAlive {
		o.drawMask(screen, render.AliveMask(s, 0), color.RGBA{R: 64, G: 164, B: 223})
	}
}

func (o *Overlay) drawMask(screen *ebiten.Image, mask []float32, tint color.RGBA) {
	if len(mask)*4 != len(o.maskBuf) {
		return
	}
	render.FillMaskRGBA(o.maskBuf, mask, tint)
	o.maskImg.WritePixels(o.maskBuf)
	scale := o.scale
	if scale <= 0 {
		scale = 1
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	screen.DrawImage(o.maskImg, op)
}
