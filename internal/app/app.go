//go:build ebiten

package app

import (
	"mnist-ca/internal/core"
	"mnist-ca/internal/render"
	"mnist-ca/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a Player to the ebiten.Game interface.
type Game struct {
	player  *Player
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD
	timer   *core.FixedStep

	opts     render.Options
	scale    int
	panel    int
	paused   bool
	tickOnce bool
	err      error
}

// New constructs a Game playing p with the given render options.
func New(p *Player, opts render.Options, cfg *Config) *Game {
	size := p.Automaton().Size()
	g := &Game{
		player:  p,
		painter: render.NewGridPainter(size.W, size.H),
		overlay: ui.NewOverlay(p.Automaton(), cfg.Scale),
		timer:   core.NewFixedStep(cfg.FPS),
		opts:    opts,
		scale:   cfg.Scale,
		panel:   cfg.Panel,
	}
	g.hud = ui.NewHUD(cfg.Rule, p, cfg.Panel, ui.Control{
		Label: "Playback FPS",
		Min:   1,
		Max:   60,
		Get:   g.timer.Rate,
		Set:   g.timer.SetRate,
	})
	return g
}

// Update handles per-frame logic and advances playback.
func (g *Game) Update() error {
	if g.err != nil {
		return g.err
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) || inpututil.IsKeyJustPressed(ebiten.KeyRight) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) || inpututil.IsKeyJustPressed(ebiten.KeyLeft) {
		g.paused = true
		g.player.Prev()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.player.Rewind()
	}

	g.overlay.Update()
	g.hud.Update(g.viewWidth())

	if g.tickOnce || (!g.paused && g.timer.ShouldStep()) {
		if _, err := g.player.Next(); err != nil {
			g.err = err
			return err
		}
		g.tickOnce = false
	}
	return nil
}

// Draw renders the current snapshot, overlays and the HUD panel.
func (g *Game) Draw(screen *ebiten.Image) {
	cur := g.player.Current()
	g.painter.Blit(screen, cur.Values, cur.Arity, g.opts, g.scale)
	g.overlay.Draw(screen, cur)
	g.hud.Draw(screen, g.viewWidth(), cur.Height*g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.player.Automaton().Size()
	return g.viewWidth() + g.panel, s.H * g.scale
}

func (g *Game) viewWidth() int {
	return g.player.Automaton().Size().W * g.scale
}
