//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"mnist-ca/internal/app"
	"mnist-ca/internal/dataset"
	"mnist-ca/internal/sims"
	"mnist-ca/internal/sims/mnist"

	"github.com/hajimehoshi/ebiten/v2"
	"gonum.org/v1/gonum/mat"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	catalog, err := sims.Catalog()
	if err != nil {
		log.Fatal(err)
	}

	var img mat.Matrix
	if cfg.Rule == mnist.RuleName {
		set, err := dataset.LoadDir(cfg.Data, false, dataset.Options{Limit: cfg.Index + 1})
		if err != nil {
			log.Fatalf("load dataset: %v", err)
		}
		if cfg.Index < 0 || cfg.Index >= set.Len() {
			log.Fatalf("index %d outside dataset of %d images", cfg.Index, set.Len())
		}
		img = set.Images[cfg.Index]
		log.Printf("playing test image %d (digit %d)", cfg.Index, set.Labels[cfg.Index])
	}

	player, opts, err := app.NewSession(cfg, catalog, img)
	if err != nil {
		log.Fatal(err)
	}
	game := app.New(player, opts, cfg)
	size := player.Automaton().Size()

	ebiten.SetWindowTitle("mnist-ca - " + cfg.Rule)
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.Scale+cfg.Panel, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
