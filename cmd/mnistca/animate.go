package main

import (
	"context"
	"flag"
	"fmt"

	"mnist-ca/internal/core"
	"mnist-ca/internal/render"
	"mnist-ca/internal/sims/mnist"
)

func runAnimate(_ context.Context, args []string) error {
	fs := flag.NewFlagSet("animate", flag.ContinueOnError)
	model := bindModel(fs)
	index := fs.Int("index", 0, "dataset example to animate")
	out := fs.String("out", "evolution.avi", "MJPEG AVI output path")
	fps := fs.Int("fps", 5, "frames per second")
	scale := fs.Int("scale", 12, "pixels per cell")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := model.config()
	if model.limit > 0 && model.limit <= *index {
		model.limit = *index + 1
	}
	set, err := model.load()
	if err != nil {
		return err
	}
	if *index < 0 || *index >= set.Len() {
		return fmt.Errorf("index %d outside dataset of %d images", *index, set.Len())
	}

	a, err := mnist.NewAutomaton(cfg, set.Images[*index])
	if err != nil {
		return err
	}
	history := core.History{core.TakeSnapshot(a)}
	steps, err := core.NewDriver(a).Run(cfg.EvolutionsPerStep, cfg.Steps)
	if err != nil {
		return err
	}
	history = append(history, steps...)

	if err := render.WriteAnimation(*out, history, render.Options{Scale: *scale}, *fps); err != nil {
		return err
	}
	feature, err := mnist.Feature(cfg, steps)
	if err != nil {
		return err
	}
	fmt.Printf("Wrote %d frames of a %d to %s (feature %g)\n", len(history), set.Labels[*index], *out, feature)
	return nil
}
