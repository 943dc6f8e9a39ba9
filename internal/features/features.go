// Package features turns images into scalar features by running each one
// through the MNIST automaton and reducing the final snapshot.
package features

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"mnist-ca/internal/core"
	"mnist-ca/internal/sims/mnist"
)

// Extractor simulates images independently; each image gets its own
// automaton so calls may run concurrently.
type Extractor struct {
	cfg     mnist.Config
	workers int
	metrics *Metrics
}

// New returns an extractor running up to workers images at once.
func New(cfg mnist.Config, workers int, metrics *Metrics) *Extractor {
	if workers <= 0 {
		workers = 1
	}
	return &Extractor{cfg: cfg, workers: workers, metrics: metrics}
}

// Config returns the simulation configuration.
func (e *Extractor) Config() mnist.Config { return e.cfg }

// History simulates img and returns every recorded snapshot.
func (e *Extractor) History(img mat.Matrix) (core.History, error) {
	return mnist.Simulate(e.cfg, img)
}

// Feature simulates img and reduces its final snapshot.
func (e *Extractor) Feature(img mat.Matrix) (float64, error) {
	history, err := e.History(img)
	if err != nil {
		e.metrics.fail()
		return 0, err
	}
	value, err := mnist.Feature(e.cfg, history)
	if err != nil {
		e.metrics.fail()
		return 0, err
	}
	last, _ := history.Last()
	e.metrics.observe(last.Generation, value)
	return value, nil
}

// Extract computes one feature per image, in input order. The first failure
// cancels the remaining work and is returned with the image index.
func (e *Extractor) Extract(ctx context.Context, images []*mat.Dense) ([]float64, error) {
	out := make([]float64, len(images))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, img := range images {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			v, err := e.Feature(img)
			if err != nil {
				return fmt.Errorf("image %d: %w", i, err)
			}
			out[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// DigitStats summarises the features of one digit.
type DigitStats struct {
	Digit  int
	Count  int
	Mean   float64
	StdDev float64
	Values []float64
}

// DigitAverages groups values by label, ordered by digit.
func DigitAverages(values []float64, labels []int) ([]DigitStats, error) {
	if len(values) != len(labels) {
		return nil, fmt.Errorf("%d values but %d labels", len(values), len(labels))
	}
	byDigit := map[int][]float64{}
	for i, v := range values {
		byDigit[labels[i]] = append(byDigit[labels[i]], v)
	}
	out := make([]DigitStats, 0, len(byDigit))
	for digit, vals := range byDigit {
		s := DigitStats{Digit: digit, Count: len(vals), Values: vals}
		if len(vals) > 1 {
			s.Mean, s.StdDev = stat.MeanStdDev(vals, nil)
		} else {
			s.Mean = vals[0]
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Digit < out[j].Digit })
	return out, nil
}

// Separability scores how well the per-digit means are spread relative to
// the spread within each digit: the variance of the means divided by the
// mean within-digit variance. Fewer than two digits score zero.
func Separability(stats []DigitStats) float64 {
	if len(stats) < 2 {
		return 0
	}
	means := make([]float64, len(stats))
	within := make([]float64, len(stats))
	for i, s := range stats {
		means[i] = s.Mean
		within[i] = s.StdDev * s.StdDev
	}
	between := stat.Variance(means, nil)
	noise := stat.Mean(within, nil)
	if noise < 1e-12 {
		noise = 1e-12
	}
	return between / noise
}
