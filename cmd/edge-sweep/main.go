package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"mnist-ca/internal/core"
	"mnist-ca/internal/dataset"
	"mnist-ca/internal/features"
	"mnist-ca/internal/sims/mnist"
)

type scenario struct {
	edge      core.EdgeRule
	steps     int
	threshold int
}

func (s scenario) String() string {
	return fmt.Sprintf("edge=%s steps=%d threshold=%d", s.edge, s.steps, s.threshold)
}

type scenarioResult struct {
	scenario scenario
	stats    []features.DigitStats
	score    float64
	elapsed  time.Duration
	err      error
}

func main() {
	data := flag.String("data", ".", "directory holding the MNIST idx files")
	train := flag.Bool("train", false, "use the training split")
	digitsFlag := flag.String("digits", "0,1,2,3,4,5,6,7,8,9", "digits to compare")
	perDigit := flag.Int("per-digit", 50, "images per digit and scenario")
	stepsFlag := flag.String("steps", "5,10,25,50", "comma-separated last steps to try")
	thresholdsFlag := flag.String("thresholds", "2,3,4", "comma-separated alive thresholds to try")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	top := flag.Int("top", 5, "results to print")
	flag.Parse()

	digits, err := parseInts(*digitsFlag)
	if err != nil {
		log.Fatalf("digits: %v", err)
	}
	stepOptions, err := parseInts(*stepsFlag)
	if err != nil {
		log.Fatalf("steps: %v", err)
	}
	thresholdOptions, err := parseInts(*thresholdsFlag)
	if err != nil {
		log.Fatalf("thresholds: %v", err)
	}

	set, err := dataset.LoadDir(*data, *train, dataset.Options{})
	if err != nil {
		log.Fatalf("load dataset: %v", err)
	}
	subset := set.ExclusiveDigits(digits, *perDigit, false, 0)
	if subset.Len() == 0 {
		log.Fatalf("no images for digits %v", digits)
	}

	var sets []scenario
	for _, edge := range []core.EdgeRule{core.IgnoreEdgeCells, core.IgnoreMissingNeighbors, core.WrapFirstLastAsNeighbors} {
		for _, steps := range stepOptions {
			for _, threshold := range thresholdOptions {
				sets = append(sets, scenario{edge: edge, steps: steps, threshold: threshold})
			}
		}
	}

	n := max(*workers, 1)
	fmt.Printf("Sweeping %d scenarios over %d images (%d workers)\n", len(sets), subset.Len(), n)

	start := time.Now()
	var all []scenarioResult
	for res := range sweep(subset, sets, n) {
		if res.err != nil {
			log.Printf("%s failed: %v", res.scenario, res.err)
			continue
		}
		all = append(all, res)
		fmt.Printf("%s score=%.4f (%s)\n", res.scenario, res.score, res.elapsed.Round(time.Millisecond))
	}
	if len(all) == 0 {
		log.Fatal("every scenario failed")
	}

	sort.Slice(all, func(i, j int) bool { return all[i].score > all[j].score })
	fmt.Printf("\nTop %d results (elapsed %s):\n", min(*top, len(all)), time.Since(start).Round(time.Millisecond))
	for i := 0; i < len(all) && i < *top; i++ {
		res := all[i]
		fmt.Printf("%2d) score=%.4f %s means=%s\n", i+1, res.score, res.scenario, formatMeans(res.stats))
	}
}

// sweep runs every scenario on a pool of workers and streams the results.
// The channel closes once all scenarios are done.
func sweep(set *dataset.Set, sets []scenario, workers int) <-chan scenarioResult {
	if workers < 1 {
		workers = 1
	}
	jobs := make(chan scenario)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for s := range jobs {
				results <- runScenario(set, s)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, s := range sets {
			jobs <- s
		}
		close(jobs)
	}()
	return results
}

func runScenario(set *dataset.Set, s scenario) scenarioResult {
	cfg := mnist.DefaultConfig()
	cfg.Edge = s.edge
	cfg.Steps = s.steps
	cfg.AliveThreshold = s.threshold

	start := time.Now()
	values, err := features.New(cfg, 1, nil).Extract(context.Background(), set.Images)
	if err != nil {
		return scenarioResult{scenario: s, err: err}
	}
	stats, err := features.DigitAverages(values, set.Labels)
	if err != nil {
		return scenarioResult{scenario: s, err: err}
	}
	return scenarioResult{
		scenario: s,
		stats:    stats,
		score:    features.Separability(stats),
		elapsed:  time.Since(start),
	}
}

func formatMeans(stats []features.DigitStats) string {
	parts := make([]string, len(stats))
	for i, s := range stats {
		parts[i] = fmt.Sprintf("%d:%.2f", s.Digit, s.Mean)
	}
	return strings.Join(parts, " ")
}

func parseInts(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty list %q", s)
	}
	return out, nil
}
