package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"mnist-ca/internal/features"
	"mnist-ca/internal/report"
	"mnist-ca/internal/sims/mnist"
)

// averagesSteps is the evolution count of the reference digit-averages
// experiment, which runs every training image of each digit.
const averagesSteps = 250

type averagesJob struct {
	model     *modelFlags
	cfg       mnist.Config
	digits    []int
	perDigit  int
	shuffle   bool
	seed      int64
	out       string
	chartPath string
}

func parseAverages(args []string) (averagesJob, error) {
	fs := flag.NewFlagSet("averages", flag.ContinueOnError)
	model := bindModelWith(fs, modelDefaults{
		train:    true,
		settings: map[string]string{"steps": strconv.Itoa(averagesSteps)},
	})
	digitsFlag := fs.String("digits", "0,1,2,3,4,5,6,7,8,9", "comma-separated digits to evaluate")
	perDigit := fs.Int("per-digit", 0, "images evaluated per digit (0 uses all)")
	shuffle := fs.Bool("shuffle", false, "draw each digit's images in seeded random order")
	seed := fs.Int64("seed", 1, "seed for -shuffle")
	out := fs.String("out", "averages.txt", "text report path (truncated first)")
	chartPath := fs.String("chart", "", "optional PNG bar chart of the per-digit means")
	if err := fs.Parse(args); err != nil {
		return averagesJob{}, err
	}

	digits, err := parseDigits(*digitsFlag)
	if err != nil {
		return averagesJob{}, err
	}
	return averagesJob{
		model:     model,
		cfg:       model.config(),
		digits:    digits,
		perDigit:  *perDigit,
		shuffle:   *shuffle,
		seed:      *seed,
		out:       *out,
		chartPath: *chartPath,
	}, nil
}

func runAverages(ctx context.Context, args []string) error {
	job, err := parseAverages(args)
	if err != nil {
		return err
	}
	set, err := job.model.load()
	if err != nil {
		return err
	}

	f, err := os.Create(job.out)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Printf("Running %d steps per image\n", job.cfg.Steps)
	extractor := features.New(job.cfg, job.model.workers, nil)
	var all []features.DigitStats
	for _, d := range job.digits {
		subset := set.ExclusiveDigits([]int{d}, job.perDigit, job.shuffle, job.seed)
		if subset.Len() == 0 {
			fmt.Printf("No images for digit %d\n", d)
			continue
		}
		values, err := extractor.Extract(ctx, subset.Images)
		if err != nil {
			return fmt.Errorf("digit %d: %w", d, err)
		}
		for i, v := range values {
			fmt.Printf("Average for %d was %g\n", i, v)
		}
		stats, err := features.DigitAverages(values, subset.Labels)
		if err != nil {
			return err
		}
		if err := report.WriteAverages(f, stats); err != nil {
			return err
		}
		all = append(all, stats...)
	}

	if err := report.DigitTable(os.Stdout, all); err != nil {
		return err
	}
	if job.chartPath != "" && len(all) > 0 {
		if err := writeChart(job.chartPath, all); err != nil {
			return err
		}
		fmt.Printf("Wrote chart to %s\n", job.chartPath)
	}
	return f.Close()
}

func writeChart(path string, stats []features.DigitStats) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.WriteBarChart(f, "Mean feature per digit", stats); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
