package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"mnist-ca/internal/features"
	"mnist-ca/internal/report"
	"mnist-ca/internal/sims/mnist"
	"mnist-ca/internal/storage"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func runFeatures(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("features", flag.ContinueOnError)
	model := bindModel(fs)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "mnistca.db", "sqlite database path")
	digitsFlag := fs.String("digits", "0,1,2,3,4,5,6,7,8,9", "comma-separated digits to extract")
	cut := fs.Int("cut", 0, "images kept per digit (0 keeps all)")
	shuffle := fs.Bool("shuffle", false, "shuffle the selected images with -seed")
	seed := fs.Int64("seed", 1, "seed for -shuffle")
	metricsAddr := fs.String("metrics-addr", "", "serve Prometheus metrics on this address while extracting")
	if err := fs.Parse(args); err != nil {
		return err
	}

	digits, err := parseDigits(*digitsFlag)
	if err != nil {
		return err
	}
	cfg := model.config()
	set, err := model.load()
	if err != nil {
		return err
	}
	subset := set.ExclusiveDigits(digits, *cut, *shuffle, *seed)
	if subset.Len() == 0 {
		return fmt.Errorf("no images for digits %v", digits)
	}

	store, err := storage.NewStore(*storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = storage.CloseIfSupported(store)
	}()
	if err := store.Init(ctx); err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	metrics := features.NewMetrics(reg)
	if *metricsAddr != "" {
		srv := serveMetrics(*metricsAddr, reg)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	start := time.Now()
	values, err := features.New(cfg, model.workers, metrics).Extract(ctx, subset.Images)
	if err != nil {
		return err
	}

	run := newRunRecord(cfg, digits, subset.Len())
	if err := store.SaveRun(ctx, run); err != nil {
		return err
	}
	records := make([]storage.FeatureRecord, len(values))
	for i, v := range values {
		records[i] = storage.FeatureRecord{Index: i, Label: subset.Labels[i], Value: v}
	}
	if err := store.SaveFeatures(ctx, run.ID, records); err != nil {
		return err
	}

	fmt.Printf("run %s: %d images in %s (store=%s)\n", run.ID, len(values), time.Since(start).Round(time.Millisecond), *storeKind)
	stats, err := features.DigitAverages(values, subset.Labels)
	if err != nil {
		return err
	}
	return report.DigitTable(os.Stdout, stats)
}

func newRunRecord(cfg mnist.Config, digits []int, images int) storage.Run {
	run := storage.NewRun()
	run.Rule = mnist.RuleName
	run.Edge = cfg.Edge.String()
	run.Height = cfg.Height
	run.Width = cfg.Width
	run.EvolutionsPerStep = cfg.EvolutionsPerStep
	run.Steps = cfg.Steps
	run.PadToSource = cfg.PadToSource
	run.Digits = digits
	run.Images = images
	return run
}

func serveMetrics(addr string, reg *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("metrics server: %v", err)
		}
	}()
	log.Printf("serving metrics on http://%s/metrics", addr)
	return srv
}
