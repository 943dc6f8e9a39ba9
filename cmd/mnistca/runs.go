package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"mnist-ca/internal/features"
	"mnist-ca/internal/report"
	"mnist-ca/internal/sims"
	"mnist-ca/internal/sims/mnist"
	"mnist-ca/internal/storage"
)

func runRuns(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "mnistca.db", "sqlite database path")
	id := fs.String("id", "", "show per-digit statistics for one run")
	if err := fs.Parse(args); err != nil {
		return err
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

	if *id == "" {
		runs, err := store.ListRuns(ctx)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println(emptyStoreMessage(*storeKind))
			return nil
		}
		return report.RunsTable(os.Stdout, runs)
	}

	run, ok, err := store.GetRun(ctx, *id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("run %s not found", *id)
	}
	records, ok, err := store.GetFeatures(ctx, *id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("run %s has no features", *id)
	}
	values := make([]float64, len(records))
	labels := make([]int, len(records))
	for i, r := range records {
		values[i] = r.Value
		labels[i] = r.Label
	}
	stats, err := features.DigitAverages(values, labels)
	if err != nil {
		return err
	}
	if err := report.RunsTable(os.Stdout, []storage.Run{run}); err != nil {
		return err
	}
	return report.DigitTable(os.Stdout, stats)
}

// emptyStoreMessage explains an empty listing. The memory store only lives
// as long as one invocation.
func emptyStoreMessage(kind string) string {
	if kind == "" || kind == "memory" {
		return "no runs in store=memory; runs are not kept between invocations, rebuild with -tags sqlite and pass -store sqlite to persist them"
	}
	return fmt.Sprintf("no runs in store=%s", kind)
}

func runRules(_ context.Context, args []string) error {
	fs := flag.NewFlagSet("rules", flag.ContinueOnError)
	var overrides kvList
	fs.Var(&overrides, "set", "automaton override in key=value form (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	catalog, err := sims.Catalog()
	if err != nil {
		return err
	}
	if err := report.RulesTable(os.Stdout, catalog); err != nil {
		return err
	}
	fmt.Println()
	return report.ParametersTable(os.Stdout, mnist.FromMap(overrides.Map()).Parameters())
}
