package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"strings"

	"mnist-ca/internal/dataset"
	"mnist-ca/internal/sims/mnist"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "averages":
		return runAverages(ctx, args[1:])
	case "features":
		return runFeatures(ctx, args[1:])
	case "animate":
		return runAnimate(ctx, args[1:])
	case "runs":
		return runRuns(ctx, args[1:])
	case "rules":
		return runRules(ctx, args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: mnistca <averages|features|animate|runs|rules> [flags]", msg)
}

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

// Map splits the key=value pairs, ignoring malformed entries.
func (l kvList) Map() map[string]string {
	out := make(map[string]string, len(l))
	for _, kv := range l {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			continue
		}
		out[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	return out
}

// modelFlags are shared by every command that simulates dataset images.
type modelFlags struct {
	data      string
	train     bool
	limit     int
	normalize bool
	workers   int
	overrides kvList

	// defaults sit under the -set overrides.
	defaults map[string]string
}

// modelDefaults lets a command pick its own split and automaton settings.
type modelDefaults struct {
	train    bool
	settings map[string]string
}

func bindModel(fs *flag.FlagSet) *modelFlags {
	return bindModelWith(fs, modelDefaults{})
}

func bindModelWith(fs *flag.FlagSet, d modelDefaults) *modelFlags {
	m := &modelFlags{defaults: d.settings}
	fs.StringVar(&m.data, "data", ".", "directory holding the MNIST idx files (raw or .gz)")
	fs.BoolVar(&m.train, "train", d.train, "use the training split instead of the test split")
	fs.IntVar(&m.limit, "limit", 0, "read at most this many examples (0 reads all)")
	fs.BoolVar(&m.normalize, "normalize", false, "scale pixels to [0,1]")
	fs.IntVar(&m.workers, "workers", runtime.NumCPU(), "images simulated concurrently")
	fs.Var(&m.overrides, "set", "automaton override in key=value form (repeatable)")
	return m
}

func (m *modelFlags) config() mnist.Config {
	settings := make(map[string]string, len(m.defaults)+len(m.overrides))
	for k, v := range m.defaults {
		settings[k] = v
	}
	for k, v := range m.overrides.Map() {
		settings[k] = v
	}
	return mnist.FromMap(settings)
}

func (m *modelFlags) load() (*dataset.Set, error) {
	return dataset.LoadDir(m.data, m.train, dataset.Options{Limit: m.limit, Normalize: m.normalize})
}

func parseDigits(s string) ([]int, error) {
	var digits []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := strconv.Atoi(part)
		if err != nil || d < 0 || d > 9 {
			return nil, fmt.Errorf("invalid digit %q", part)
		}
		digits = append(digits, d)
	}
	if len(digits) == 0 {
		return nil, fmt.Errorf("no digits in %q", s)
	}
	return dataset.Digits(digits), nil
}
