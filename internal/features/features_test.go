package features

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"gonum.org/v1/gonum/mat"

	"mnist-ca/internal/core"
	"mnist-ca/internal/sims/mnist"
)

func block(value float64) *mat.Dense {
	img := mat.NewDense(28, 28, nil)
	for r := 5; r <= 20; r++ {
		for c := 5; c <= 20; c++ {
			img.Set(r, c, value)
		}
	}
	return img
}

func TestExtractPreservesOrder(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	cfg := mnist.DefaultConfig()
	cfg.Steps = 4
	e := New(cfg, 3, metrics)

	images := []*mat.Dense{block(100), mat.NewDense(28, 28, nil), block(200), block(50)}
	values, err := e.Extract(context.Background(), images)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	want := []float64{252 * 100.0 / 784, 0, 252 * 200.0 / 784, 252 * 50.0 / 784}
	for i := range want {
		if math.Abs(values[i]-want[i]) > 1e-9 {
			t.Fatalf("value %d = %v, want %v", i, values[i], want[i])
		}
	}
	if got := testutil.ToFloat64(metrics.images); got != 4 {
		t.Fatalf("images metric = %v, want 4", got)
	}
	if got := testutil.ToFloat64(metrics.generations); got != 16 {
		t.Fatalf("generations metric = %v, want 16", got)
	}
}

func TestExtractMatchesSequentialFeature(t *testing.T) {
	cfg := mnist.DefaultConfig()
	cfg.Steps = 3
	cfg.Edge = core.IgnoreMissingNeighbors
	images := []*mat.Dense{block(10), block(30)}

	parallel, err := New(cfg, 4, nil).Extract(context.Background(), images)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	for i, img := range images {
		v, err := New(cfg, 1, nil).Feature(img)
		if err != nil {
			t.Fatalf("feature: %v", err)
		}
		if v != parallel[i] {
			t.Fatalf("image %d: parallel %v != sequential %v", i, parallel[i], v)
		}
	}
}

func TestExtractReportsShapeMismatch(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	e := New(mnist.DefaultConfig(), 2, metrics)
	_, err := e.Extract(context.Background(), []*mat.Dense{block(1), mat.NewDense(10, 10, nil)})
	if !errors.Is(err, core.ErrShapeMismatch) {
		t.Fatalf("expected ErrShapeMismatch, got %v", err)
	}
	if got := testutil.ToFloat64(metrics.failures); got != 1 {
		t.Fatalf("failures metric = %v, want 1", got)
	}
}

func TestExtractHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(mnist.DefaultConfig(), 2, nil).Extract(ctx, []*mat.Dense{block(1)})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestDigitAverages(t *testing.T) {
	stats, err := DigitAverages([]float64{1, 3, 10, 5}, []int{7, 7, 2, 7})
	if err != nil {
		t.Fatalf("averages: %v", err)
	}
	if len(stats) != 2 || stats[0].Digit != 2 || stats[1].Digit != 7 {
		t.Fatalf("unexpected grouping: %+v", stats)
	}
	if stats[0].Mean != 10 || stats[0].StdDev != 0 {
		t.Fatalf("single-value digit: %+v", stats[0])
	}
	if stats[1].Count != 3 || stats[1].Mean != 3 || stats[1].StdDev != 2 {
		t.Fatalf("digit 7: %+v", stats[1])
	}
	if _, err := DigitAverages([]float64{1}, nil); err == nil {
		t.Fatal("expected length mismatch to fail")
	}
}

func TestSeparability(t *testing.T) {
	stats := []DigitStats{{Digit: 0, Mean: 0, StdDev: 1}, {Digit: 1, Mean: 4, StdDev: 1}}
	if got := Separability(stats); math.Abs(got-8) > 1e-9 {
		t.Fatalf("Separability = %v, want 8", got)
	}
	closer := []DigitStats{{Digit: 0, Mean: 0, StdDev: 1}, {Digit: 1, Mean: 1, StdDev: 1}}
	if Separability(closer) >= Separability(stats) {
		t.Fatal("closer means should score lower")
	}
	if Separability(stats[:1]) != 0 {
		t.Fatal("a single digit should score zero")
	}
}
