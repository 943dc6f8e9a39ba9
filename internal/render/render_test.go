package render

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"mnist-ca/internal/core"
)

func TestPixelsGrayScale(t *testing.T) {
	buf := Pixels([]float64{0, 100, 200}, 1, Options{})
	want := []byte{0, 128, 255}
	for i, g := range want {
		if buf[i*4] != g || buf[i*4+3] != 0xff {
			t.Fatalf("pixel %d = %v, want gray %d", i, buf[i*4:i*4+4], g)
		}
	}
}

func TestPixelsPaletteClampsIndex(t *testing.T) {
	palette := []color.RGBA{{R: 1, A: 255}, {G: 2, A: 255}}
	buf := Pixels([]float64{0, 1, 5}, 1, Options{Palette: palette})
	if buf[0] != 1 || buf[5] != 2 || buf[9] != 2 {
		t.Fatalf("unexpected palette pixels %v", buf)
	}
}

func TestPixelsSelectsChannel(t *testing.T) {
	buf := Pixels([]float64{0, 10, 10, 0}, 2, Options{Channel: 1, Max: 10})
	if len(buf) != 8 {
		t.Fatalf("len = %d, want 8", len(buf))
	}
	if buf[0] != 255 || buf[4] != 0 {
		t.Fatalf("unexpected channel pixels %v", buf)
	}
}

func TestFrameScalesCells(t *testing.T) {
	s := core.Snapshot{Height: 1, Width: 2, Arity: 1, Values: []float64{1, 0}}
	img := Frame(s, Options{Scale: 3, Max: 1})
	if b := img.Bounds(); b.Dx() != 6 || b.Dy() != 3 {
		t.Fatalf("bounds = %v", b)
	}
	if got := img.RGBAAt(2, 2); got.R != 255 {
		t.Fatalf("cell 0 pixel = %v", got)
	}
	if got := img.RGBAAt(3, 0); got.R != 0 {
		t.Fatalf("cell 1 pixel = %v", got)
	}
}

func TestHistoryMax(t *testing.T) {
	h := core.History{
		{Arity: 1, Values: []float64{1, 7}},
		{Arity: 1, Values: []float64{3, 2}},
	}
	if got := HistoryMax(h, 0); got != 7 {
		t.Fatalf("HistoryMax = %v, want 7", got)
	}
}

func TestWriteAnimation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.avi")
	h := core.History{
		{Generation: 1, Height: 2, Width: 2, Arity: 1, Values: []float64{0, 1, 1, 0}},
		{Generation: 2, Height: 2, Width: 2, Arity: 1, Values: []float64{1, 0, 0, 1}},
	}
	if err := WriteAnimation(path, h, Options{Scale: 4}, 2); err != nil {
		t.Fatalf("WriteAnimation: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("expected non-empty animation file")
	}
}

func TestWriteAnimationRejectsEmptyHistory(t *testing.T) {
	if err := WriteAnimation(filepath.Join(t.TempDir(), "x.avi"), nil, Options{}, 1); err == nil {
		t.Fatal("expected error for empty history")
	}
}
