package render

import (
	"bytes"
	"errors"
	"fmt"
	"image/jpeg"

	"mnist-ca/internal/core"

	"github.com/icza/mjpeg"
)

// WriteAnimation encodes every snapshot of h as a frame of an MJPEG AVI
// file at path.
func WriteAnimation(path string, h core.History, opts Options, fps int) (err error) {
	if len(h) == 0 {
		return errors.New("render: empty history")
	}
	if fps <= 0 {
		fps = 5
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	if opts.Max <= 0 && len(opts.Palette) == 0 {
		opts.Max = HistoryMax(h, opts.Channel)
	}

	first := h[0]
	aw, err := mjpeg.New(path, int32(first.Width*opts.Scale), int32(first.Height*opts.Scale), int32(fps))
	if err != nil {
		return fmt.Errorf("render: create %s: %w", path, err)
	}
	defer func() {
		if cerr := aw.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	var buf bytes.Buffer
	for _, s := range h {
		buf.Reset()
		if err := jpeg.Encode(&buf, Frame(s, opts), &jpeg.Options{Quality: 90}); err != nil {
			return fmt.Errorf("render: encode generation %d: %w", s.Generation, err)
		}
		if err := aw.AddFrame(buf.Bytes()); err != nil {
			return fmt.Errorf("render: add frame %d: %w", s.Generation, err)
		}
	}
	return nil
}
