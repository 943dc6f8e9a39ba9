// Package dataset reads MNIST-style IDX files into gonum matrices and
// selects the digit subsets the experiments run on.
package dataset

import (
	"bufio"
	"compress/gzip"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"
)

const (
	imageMagic = 0x00000803
	labelMagic = 0x00000801

	// maxSide bounds each image dimension and maxRecords the record count
	// a header may announce.
	maxSide    = 4096
	maxRecords = 10_000_000
)

var (
	// ErrBadMagic reports an IDX stream whose header does not match its kind.
	ErrBadMagic = errors.New("unexpected idx magic number")
	// ErrBadHeader reports header dimensions that are zero or out of range.
	ErrBadHeader = errors.New("invalid idx header")
)

// Options tunes how images are decoded.
type Options struct {
	// Limit caps the number of records read. Zero reads everything.
	Limit int
	// Normalize scales pixel values from [0,255] to [0,1].
	Normalize bool
}

// ReadImages decodes an idx3-ubyte stream into one matrix per image.
func ReadImages(r io.Reader, opts Options) ([]*mat.Dense, error) {
	var header [16]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("read image header: %w", err)
	}
	if magic := binary.BigEndian.Uint32(header[0:4]); magic != imageMagic {
		return nil, fmt.Errorf("image magic %#x: %w", magic, ErrBadMagic)
	}
	count := int(binary.BigEndian.Uint32(header[4:8]))
	rows := int(binary.BigEndian.Uint32(header[8:12]))
	cols := int(binary.BigEndian.Uint32(header[12:16]))
	if count > maxRecords {
		return nil, fmt.Errorf("image count %d exceeds %d: %w", count, maxRecords, ErrBadHeader)
	}
	if rows <= 0 || cols <= 0 || rows > maxSide || cols > maxSide {
		return nil, fmt.Errorf("image dims %dx%d: %w", rows, cols, ErrBadHeader)
	}
	if opts.Limit > 0 && opts.Limit < count {
		count = opts.Limit
	}

	// Grow as records arrive so a truncated stream fails before the
	// announced count is allocated.
	images := make([]*mat.Dense, 0, min(count, 1024))
	buf := make([]byte, rows*cols)
	for i := 0; i < count; i++ {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("read image %d: %w", i, err)
		}
		data := make([]float64, len(buf))
		for j, b := range buf {
			data[j] = float64(b)
			if opts.Normalize {
				data[j] /= 255
			}
		}
		images = append(images, mat.NewDense(rows, cols, data))
	}
	return images, nil
}

// ReadLabels decodes an idx1-ubyte stream.
func ReadLabels(r io.Reader, opts Options) ([]int, error) {
	var header [8]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("read label header: %w", err)
	}
	if magic := binary.BigEndian.Uint32(header[0:4]); magic != labelMagic {
		return nil, fmt.Errorf("label magic %#x: %w", magic, ErrBadMagic)
	}
	count := int(binary.BigEndian.Uint32(header[4:8]))
	if count > maxRecords {
		return nil, fmt.Errorf("label count %d exceeds %d: %w", count, maxRecords, ErrBadHeader)
	}
	if opts.Limit > 0 && opts.Limit < count {
		count = opts.Limit
	}
	raw := make([]byte, count)
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, fmt.Errorf("read labels: %w", err)
	}
	labels := make([]int, count)
	for i, b := range raw {
		labels[i] = int(b)
	}
	return labels, nil
}

// Load reads a matching pair of image and label files. Gzip-compressed files
// are detected from their content.
func Load(imagesPath, labelsPath string, opts Options) (*Set, error) {
	var images []*mat.Dense
	err := withReader(imagesPath, func(r io.Reader) error {
		var err error
		images, err = ReadImages(r, opts)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", imagesPath, err)
	}
	var labels []int
	err = withReader(labelsPath, func(r io.Reader) error {
		var err error
		labels, err = ReadLabels(r, opts)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", labelsPath, err)
	}
	if len(images) != len(labels) {
		return nil, fmt.Errorf("%d images but %d labels", len(images), len(labels))
	}
	return &Set{Images: images, Labels: labels}, nil
}

// LoadDir loads the standard training or test split from dir, accepting
// both the raw and the .gz file names.
func LoadDir(dir string, train bool, opts Options) (*Set, error) {
	prefix := "t10k"
	if train {
		prefix = "train"
	}
	images := findFile(dir, prefix+"-images-idx3-ubyte")
	labels := findFile(dir, prefix+"-labels-idx1-ubyte")
	return Load(images, labels, opts)
}

func findFile(dir, name string) string {
	plain := filepath.Join(dir, name)
	if _, err := os.Stat(plain); err == nil {
		return plain
	}
	return plain + ".gz"
}

func withReader(path string, fn func(io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	br := bufio.NewReader(f)
	magic, err := br.Peek(2)
	if err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		zr, err := gzip.NewReader(br)
		if err != nil {
			return err
		}
		defer zr.Close()
		return fn(zr)
	}
	return fn(br)
}
