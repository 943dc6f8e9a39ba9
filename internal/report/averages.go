package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"mnist-ca/internal/features"
)

const rule = " -------------------------------------------- "

// WriteAverages appends one block per digit listing the per-image features
// and their mean.
func WriteAverages(w io.Writer, stats []features.DigitStats) error {
	for _, s := range stats {
		if err := WriteDigit(w, s); err != nil {
			return err
		}
	}
	return nil
}

// WriteDigit writes the block for a single digit.
func WriteDigit(w io.Writer, s features.DigitStats) error {
	_, err := fmt.Fprintf(w, "\n%s\nAverages for %d is: \n %s\n Total average is %s\n%s\n",
		rule, s.Digit, formatValues(s.Values), formatFloat(s.Mean), rule)
	return err
}

func formatValues(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = formatFloat(v)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 8, 64)
}
