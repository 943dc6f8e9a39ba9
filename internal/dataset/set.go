package dataset

import (
	"math/rand/v2"

	"github.com/campoy/unique"
	"gonum.org/v1/gonum/mat"
)

// Set pairs images with their digit labels.
type Set struct {
	Images []*mat.Dense
	Labels []int
}

// Len reports the number of examples.
func (s *Set) Len() int { return len(s.Images) }

// ExclusiveDigit keeps only the examples labelled d.
func (s *Set) ExclusiveDigit(d int) *Set {
	return s.ExclusiveDigits([]int{d}, 0, false, 0)
}

// ExclusiveDigits keeps examples whose label is in digits, taking at most
// cutSize examples per digit (zero keeps all). With shuffle the examples of
// each digit are drawn in a seeded random order and the result is shuffled;
// otherwise dataset order is kept within each digit.
func (s *Set) ExclusiveDigits(digits []int, cutSize int, shuffle bool, seed int64) *Set {
	digits = Digits(digits)
	var rng *rand.Rand
	if shuffle {
		rng = rand.New(rand.NewPCG(uint64(seed), 0))
	}

	out := &Set{}
	for _, d := range digits {
		var idx []int
		for i, label := range s.Labels {
			if label == d {
				idx = append(idx, i)
			}
		}
		if rng != nil {
			rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
		}
		if cutSize > 0 && len(idx) > cutSize {
			idx = idx[:cutSize]
		}
		for _, i := range idx {
			out.Images = append(out.Images, s.Images[i])
			out.Labels = append(out.Labels, s.Labels[i])
		}
	}
	if rng != nil {
		rng.Shuffle(out.Len(), func(i, j int) {
			out.Images[i], out.Images[j] = out.Images[j], out.Images[i]
			out.Labels[i], out.Labels[j] = out.Labels[j], out.Labels[i]
		})
	}
	return out
}

// Digits returns a sorted, de-duplicated copy of digits.
func Digits(digits []int) []int {
	out := append([]int(nil), digits...)
	unique.Slice(&out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
