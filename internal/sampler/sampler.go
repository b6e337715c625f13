// Package sampler picks one document with probability biased towards short
// ones. A page count k present in the corpus gets weight count(k)/k^decay,
// normalized over all present page counts; the file is then chosen uniformly
// among those with the drawn page count.
package sampler

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/local/paperpick/internal/corpus"
)

var (
	// ErrEmptyCorpus means there is nothing to sample from.
	ErrEmptyCorpus = errors.New("empty corpus: no PDF files found")
	// ErrInvalidDecay rejects negative, NaN or infinite decay exponents.
	ErrInvalidDecay = errors.New("invalid decay exponent")
)

// Source is the uniform randomness the sampler consumes. *rand.Rand from
// math/rand/v2 satisfies it.
type Source interface {
	Float64() float64
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }
func (globalSource) IntN(n int) int   { return rand.IntN(n) }

// Default returns the process-wide source, seeded from system entropy.
func Default() Source { return globalSource{} }

// Weight is one row of a WeightTable.
type Weight struct {
	Pages       int
	Files       int
	Probability float64
}

// WeightTable holds one Weight per distinct page count, ascending by Pages.
// Probabilities are strictly positive and sum to 1.
type WeightTable []Weight

// Selection is the chosen document.
type Selection struct {
	Path        string
	Pages       int
	Probability float64 // probability of the Pages group, not of the file
}

// FileProbability is the overall chance this particular file had.
func (s Selection) FileProbability(groupSize int) float64 {
	if groupSize <= 0 {
		return 0
	}
	return s.Probability / float64(groupSize)
}

// BuildWeights derives the table for groups under the given decay exponent.
func BuildWeights(groups corpus.Groups, decay float64) (WeightTable, error) {
	if math.IsNaN(decay) || math.IsInf(decay, 0) || decay < 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDecay, decay)
	}

	table := make(WeightTable, 0, len(groups))
	raw := make([]float64, 0, len(groups))
	var sum float64
	for _, k := range groups.PageCounts() {
		paths := groups[k]
		if len(paths) == 0 {
			continue
		}
		if k <= 0 {
			return nil, &corpus.DegenerateWeightError{Path: paths[0], Pages: k}
		}
		w := float64(len(paths)) / math.Pow(float64(k), decay)
		if w <= 0 || math.IsInf(w, 0) || math.IsNaN(w) {
			return nil, &corpus.DegenerateWeightError{Path: paths[0], Pages: k}
		}
		table = append(table, Weight{Pages: k, Files: len(paths)})
		raw = append(raw, w)
		sum += w
	}
	if len(table) == 0 {
		return nil, ErrEmptyCorpus
	}

	if len(table) == 1 {
		table[0].Probability = 1
		return table, nil
	}
	for i := range table {
		table[i].Probability = raw[i] / sum
		if table[i].Probability <= 0 {
			// underflow: page count so large its weight vanished next to the rest
			return nil, &corpus.DegenerateWeightError{Path: groups[table[i].Pages][0], Pages: table[i].Pages}
		}
	}
	return table, nil
}

// Probability returns p(pages), or 0 when the page count is absent.
func (t WeightTable) Probability(pages int) float64 {
	for _, w := range t {
		if w.Pages == pages {
			return w.Probability
		}
	}
	return 0
}

// Sum is the total probability mass, 1 up to rounding.
func (t WeightTable) Sum() float64 {
	var s float64
	for _, w := range t {
		s += w.Probability
	}
	return s
}

// Draw samples a page count from the categorical distribution using a single
// uniform variate. Rounding slack at the top end falls to the last entry.
func (t WeightTable) Draw(rng Source) int {
	if len(t) == 0 {
		return 0
	}
	u := rng.Float64()
	var acc float64
	for _, w := range t {
		acc += w.Probability
		if u < acc {
			return w.Pages
		}
	}
	return t[len(t)-1].Pages
}

// Pick draws a page count from table and then a path uniformly from its group.
func Pick(groups corpus.Groups, table WeightTable, rng Source) (Selection, error) {
	if len(table) == 0 || groups.Total() == 0 {
		return Selection{}, ErrEmptyCorpus
	}
	if rng == nil {
		rng = Default()
	}
	k := table.Draw(rng)
	paths := groups[k]
	if len(paths) == 0 {
		return Selection{}, fmt.Errorf("weight table out of sync with corpus: no files with %d pages", k)
	}
	return Selection{
		Path:        paths[rng.IntN(len(paths))],
		Pages:       k,
		Probability: table.Probability(k),
	}, nil
}

// Select builds the weight table and picks from it in one step.
func Select(groups corpus.Groups, decay float64, rng Source) (Selection, error) {
	table, err := BuildWeights(groups, decay)
	if err != nil {
		return Selection{}, err
	}
	return Pick(groups, table, rng)
}
