package qsim

import (
	"sort"
	"strconv"
)

// Counts maps a basis string to how often it was measured.
type Counts map[string]int

// Outcome is one entry of a Counts map.
type Outcome struct {
	Basis string
	Count int
}

func (c Counts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// MostFrequent returns the most measured basis string, lexically smallest on ties.
func (c Counts) MostFrequent() (string, int) {
	sorted := c.Sorted()
	if len(sorted) == 0 {
		return "", 0
	}
	return sorted[0].Basis, sorted[0].Count
}

// Sorted orders outcomes by descending count, then by basis string.
func (c Counts) Sorted() []Outcome {
	out := make([]Outcome, 0, len(c))
	for basis, n := range c {
		out = append(out, Outcome{Basis: basis, Count: n})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Basis < out[j].Basis
	})

	return out
}

// Probability is the observed frequency of basis.
func (c Counts) Probability(basis string) float64 {
	total := c.Total()
	if total == 0 {
		return 0
	}
	return float64(c[basis]) / float64(total)
}

// Value parses a basis string as a binary number.
func (o Outcome) Value() int {
	v, err := strconv.ParseInt(o.Basis, 2, 64)
	if err != nil {
		return -1
	}
	return int(v)
}
