// Package random is the single source of randomness for loot tables,
// disease rolls and games of chance. Every consumer takes a Picker so
// tests can substitute a fixed-sequence source.
package random

import (
	"math/rand"
	"time"
)

// Source is the randomness provider behind a Picker.
type Source interface {
	// Intn returns a non-negative int in [0, n). n must be > 0.
	Intn(n int) int
	// Float64 returns a float in [0.0, 1.0).
	Float64() float64
}

// Picker performs weighted and uniform selection over candidates.
type Picker struct {
	src Source
}

// NewPicker creates a Picker backed by the given source.
func NewPicker(src Source) *Picker {
	return &Picker{src: src}
}

// NewDefaultPicker creates a Picker seeded from the wall clock.
func NewDefaultPicker() *Picker {
	return &Picker{src: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Weighted is one candidate in a weighted table.
type Weighted[T any] struct {
	Value  T
	Weight int64
}

// WeightedPick selects one candidate with probability proportional to
// its weight. Non-positive weights contribute nothing; if the total
// weight is zero the pick degrades to a uniform choice rather than
// failing. An empty table returns the zero value and false.
func WeightedPick[T any](p *Picker, candidates []Weighted[T]) (T, bool) {
	var zero T
	if len(candidates) == 0 {
		return zero, false
	}

	var total int64
	for _, c := range candidates {
		if c.Weight > 0 {
			total += c.Weight
		}
	}
	if total == 0 {
		return candidates[p.src.Intn(len(candidates))].Value, true
	}

	roll := int64(p.src.Float64() * float64(total))
	for _, c := range candidates {
		if c.Weight <= 0 {
			continue
		}
		if roll < c.Weight {
			return c.Value, true
		}
		roll -= c.Weight
	}
	// Float64 rounding can land exactly on total; give it to the last
	// positive-weight candidate.
	for i := len(candidates) - 1; i >= 0; i-- {
		if candidates[i].Weight > 0 {
			return candidates[i].Value, true
		}
	}
	return zero, false
}

// UniformPick selects one candidate uniformly at random. An empty slice
// returns the zero value and false.
func UniformPick[T any](p *Picker, candidates []T) (T, bool) {
	var zero T
	if len(candidates) == 0 {
		return zero, false
	}
	return candidates[p.src.Intn(len(candidates))], true
}

// Shuffle permutes the slice in place using Fisher-Yates.
func Shuffle[T any](p *Picker, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := p.src.Intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

// Chance returns true with probability prob, clamped to [0, 1].
func (p *Picker) Chance(prob float64) bool {
	if prob <= 0 {
		return false
	}
	if prob >= 1 {
		return true
	}
	return p.src.Float64() < prob
}

// IntBetween returns a random int in [min, max] inclusive.
func (p *Picker) IntBetween(min, max int) int {
	if max <= min {
		return min
	}
	return min + p.src.Intn(max-min+1)
}
