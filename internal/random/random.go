package random

import (
	"io"

	"github.com/google/uuid"
)

// Source is the randomness every generator draws from. *math/rand.Rand satisfies it, which
// lets tests inject a seeded source or a Scripted one.
type Source interface {
	Float64() float64
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// Shuffle returns a shuffled copy of items. The input is left untouched.
func Shuffle[T any](src Source, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	src.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// Pick returns a uniformly chosen element, or the zero value for an empty slice.
func Pick[T any](src Source, items []T) T {
	var zero T
	if len(items) == 0 {
		return zero
	}
	return items[src.Intn(len(items))]
}

// Chance runs a Bernoulli trial with probability p.
func Chance(src Source, p float64) bool {
	return src.Float64() < p
}

// Between returns an int in [lo, hi].
func Between(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + src.Intn(hi-lo+1)
}

// Weighted picks an index from weights in proportion to their size. Weights that are zero or
// negative are never picked. It returns -1 when nothing can be picked.
func Weighted(src Source, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total == 0 {
		return -1
	}
	r := src.Float64() * total
	last := -1
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		if r < w {
			return i
		}
		r -= w
		last = i
	}
	return last
}

// SameElements reports whether a and b hold the same elements regardless of order.
func SameElements[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[T]int, len(a))
	for _, v := range a {
		counts[v]++
	}
	for _, v := range b {
		counts[v]--
		if counts[v] < 0 {
			return false
		}
	}
	return true
}

// NewID returns a version 4 UUID whose bytes come from src, so a seeded run produces the same ids.
func NewID(src Source) string {
	id, err := uuid.NewRandomFromReader(reader{src})
	if err != nil {
		// reader never fails
		return uuid.Nil.String()
	}
	return id.String()
}

type reader struct{ src Source }

var _ io.Reader = reader{}

func (r reader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(r.src.Intn(256))
	}
	return len(p), nil
}
