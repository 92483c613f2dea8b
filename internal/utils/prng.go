// internal/utils/prng.go
package utils

import (
	"math/rand"
	"time"
)

// PRNGService wraps a seeded generator so a session can be replayed from its
// seed.
type PRNGService struct {
	seed int64
	rng  *rand.Rand
}

// NewPRNGService creates a generator. A zero seed uses the current time.
func NewPRNGService(seed int64) *PRNGService {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &PRNGService{
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// Seed returns the seed the generator was created with.
func (s *PRNGService) Seed() int64 {
	return s.seed
}

// Intn returns a number in [0, n).
func (s *PRNGService) Intn(n int) int {
	return s.rng.Intn(n)
}

// Float64 returns a number in [0.0, 1.0).
func (s *PRNGService) Float64() float64 {
	return s.rng.Float64()
}

// Weighted is an item with a selection weight.
type Weighted[T any] struct {
	Item   T
	Weight int
}

// ChooseWeighted sums the weights, draws a number in that range and returns
// the item it falls on. ok is false for an empty table.
func ChooseWeighted[T any](s *PRNGService, entries []Weighted[T]) (item T, ok bool) {
	idx := chooseIndex(s, entries)
	if idx < 0 {
		return item, false
	}
	return entries[idx].Item, true
}

// ChooseDistinct draws up to k items without replacement.
func ChooseDistinct[T any](s *PRNGService, entries []Weighted[T], k int) []T {
	pool := make([]Weighted[T], len(entries))
	copy(pool, entries)
	out := make([]T, 0, k)
	for len(out) < k && len(pool) > 0 {
		idx := chooseIndex(s, pool)
		out = append(out, pool[idx].Item)
		pool = append(pool[:idx], pool[idx+1:]...)
	}
	return out
}

func chooseIndex[T any](s *PRNGService, entries []Weighted[T]) int {
	if len(entries) == 0 {
		return -1
	}
	total := 0
	for _, e := range entries {
		if e.Weight > 0 {
			total += e.Weight
		}
	}
	if total <= 0 {
		// Degenerate table: fall back to the first entry.
		return 0
	}
	r := s.Intn(total)
	upto := 0
	for i, e := range entries {
		if e.Weight <= 0 {
			continue
		}
		if upto+e.Weight > r {
			return i
		}
		upto += e.Weight
	}
	return len(entries) - 1
}
