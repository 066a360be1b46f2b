package synth

import (
	"math"
	"math/rand"
	"sort"
)

// Sampler wraps a single seeded random source. Every generator draws from
// one Sampler so that a run is fully reproducible from one seed value.
type Sampler struct {
	rng *rand.Rand
}

// NewSampler returns a Sampler seeded for reproducibility.
func NewSampler(seed int64) *Sampler {
	return &Sampler{rng: rand.New(rand.NewSource(seed))}
}

// Float64 returns a uniform value in [0, 1).
func (s *Sampler) Float64() float64 { return s.rng.Float64() }

// Chance reports true with probability p.
func (s *Sampler) Chance(p float64) bool { return s.rng.Float64() < p }

// IntBetween returns a uniform integer in [lo, hi] inclusive.
func (s *Sampler) IntBetween(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.Intn(hi-lo+1)
}

// Int63Between returns a uniform int64 in [lo, hi] inclusive.
func (s *Sampler) Int63Between(lo, hi int64) int64 {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.Int63n(hi-lo+1)
}

// Shuffle pseudo-randomizes the order of n elements.
func (s *Sampler) Shuffle(n int, swap func(i, j int)) { s.rng.Shuffle(n, swap) }

// Pick returns a uniformly random element of pool. pool must be non-empty.
func Pick[T any](s *Sampler, pool []T) T {
	return pool[s.rng.Intn(len(pool))]
}

// Weighted pairs a category with its non-negative sampling weight.
type Weighted[T any] struct {
	Item   T
	Weight float64
}

// WeightedTable draws categories with probability proportional to their
// weights. Weights need not sum to 1. The table precomputes a cumulative
// distribution once so repeated draws are O(log n); categories are kept in
// declaration order so draws are deterministic for a given seed.
type WeightedTable[T any] struct {
	items []T
	cum   []float64
	total float64
}

// NewWeightedTable builds a table from ordered category/weight pairs.
// Zero-weight categories are retained but never drawn.
func NewWeightedTable[T any](entries []Weighted[T]) *WeightedTable[T] {
	t := &WeightedTable[T]{
		items: make([]T, 0, len(entries)),
		cum:   make([]float64, 0, len(entries)),
	}
	for _, e := range entries {
		t.total += e.Weight
		t.items = append(t.items, e.Item)
		t.cum = append(t.cum, t.total)
	}
	return t
}

// Sample draws one category.
func (t *WeightedTable[T]) Sample(s *Sampler) T {
	r := s.rng.Float64() * t.total
	i := sort.SearchFloat64s(t.cum, r)
	if i >= len(t.items) {
		i = len(t.items) - 1
	}
	return t.items[i]
}

// Gamma draws from a Gamma(shape, scale) distribution using the
// Marsaglia-Tsang squeeze method. Requires shape >= 1.
func (s *Sampler) Gamma(shape, scale float64) float64 {
	d := shape - 1.0/3.0
	c := 1.0 / math.Sqrt(9.0*d)
	for {
		x := s.rng.NormFloat64()
		v := 1.0 + c*x
		if v <= 0 {
			continue
		}
		v = v * v * v
		u := s.rng.Float64()
		if u < 1.0-0.0331*x*x*x*x {
			return d * v * scale
		}
		if math.Log(u) < 0.5*x*x+d*(1.0-v+math.Log(v)) {
			return d * v * scale
		}
	}
}

// LeadTimeDays draws a scheduling lead time from Gamma(2, 7), clipped to
// [0, 90] whole days.
func (s *Sampler) LeadTimeDays() int {
	v := int(s.Gamma(gammaLeadShape, gammaLeadScale))
	if v < 0 {
		return 0
	}
	if v > maxLeadTimeDays {
		return maxLeadTimeDays
	}
	return v
}
