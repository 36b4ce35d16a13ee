// Package odds generates the synthetic decimal odds fed to the classifier
// and derives display figures from them.
package odds

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"sportiq/internal/common"
)

// Range is a closed-open interval [Min, Max) of decimal odds.
type Range struct {
	Min, Max float64
}

var (
	HomeRange = Range{Min: common.HomeOddsMin, Max: common.HomeOddsMax}
	AwayRange = Range{Min: common.AwayOddsMin, Max: common.AwayOddsMax}
)

// Pair is one sampled (home, away) odds draw.
type Pair struct {
	Home float64
	Away float64
}

// Sampler draws odds pairs from an injectable random source. It is safe
// for concurrent use.
type Sampler struct {
	mu   sync.Mutex
	rng  *rand.Rand
	home Range
	away Range
	seed uint64
}

// NewSampler returns a sampler over the default ranges. A zero seed picks a
// time-derived one, so draws are not reproducible across runs.
func NewSampler(seed uint64) *Sampler {
	s, _ := NewSamplerWithRanges(seed, HomeRange, AwayRange)
	return s
}

// NewSamplerWithRanges returns a sampler over custom ranges. Each range
// must have Max > Min.
func NewSamplerWithRanges(seed uint64, home, away Range) (*Sampler, error) {
	if home.Max <= home.Min || away.Max <= away.Min {
		return nil, fmt.Errorf("invalid odds range: home %v away %v", home, away)
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Sampler{
		rng:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		home: home,
		away: away,
		seed: seed,
	}, nil
}

// Seed reports the effective seed.
func (s *Sampler) Seed() uint64 { return s.seed }

// Next draws home odds and then away odds, each uniform over its range.
func (s *Sampler) Next() Pair {
	s.mu.Lock()
	defer s.mu.Unlock()

	home := s.home.Min + s.rng.Float64()*(s.home.Max-s.home.Min)
	away := s.away.Min + s.rng.Float64()*(s.away.Max-s.away.Min)
	return Pair{Home: home, Away: away}
}
