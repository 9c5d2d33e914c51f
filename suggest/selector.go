// Package suggest picks a random food suggestion for a mood.
package suggest

import (
	"math/rand/v2"

	"moodbites/catalog"
)

// Selector is stateless: the current suggestion is always passed in by the caller.
type Selector struct {
	catalog *catalog.Catalog
	intn    func(n int) int
}

type Option func(*Selector)

// WithRand draws indexes from r instead of the global source. r must not be shared across goroutines.
func WithRand(r *rand.Rand) Option {
	return func(s *Selector) { s.intn = r.IntN }
}

func NewSelector(c *catalog.Catalog, opts ...Option) *Selector {
	s := &Selector{catalog: c, intn: rand.IntN}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Pick returns a uniformly random suggestion for moodID, or false when the mood has none.
func (s *Selector) Pick(moodID string) (catalog.FoodSuggestion, bool) {
	candidates := s.catalog.ForMood(moodID)
	if len(candidates) == 0 {
		return catalog.FoodSuggestion{}, false
	}
	return candidates[s.intn(len(candidates))], true
}

// PickDifferent is Pick, redrawing until the result differs from currentID.
// A mood with a single suggestion returns it even when it is the current one.
func (s *Selector) PickDifferent(moodID, currentID string) (catalog.FoodSuggestion, bool) {
	candidates := s.catalog.ForMood(moodID)
	switch len(candidates) {
	case 0:
		return catalog.FoodSuggestion{}, false
	case 1:
		return candidates[0], true
	}

	for {
		c := candidates[s.intn(len(candidates))]
		if c.ID != currentID {
			return c, true
		}
	}
}
