package profile

import (
	"fmt"
	"sort"
)

// DefaultLimit is the number of matches returned when no limit is given.
const DefaultLimit = 10

// Engine ranks candidate profiles by similarity to a subject.
type Engine struct {
	weights Weights
}

func NewEngine(w Weights) *Engine {
	return &Engine{weights: w}
}

// Weights returns the weights the engine scores with.
func (e *Engine) Weights() Weights {
	return e.weights
}

// Rank scores every candidate against subject, drops non-positive scores,
// sorts by score descending and returns at most limit results. Ties keep the
// candidates' input order. A limit <= 0 means DefaultLimit.
//
// The subject and every candidate must pass Validate; the first invalid
// profile fails the whole call.
func (e *Engine) Rank(subject UserProfile, candidates []UserProfile, limit int) ([]MatchResult, error) {
	if err := Validate(subject); err != nil {
		return nil, fmt.Errorf("subject: %w", err)
	}

	out := make([]MatchResult, 0, len(candidates))
	for i, c := range candidates {
		if err := Validate(c); err != nil {
			return nil, fmt.Errorf("candidate %d: %w", i, err)
		}
		score := e.weights.Score(subject, c)
		if score <= 0 {
			continue
		}
		out = append(out, MatchResult{Profile: c, Score: score})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })

	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
