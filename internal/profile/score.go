package profile

import (
	"encoding/json"
	"fmt"
	"os"
)

// Weights defines the contribution of each similarity factor.
type Weights struct {
	Symptom     float64 `json:"symptom"`
	Trigger     float64 `json:"trigger"`
	Sensitivity float64 `json:"sensitivity"`
}

// DefaultWeights returns the standard weights: 10 per shared symptom, 8 per
// shared trigger and 5 per step of sensitivity closeness.
func DefaultWeights() Weights {
	return Weights{
		Symptom:     10,
		Trigger:     8,
		Sensitivity: 5,
	}
}

// LoadWeightsFromFile loads weights from a JSON file. Missing keys keep their
// default value; on error the defaults are returned alongside it.
func LoadWeightsFromFile(path string) (Weights, error) {
	w := DefaultWeights()
	b, err := os.ReadFile(path)
	if err != nil {
		return w, fmt.Errorf("read weights file: %w", err)
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return DefaultWeights(), fmt.Errorf("unmarshal weights: %w", err)
	}
	return w, nil
}

// Score computes how similar candidate is to subject using the default weights.
func Score(subject, candidate UserProfile) float64 {
	return DefaultWeights().Score(subject, candidate)
}

// Score sums the shared-symptom, shared-trigger and sensitivity-closeness
// contributions. The closeness term (5 - |diff|) is always added, so two valid
// profiles never score below 1*Sensitivity.
func (w Weights) Score(subject, candidate UserProfile) float64 {
	var score float64

	score += w.Symptom * float64(overlap(subject.CommonSymptoms, candidate.CommonSymptoms))
	score += w.Trigger * float64(overlap(subject.Triggers, candidate.Triggers))

	diff := subject.PressureSensitivity - candidate.PressureSensitivity
	if diff < 0 {
		diff = -diff
	}
	score += float64(MaxSensitivity-diff) * w.Sensitivity

	return score
}

// overlap counts the distinct labels present in both a and b, so repeated
// labels never make the score asymmetric.
func overlap(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	have := make(map[string]struct{}, len(b))
	for _, s := range b {
		have[s] = struct{}{}
	}
	n := 0
	for _, s := range a {
		if _, ok := have[s]; ok {
			n++
			delete(have, s)
		}
	}
	return n
}
