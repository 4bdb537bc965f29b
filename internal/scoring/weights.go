package scoring

import (
	"fmt"
	"math"

	"github.com/MikeSquared-Agency/Valumetric/internal/calcerr"
)

// SumTolerance is how far a directly assigned weight vector may drift from 1.0.
const SumTolerance = 0.01

// CriteriaWeights pairs evaluation criteria with their relative importance.
// Names[i] carries Weights[i].
type CriteriaWeights struct {
	Names   []string  `json:"criteria_names"`
	Weights []float64 `json:"weights"`
}

// NewCriteriaWeights copies names and weights and validates the result.
func NewCriteriaWeights(names []string, weights []float64) (CriteriaWeights, error) {
	w := CriteriaWeights{
		Names:   append([]string(nil), names...),
		Weights: append([]float64(nil), weights...),
	}
	if err := w.Validate(); err != nil {
		return CriteriaWeights{}, err
	}
	return w, nil
}

// Sum returns the total of all weights.
func (w CriteriaWeights) Sum() float64 {
	var total float64
	for _, v := range w.Weights {
		total += v
	}
	return total
}

// Validate checks that every criterion has a name and a non-negative weight
// and that the weights sum to 1.0 within SumTolerance.
func (w CriteriaWeights) Validate() error {
	if len(w.Weights) == 0 {
		return calcerr.Structural("weights", "at least one weight is required")
	}
	if len(w.Names) != len(w.Weights) {
		return calcerr.Structural("criteria_names", "expected %d names, got %d", len(w.Weights), len(w.Names))
	}
	seen := make(map[string]bool, len(w.Names))
	for i, name := range w.Names {
		if name == "" {
			return calcerr.Structural(fmt.Sprintf("criteria_names[%d]", i), "must not be empty")
		}
		if seen[name] {
			return calcerr.Structural(fmt.Sprintf("criteria_names[%d]", i), "duplicate criterion %q", name)
		}
		seen[name] = true
	}
	for i, v := range w.Weights {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return calcerr.Domain(fmt.Sprintf("weights[%d]", i), "must be a non-negative number, got %f", v)
		}
	}
	if math.Abs(w.Sum()-1.0) > SumTolerance {
		return calcerr.Domain("weights", "sum to %.4f, must sum to 1.0", w.Sum())
	}
	return nil
}

// Weight returns the weight of the named criterion.
func (w CriteriaWeights) Weight(name string) (float64, bool) {
	for i, n := range w.Names {
		if n == name {
			return w.Weights[i], true
		}
	}
	return 0, false
}
