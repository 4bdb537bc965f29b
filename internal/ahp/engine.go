// Package ahp implements the Analytic Hierarchy Process: it turns a
// pairwise-comparison matrix into a normalized weight vector and reports how
// consistent the judgments behind the matrix are.
//
// Everything here is a pure function over its arguments and safe for
// concurrent use.
package ahp

import (
	"fmt"
	"math"
	"strings"

	"github.com/MikeSquared-Agency/Valumetric/internal/calcerr"
)

// Result is the outcome of one AHP calculation.
type Result struct {
	Method   string    `json:"method"`
	Criteria []string  `json:"criteria_names,omitempty"`
	Weights  []float64 `json:"weights"`
	Consistency
}

// Calculate validates m and derives weights with the geometric-mean method.
func Calculate(m Matrix) (Result, error) {
	return CalculateWith(m, GeometricMean)
}

// CalculateWith validates m and derives weights with the given method.
func CalculateWith(m Matrix, method Method) (Result, error) {
	if err := Validate(m); err != nil {
		return Result{}, err
	}
	weights, err := computeWeights(m, method)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Method:      method.String(),
		Weights:     weights,
		Consistency: CheckConsistency(m, weights),
	}, nil
}

// Evaluate builds the reciprocal matrix from its upper triangle, calculates
// it, and labels the weights with names. names may be empty; otherwise it
// must hold exactly n entries.
func Evaluate(n int, upper []float64, names []string, method Method) (Result, error) {
	if len(names) > 0 && len(names) != n {
		return Result{}, calcerr.Structural("criteria_names", "expected %d names, got %d", n, len(names))
	}
	m, err := BuildReciprocalMatrix(n, upper)
	if err != nil {
		return Result{}, err
	}
	res, err := CalculateWith(m, method)
	if err != nil {
		return Result{}, err
	}
	if len(names) > 0 {
		res.Criteria = append([]string(nil), names...)
	}
	return res, nil
}

// Advisory returns a human-readable warning when the result is inconsistent,
// or the empty string.
func (r Result) Advisory() string {
	if r.Consistent {
		return ""
	}
	return fmt.Sprintf("consistency ratio exceeds %.2f (CR=%.4f); review the pairwise judgments",
		ConsistencyThreshold, r.ConsistencyRatio)
}

// Percentages returns each weight as a rounded whole percentage.
func (r Result) Percentages() []int {
	out := make([]int, len(r.Weights))
	for i, w := range r.Weights {
		out[i] = int(math.Round(w * 100))
	}
	return out
}

func (r Result) String() string {
	var sb strings.Builder
	sb.WriteString("AhpResult{\n  weights=[")
	for i, w := range r.Weights {
		if i > 0 {
			sb.WriteString(", ")
		}
		if i < len(r.Criteria) {
			sb.WriteString(r.Criteria[i])
			sb.WriteString(":")
		}
		fmt.Fprintf(&sb, "%.4f", w)
	}
	sb.WriteString("]\n")
	fmt.Fprintf(&sb, "  lambdaMax=%.4f\n", r.LambdaMax)
	fmt.Fprintf(&sb, "  CI=%.4f\n", r.ConsistencyIndex)
	fmt.Fprintf(&sb, "  CR=%.4f (%.2f%%)\n", r.ConsistencyRatio, r.ConsistencyRatio*100)
	verdict := "consistent"
	if !r.Consistent {
		verdict = "inconsistent"
	}
	fmt.Fprintf(&sb, "  %s\n}", verdict)
	return sb.String()
}
