package ahp

import (
	"fmt"
	"math"

	"github.com/MikeSquared-Agency/Valumetric/internal/calcerr"
)

// Method selects the weight-derivation algorithm.
type Method int

const (
	// GeometricMean normalizes the row geometric means. It is the default.
	GeometricMean Method = iota
	// ColumnNormalization averages each row of the column-normalized matrix.
	// Exposed for cross-checking only.
	ColumnNormalization
)

func (m Method) String() string {
	switch m {
	case GeometricMean:
		return "geometric_mean"
	case ColumnNormalization:
		return "column_normalization"
	default:
		return fmt.Sprintf("method(%d)", int(m))
	}
}

// ParseMethod maps a method name to a Method. The empty string is GeometricMean.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "", "geometric_mean":
		return GeometricMean, nil
	case "column_normalization":
		return ColumnNormalization, nil
	default:
		return 0, calcerr.Domain("method", "unknown weighting method %q", s)
	}
}

// GeometricMeanWeights returns w_i = gm_i / Σ gm_j where gm_i is the
// geometric mean of row i. m must already be valid.
func GeometricMeanWeights(m Matrix) []float64 {
	n := len(m)
	gms := make([]float64, n)
	var sum float64

	for i, row := range m {
		// exp of the mean log keeps the product from overflowing for large n.
		var logSum float64
		for _, v := range row {
			logSum += math.Log(v)
		}
		gms[i] = math.Exp(logSum / float64(n))
		sum += gms[i]
	}

	weights := make([]float64, n)
	for i := range gms {
		weights[i] = gms[i] / sum
	}
	return weights
}

// ColumnNormalizationWeights divides each entry by its column sum and
// averages each resulting row. m must already be valid.
func ColumnNormalizationWeights(m Matrix) []float64 {
	n := len(m)

	colSums := make([]float64, n)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			colSums[j] += m[i][j]
		}
	}

	weights := make([]float64, n)
	for i := 0; i < n; i++ {
		var rowSum float64
		for j := 0; j < n; j++ {
			rowSum += m[i][j] / colSums[j]
		}
		weights[i] = rowSum / float64(n)
	}
	return weights
}

func computeWeights(m Matrix, method Method) ([]float64, error) {
	switch method {
	case GeometricMean:
		return GeometricMeanWeights(m), nil
	case ColumnNormalization:
		return ColumnNormalizationWeights(m), nil
	default:
		return nil, calcerr.Domain("method", "unknown weighting method %v", method)
	}
}
