package ahp

import (
	"fmt"
	"math"

	"github.com/MikeSquared-Agency/Valumetric/internal/calcerr"
)

// Tolerance is the allowed deviation for the unit diagonal and reciprocal checks.
const Tolerance = 1e-4

// MaxSize bounds the number of criteria a matrix may compare.
const MaxSize = 64

// CheckSize rejects matrix sizes outside [1, MaxSize].
func CheckSize(n int) error {
	if n < 1 {
		return calcerr.Structural("matrix_size", "must be at least 1, got %d", n)
	}
	if n > MaxSize {
		return calcerr.Structural("matrix_size", "must be at most %d, got %d", MaxSize, n)
	}
	return nil
}

// Matrix is an n×n pairwise-comparison matrix. Entry [i][j] says how many
// times more important criterion i is than criterion j.
type Matrix [][]float64

// Size returns n.
func (m Matrix) Size() int { return len(m) }

// Validate checks that m is a positive reciprocal matrix: square, every
// element finite and > 0, unit diagonal, and m[i][j] == 1/m[j][i] within
// Tolerance. Checks run in that order and stop at the first violation.
func Validate(m Matrix) error {
	n := len(m)
	if n == 0 {
		return calcerr.Structural("matrix", "must not be nil or empty")
	}

	for i, row := range m {
		if row == nil {
			return calcerr.Structural(cell(i, -1), "row is missing")
		}
		if len(row) != n {
			return calcerr.Structural(cell(i, -1), "has %d columns, expected %d (matrix must be square)", len(row), n)
		}
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := m[i][j]
			if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
				return calcerr.Domain(cell(i, j), "must be a positive number, got %.4f", v)
			}
		}
	}

	for i := 0; i < n; i++ {
		if math.Abs(m[i][i]-1.0) > Tolerance {
			return calcerr.Domain(cell(i, i), "diagonal must be 1, got %.4f", m[i][i])
		}
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			expected := 1.0 / m[j][i]
			if math.Abs(m[i][j]-expected) > Tolerance {
				return calcerr.Domain(cell(i, j), "reciprocal violation: got %.4f, expected %.4f (1/matrix[%d][%d])",
					m[i][j], expected, j, i)
			}
		}
	}
	return nil
}

// BuildReciprocalMatrix fills an n×n matrix from its n(n-1)/2 upper-triangle
// values given in row-major order (for n=3: a01, a02, a12). The diagonal is
// set to 1 and each lower cell to the reciprocal of its mirror. Values are
// not checked for positivity here; Validate does that.
func BuildReciprocalMatrix(n int, upper []float64) (Matrix, error) {
	if err := CheckSize(n); err != nil {
		return nil, err
	}
	expected := n * (n - 1) / 2
	if len(upper) != expected {
		return nil, calcerr.Structural("upper_triangle", "expected %d values for n=%d, got %d", expected, n, len(upper))
	}

	m := make(Matrix, n)
	for i := range m {
		m[i] = make([]float64, n)
	}

	idx := 0
	for i := 0; i < n; i++ {
		m[i][i] = 1.0
		for j := i + 1; j < n; j++ {
			m[i][j] = upper[idx]
			m[j][i] = 1.0 / upper[idx]
			idx++
		}
	}
	return m, nil
}

func cell(i, j int) string {
	if j < 0 {
		return fmt.Sprintf("matrix[%d]", i)
	}
	return fmt.Sprintf("matrix[%d][%d]", i, j)
}
