package ahp

// ConsistencyThreshold is the largest consistency ratio still considered acceptable.
const ConsistencyThreshold = 0.10

// randomIndex holds Saaty's random-index constants for n = 1..15.
var randomIndex = [...]float64{
	0.00, // 1
	0.00, // 2
	0.58, // 3
	0.90, // 4
	1.12, // 5
	1.24, // 6
	1.32, // 7
	1.41, // 8
	1.45, // 9
	1.49, // 10
	1.51, // 11
	1.48, // 12
	1.56, // 13
	1.57, // 14
	1.59, // 15
}

// largeRandomIndex is used for every n above the table.
const largeRandomIndex = 1.59

// RandomIndex returns RI(n). Sizes outside 1..15 get 1.59.
func RandomIndex(n int) float64 {
	if n < 1 || n > len(randomIndex) {
		return largeRandomIndex
	}
	return randomIndex[n-1]
}

// Consistency is the diagnostic computed from a matrix and its weights.
type Consistency struct {
	LambdaMax        float64 `json:"lambda_max"`
	ConsistencyIndex float64 `json:"consistency_index"`
	ConsistencyRatio float64 `json:"consistency_ratio"`
	Consistent       bool    `json:"is_consistent"`
}

// CheckConsistency computes λmax, CI, CR and the consistency verdict.
// Matrices of size 1 or 2 are consistent by construction: CR is 0 and the
// RI table is not consulted.
func CheckConsistency(m Matrix, weights []float64) Consistency {
	n := len(m)
	lambdaMax := lambdaMax(m, weights)

	var ci float64
	if n > 1 {
		ci = (lambdaMax - float64(n)) / float64(n-1)
	}

	var cr float64
	if n > 2 {
		if ri := RandomIndex(n); ri != 0 {
			cr = ci / ri
		}
	}

	return Consistency{
		LambdaMax:        lambdaMax,
		ConsistencyIndex: ci,
		ConsistencyRatio: cr,
		Consistent:       cr <= ConsistencyThreshold || n <= 2,
	}
}

// lambdaMax = (1/n) Σ (A·w)_i / w_i. Zero weights are skipped.
func lambdaMax(m Matrix, weights []float64) float64 {
	n := len(m)
	var sum float64
	for i := 0; i < n; i++ {
		var aw float64
		for j := 0; j < n; j++ {
			aw += m[i][j] * weights[j]
		}
		if weights[i] > 0 {
			sum += aw / weights[i]
		}
	}
	return sum / float64(n)
}
