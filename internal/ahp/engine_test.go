package ahp

import (
	"errors"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/MikeSquared-Agency/Valumetric/internal/calcerr"
)

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func mustBuild(t *testing.T, n int, upper ...float64) Matrix {
	t.Helper()
	m, err := BuildReciprocalMatrix(n, upper)
	if err != nil {
		t.Fatalf("BuildReciprocalMatrix(%d, %v): %v", n, upper, err)
	}
	return m
}

func sum(ws []float64) float64 {
	var s float64
	for _, w := range ws {
		s += w
	}
	return s
}

func TestCalculate_Indifferent(t *testing.T) {
	res, err := Calculate(mustBuild(t, 3, 1, 1, 1))
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	for i, w := range res.Weights {
		if !almostEqual(w, 1.0/3.0, 1e-12) {
			t.Errorf("weight[%d]: expected 1/3, got %f", i, w)
		}
	}
	if !almostEqual(res.LambdaMax, 3, 1e-12) {
		t.Errorf("expected lambdaMax 3, got %f", res.LambdaMax)
	}
	if !almostEqual(res.ConsistencyIndex, 0, 1e-12) || !almostEqual(res.ConsistencyRatio, 0, 1e-12) {
		t.Errorf("expected CI=CR=0, got CI=%f CR=%f", res.ConsistencyIndex, res.ConsistencyRatio)
	}
	if !res.Consistent {
		t.Error("expected consistent")
	}
	if res.Method != "geometric_mean" {
		t.Errorf("expected geometric_mean, got %s", res.Method)
	}
	if res.Advisory() != "" {
		t.Errorf("expected no advisory, got %q", res.Advisory())
	}
}

func TestCalculate_PerfectlyConsistent(t *testing.T) {
	// Built from priorities 4:2:1, so a[i][j] = v[i]/v[j].
	m := mustBuild(t, 3, 2, 4, 2)
	want := []float64{4.0 / 7, 2.0 / 7, 1.0 / 7}

	for _, method := range []Method{GeometricMean, ColumnNormalization} {
		t.Run(method.String(), func(t *testing.T) {
			res, err := CalculateWith(m, method)
			if err != nil {
				t.Fatalf("CalculateWith failed: %v", err)
			}
			for i := range want {
				if !almostEqual(res.Weights[i], want[i], 1e-9) {
					t.Errorf("weight[%d]: expected %f, got %f", i, want[i], res.Weights[i])
				}
			}
			if !almostEqual(res.LambdaMax, 3, 1e-9) {
				t.Errorf("expected lambdaMax 3, got %f", res.LambdaMax)
			}
			if !almostEqual(res.ConsistencyRatio, 0, 1e-9) {
				t.Errorf("expected CR 0, got %f", res.ConsistencyRatio)
			}
			if !res.Consistent {
				t.Error("expected consistent")
			}
		})
	}
}

func TestCalculate_CyclicJudgmentsAreInconsistent(t *testing.T) {
	// 0 > 1 > 2 > 0, each at strength 9.
	res, err := Calculate(mustBuild(t, 3, 9, 1.0/9, 9))
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	for i, w := range res.Weights {
		if !almostEqual(w, 1.0/3.0, 1e-12) {
			t.Errorf("weight[%d]: expected 1/3, got %f", i, w)
		}
	}
	wantLambda := 1 + 9 + 1.0/9
	if !almostEqual(res.LambdaMax, wantLambda, 1e-9) {
		t.Errorf("expected lambdaMax %f, got %f", wantLambda, res.LambdaMax)
	}
	wantCI := (wantLambda - 3) / 2
	if !almostEqual(res.ConsistencyIndex, wantCI, 1e-9) {
		t.Errorf("expected CI %f, got %f", wantCI, res.ConsistencyIndex)
	}
	if !almostEqual(res.ConsistencyRatio, wantCI/0.58, 1e-9) {
		t.Errorf("expected CR %f, got %f", wantCI/0.58, res.ConsistencyRatio)
	}
	if res.Consistent {
		t.Error("expected inconsistent")
	}
	if !strings.Contains(res.Advisory(), "0.10") {
		t.Errorf("expected advisory mentioning threshold, got %q", res.Advisory())
	}
}

func TestCalculate_SmallMatricesAlwaysConsistent(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		upper []float64
	}{
		{"n=1", 1, nil},
		{"n=2 equal", 2, []float64{1}},
		{"n=2 strong", 2, []float64{7}},
		{"n=2 extreme reciprocal", 2, []float64{1.0 / 9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Calculate(mustBuild(t, tt.n, tt.upper...))
			if err != nil {
				t.Fatalf("Calculate failed: %v", err)
			}
			if res.ConsistencyRatio != 0 {
				t.Errorf("expected CR 0, got %f", res.ConsistencyRatio)
			}
			if !res.Consistent {
				t.Error("expected consistent")
			}
			if !almostEqual(sum(res.Weights), 1, 1e-9) {
				t.Errorf("weights sum to %f", sum(res.Weights))
			}
		})
	}
}

func TestCalculate_TwoByTwoWeights(t *testing.T) {
	res, err := Calculate(mustBuild(t, 2, 7))
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	if !almostEqual(res.Weights[0], 7.0/8, 1e-12) || !almostEqual(res.Weights[1], 1.0/8, 1e-12) {
		t.Errorf("expected [0.875 0.125], got %v", res.Weights)
	}
	if !almostEqual(res.LambdaMax, 2, 1e-12) {
		t.Errorf("expected lambdaMax 2, got %f", res.LambdaMax)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		m        Matrix
		sentinel error
		field    string
	}{
		{"nil", nil, calcerr.ErrStructural, "matrix"},
		{"empty", Matrix{}, calcerr.ErrStructural, "matrix"},
		{"missing row", Matrix{{1, 2}, nil}, calcerr.ErrStructural, "matrix[1]"},
		{"not square", Matrix{{1, 2}, {0.5}}, calcerr.ErrStructural, "matrix[1]"},
		{"zero element", Matrix{{1, 0}, {1, 1}}, calcerr.ErrDomain, "matrix[0][1]"},
		{"negative element", Matrix{{1, 2}, {-0.5, 1}}, calcerr.ErrDomain, "matrix[1][0]"},
		{"NaN element", Matrix{{1, math.NaN()}, {1, 1}}, calcerr.ErrDomain, "matrix[0][1]"},
		{"diagonal not one", Matrix{{2, 1}, {1, 1}}, calcerr.ErrDomain, "matrix[0][0]"},
		{"reciprocal violation", Matrix{{1, 2}, {0.4, 1}}, calcerr.ErrDomain, "matrix[0][1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.m)
			if !errors.Is(err, tt.sentinel) {
				t.Fatalf("expected %v, got %v", tt.sentinel, err)
			}
			var ce *calcerr.Error
			if !errors.As(err, &ce) {
				t.Fatalf("expected *calcerr.Error, got %T", err)
			}
			if ce.Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, ce.Field)
			}
			if _, err := Calculate(tt.m); err == nil {
				t.Error("Calculate must reject an invalid matrix")
			}
		})
	}
}

func TestValidate_WithinTolerance(t *testing.T) {
	m := Matrix{
		{1.00005, 3},
		{0.33334, 1},
	}
	if err := Validate(m); err != nil {
		t.Errorf("expected matrix within tolerance to pass, got %v", err)
	}
}

func TestValidate_ReciprocalMessage(t *testing.T) {
	err := Validate(Matrix{{1, 2}, {0.4, 1}})
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "2.0000") || !strings.Contains(msg, "2.5000") {
		t.Errorf("expected actual and expected values in message, got %q", msg)
	}
}

func TestBuildReciprocalMatrix(t *testing.T) {
	m := mustBuild(t, 3, 3, 5, 2)
	want := Matrix{
		{1, 3, 5},
		{1.0 / 3, 1, 2},
		{1.0 / 5, 1.0 / 2, 1},
	}
	for i := range want {
		for j := range want[i] {
			if !almostEqual(m[i][j], want[i][j], 1e-15) {
				t.Errorf("m[%d][%d]: expected %f, got %f", i, j, want[i][j], m[i][j])
			}
		}
	}

	single := mustBuild(t, 1)
	if len(single) != 1 || single[0][0] != 1 {
		t.Errorf("expected [[1]], got %v", single)
	}
}

func TestBuildReciprocalMatrix_WrongCount(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		upper []float64
	}{
		{"too few", 3, []float64{1, 2}},
		{"too many", 3, []float64{1, 2, 3, 4}},
		{"n=1 with values", 1, []float64{2}},
		{"zero size", 0, nil},
		{"negative size", -2, nil},
		{"above max size", MaxSize + 1, make([]float64, (MaxSize+1)*MaxSize/2)},
		{"huge size", 1 << 50, nil},
		// n*(n-1)/2 wraps to 2 for this n
		{"overflowing size", 4814665733036938101, []float64{2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildReciprocalMatrix(tt.n, tt.upper)
			if !errors.Is(err, calcerr.ErrStructural) {
				t.Errorf("expected structural error, got %v", err)
			}
		})
	}
}

func TestBuildThenValidate_SaatyScale(t *testing.T) {
	scale := []float64{1.0 / 9, 1.0 / 7, 1.0 / 5, 1.0 / 3, 1, 3, 5, 7, 9, 1e-6, 1e6}
	for _, x := range scale {
		m, err := BuildReciprocalMatrix(2, []float64{x})
		if err != nil {
			t.Fatalf("BuildReciprocalMatrix(2, %v): %v", x, err)
		}
		if err := Validate(m); err != nil {
			t.Errorf("judgment %v: expected valid matrix, got %v", x, err)
		}
	}
}

func TestBuildReciprocalMatrix_MaxSize(t *testing.T) {
	upper := make([]float64, MaxSize*(MaxSize-1)/2)
	for i := range upper {
		upper[i] = 1
	}
	m, err := BuildReciprocalMatrix(MaxSize, upper)
	if err != nil {
		t.Fatalf("BuildReciprocalMatrix(%d): %v", MaxSize, err)
	}
	if m.Size() != MaxSize {
		t.Errorf("expected size %d, got %d", MaxSize, m.Size())
	}
	if err := Validate(m); err != nil {
		t.Errorf("expected valid matrix, got %v", err)
	}
}

func TestRandomIndex(t *testing.T) {
	want := []float64{0.00, 0.00, 0.58, 0.90, 1.12, 1.24, 1.32, 1.41, 1.45, 1.49, 1.51, 1.48, 1.56, 1.57, 1.59}
	for i, ri := range want {
		if got := RandomIndex(i + 1); got != ri {
			t.Errorf("RI(%d): expected %.2f, got %.2f", i+1, ri, got)
		}
	}
	for _, n := range []int{16, 30, 100} {
		if got := RandomIndex(n); got != 1.59 {
			t.Errorf("RI(%d): expected 1.59, got %.2f", n, got)
		}
	}
}

// randomUpper draws Saaty-scale judgments or their reciprocals.
func randomUpper(r *rand.Rand, n int) []float64 {
	out := make([]float64, n*(n-1)/2)
	for i := range out {
		v := float64(r.Intn(9) + 1)
		if r.Intn(2) == 0 {
			v = 1 / v
		}
		out[i] = v
	}
	return out
}

func TestCalculate_RandomMatrices(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for trial := 0; trial < 200; trial++ {
		n := r.Intn(20) + 1
		m, err := BuildReciprocalMatrix(n, randomUpper(r, n))
		if err != nil {
			t.Fatalf("build failed: %v", err)
		}
		if err := Validate(m); err != nil {
			t.Fatalf("built matrix failed validation (n=%d): %v", n, err)
		}

		for _, method := range []Method{GeometricMean, ColumnNormalization} {
			res, err := CalculateWith(m, method)
			if err != nil {
				t.Fatalf("CalculateWith(%v) failed: %v", method, err)
			}
			if len(res.Weights) != n {
				t.Fatalf("expected %d weights, got %d", n, len(res.Weights))
			}
			if !almostEqual(sum(res.Weights), 1, 1e-9) {
				t.Errorf("n=%d %v: weights sum to %.12f", n, method, sum(res.Weights))
			}
			for i, w := range res.Weights {
				if w < 0 {
					t.Errorf("n=%d: negative weight[%d]=%f", n, i, w)
				}
			}
			if res.ConsistencyIndex < -1e-9 {
				t.Errorf("n=%d: CI below zero: %f", n, res.ConsistencyIndex)
			}
			if n <= 2 && (res.ConsistencyRatio != 0 || !res.Consistent) {
				t.Errorf("n=%d: expected CR 0 and consistent", n)
			}
		}
	}
}

func TestEvaluate(t *testing.T) {
	names := []string{"sales_performance", "attendance", "other_performance"}
	res, err := Evaluate(3, []float64{2, 4, 2}, names, GeometricMean)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if len(res.Criteria) != 3 || res.Criteria[0] != "sales_performance" {
		t.Errorf("expected labels to be attached, got %v", res.Criteria)
	}
	names[0] = "mutated"
	if res.Criteria[0] != "sales_performance" {
		t.Error("result labels must not alias the caller's slice")
	}

	t.Run("name count mismatch", func(t *testing.T) {
		_, err := Evaluate(3, []float64{1, 1, 1}, []string{"a", "b"}, GeometricMean)
		if !errors.Is(err, calcerr.ErrStructural) {
			t.Errorf("expected structural error, got %v", err)
		}
	})

	t.Run("non-positive judgment", func(t *testing.T) {
		_, err := Evaluate(3, []float64{1, 0, 1}, nil, GeometricMean)
		if !errors.Is(err, calcerr.ErrDomain) {
			t.Errorf("expected domain error, got %v", err)
		}
	})

	t.Run("unknown method", func(t *testing.T) {
		_, err := Evaluate(2, []float64{3}, nil, Method(9))
		if !errors.Is(err, calcerr.ErrDomain) {
			t.Errorf("expected domain error, got %v", err)
		}
	})
}

func TestParseMethod(t *testing.T) {
	tests := []struct {
		in      string
		want    Method
		wantErr bool
	}{
		{"", GeometricMean, false},
		{"geometric_mean", GeometricMean, false},
		{"column_normalization", ColumnNormalization, false},
		{"eigenvector", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseMethod(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMethod(%q): unexpected error state %v", tt.in, err)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseMethod(%q): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}

func TestResultFormatting(t *testing.T) {
	res, err := Evaluate(3, []float64{1, 1, 1}, []string{"a", "b", "c"}, GeometricMean)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	pcts := res.Percentages()
	for i, p := range pcts {
		if p != 33 {
			t.Errorf("percentage[%d]: expected 33, got %d", i, p)
		}
	}

	s := res.String()
	for _, want := range []string{"a:0.3333", "lambdaMax=3.0000", "CR=0.0000 (0.00%)", "consistent"} {
		if !strings.Contains(s, want) {
			t.Errorf("expected %q in %q", want, s)
		}
	}
}
