package store

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestProfileSourceValues(t *testing.T) {
	sources := []ProfileSource{SourceAHP, SourceDirect}
	expected := []string{"ahp", "direct"}
	for i, s := range sources {
		if string(s) != expected[i] {
			t.Errorf("expected %s, got %s", expected[i], s)
		}
	}
}

func TestCostPolicyJSONKeepsDecimals(t *testing.T) {
	p := CostPolicy{
		FixedCostPerPerson: decimal.NewFromInt(500000),
		InsuranceRate:      decimal.RequireFromString("0.0945"),
		TargetProfitRate:   decimal.RequireFromString("0.15"),
	}
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if !strings.Contains(string(data), `"insurance_rate":"0.0945"`) {
		t.Errorf("expected insurance rate as decimal string, got %s", data)
	}

	var back CostPolicy
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !back.InsuranceRate.Equal(p.InsuranceRate) {
		t.Errorf("expected %s, got %s", p.InsuranceRate, back.InsuranceRate)
	}
}

func TestWeightProfileOmitsMatrixForDirect(t *testing.T) {
	p := WeightProfile{
		Source:        SourceDirect,
		CriteriaNames: []string{"a", "b"},
		Weights:       []float64{0.6, 0.4},
		Consistent:    true,
	}
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	s := string(data)
	if strings.Contains(s, "upper_triangle") || strings.Contains(s, "matrix_size") {
		t.Errorf("direct profile should not carry matrix fields: %s", s)
	}
	if !strings.Contains(s, `"is_consistent":true`) {
		t.Errorf("expected consistency flag: %s", s)
	}
}
