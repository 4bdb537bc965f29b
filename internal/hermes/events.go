package hermes

import (
	"time"

	"github.com/shopspring/decimal"
)

// WeightsUpdatedEvent announces a new current weight profile.
type WeightsUpdatedEvent struct {
	ProfileID        string    `json:"profile_id"`
	Source           string    `json:"source"`
	CriteriaNames    []string  `json:"criteria_names"`
	Weights          []float64 `json:"weights"`
	ConsistencyRatio float64   `json:"consistency_ratio"`
	Consistent       bool      `json:"is_consistent"`
	Timestamp        time.Time `json:"timestamp"`
}

// ConsistencyWarningEvent is published alongside WeightsUpdatedEvent when the
// pairwise judgments exceed the consistency threshold.
type ConsistencyWarningEvent struct {
	ProfileID        string    `json:"profile_id"`
	MatrixSize       int       `json:"matrix_size"`
	ConsistencyRatio float64   `json:"consistency_ratio"`
	Message          string    `json:"message"`
	Timestamp        time.Time `json:"timestamp"`
}

type LaborReturnEvaluatedEvent struct {
	Subject               string          `json:"subject,omitempty"`
	Variant               string          `json:"variant"`
	HcroiIndex            decimal.Decimal `json:"hcroi_index"`
	TargetAchievementRate decimal.Decimal `json:"target_achievement_rate"`
	Zone                  string          `json:"zone"`
	Timestamp             time.Time       `json:"timestamp"`
}

type CostPolicyUpdatedEvent struct {
	FixedCostPerPerson decimal.Decimal `json:"fixed_cost_per_person"`
	InsuranceRate      decimal.Decimal `json:"insurance_rate"`
	TargetProfitRate   decimal.Decimal `json:"target_profit_rate"`
	Timestamp          time.Time       `json:"timestamp"`
}
