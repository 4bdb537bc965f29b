package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProfileSource records how a weight profile was produced.
type ProfileSource string

const (
	SourceAHP    ProfileSource = "ahp"
	SourceDirect ProfileSource = "direct"
)

// CostPolicy holds the organization-wide figures the labor return
// evaluation needs.
type CostPolicy struct {
	FixedCostPerPerson decimal.Decimal `json:"fixed_cost_per_person"`
	InsuranceRate      decimal.Decimal `json:"insurance_rate"`
	TargetProfitRate   decimal.Decimal `json:"target_profit_rate"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// WeightProfile is one saved set of criteria weights. For AHP profiles the
// upper triangle of the comparison matrix and its consistency figures are
// kept alongside the weights.
type WeightProfile struct {
	ID               uuid.UUID     `json:"id"`
	Source           ProfileSource `json:"source"`
	Method           string        `json:"method,omitempty"`
	CriteriaNames    []string      `json:"criteria_names"`
	Weights          []float64     `json:"weights"`
	MatrixSize       int           `json:"matrix_size,omitempty"`
	UpperTriangle    []float64     `json:"upper_triangle,omitempty"`
	LambdaMax        float64       `json:"lambda_max"`
	ConsistencyIndex float64       `json:"consistency_index"`
	ConsistencyRatio float64       `json:"consistency_ratio"`
	Consistent       bool          `json:"is_consistent"`
	CreatedAt        time.Time     `json:"created_at"`
}

type Store interface {
	// GetCostPolicy returns nil, nil when no policy has been saved.
	GetCostPolicy(ctx context.Context) (*CostPolicy, error)
	SaveCostPolicy(ctx context.Context, p *CostPolicy) error

	SaveWeightProfile(ctx context.Context, p *WeightProfile) error
	// GetCurrentWeightProfile returns the newest profile, or nil, nil.
	GetCurrentWeightProfile(ctx context.Context) (*WeightProfile, error)
	GetWeightProfile(ctx context.Context, id uuid.UUID) (*WeightProfile, error)
	ListWeightProfiles(ctx context.Context, limit int) ([]*WeightProfile, error)

	Close() error
}
