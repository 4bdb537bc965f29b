package valuation

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/MikeSquared-Agency/Valumetric/internal/calcerr"
	"github.com/MikeSquared-Agency/Valumetric/internal/hermes"
	"github.com/MikeSquared-Agency/Valumetric/internal/store"
)

// CostPolicyUpdate is a partial update; fields that are not Valid keep their
// current value.
type CostPolicyUpdate struct {
	FixedCostPerPerson decimal.NullDecimal `json:"fixed_cost_per_person"`
	InsuranceRate      decimal.NullDecimal `json:"insurance_rate"`
	TargetProfitRate   decimal.NullDecimal `json:"target_profit_rate"`
}

// CostPolicy returns the stored policy, or the configured defaults when
// none has been saved yet.
func (s *Service) CostPolicy(ctx context.Context) (*store.CostPolicy, error) {
	p, err := s.store.GetCostPolicy(ctx)
	if err != nil {
		return nil, fmt.Errorf("get cost policy: %w", err)
	}
	if p != nil {
		return p, nil
	}
	cp := s.config().CostPolicy
	return &store.CostPolicy{
		FixedCostPerPerson: cp.FixedCostPerPerson,
		InsuranceRate:      cp.InsuranceRate,
		TargetProfitRate:   cp.TargetProfitRate,
	}, nil
}

// UpdateCostPolicy applies upd over the current policy, validates and saves it.
func (s *Service) UpdateCostPolicy(ctx context.Context, upd CostPolicyUpdate) (*store.CostPolicy, error) {
	p, err := s.CostPolicy(ctx)
	if err != nil {
		return nil, err
	}
	if upd.FixedCostPerPerson.Valid {
		p.FixedCostPerPerson = upd.FixedCostPerPerson.Decimal
	}
	if upd.InsuranceRate.Valid {
		p.InsuranceRate = upd.InsuranceRate.Decimal
	}
	if upd.TargetProfitRate.Valid {
		p.TargetProfitRate = upd.TargetProfitRate.Decimal
	}
	if err := ValidateCostPolicy(p); err != nil {
		return nil, err
	}

	if err := s.store.SaveCostPolicy(ctx, p); err != nil {
		return nil, fmt.Errorf("save cost policy: %w", err)
	}
	s.logger.Info("cost policy updated",
		"fixed_cost_per_person", p.FixedCostPerPerson.String(),
		"insurance_rate", p.InsuranceRate.String(),
		"target_profit_rate", p.TargetProfitRate.String(),
	)
	s.publish(hermes.SubjectCostPolicyUpdated, hermes.CostPolicyUpdatedEvent{
		FixedCostPerPerson: p.FixedCostPerPerson,
		InsuranceRate:      p.InsuranceRate,
		TargetProfitRate:   p.TargetProfitRate,
		Timestamp:          s.now(),
	})
	return p, nil
}

// ValidateCostPolicy rejects negative costs and rates and a target profit
// rate outside [0, 1).
func ValidateCostPolicy(p *store.CostPolicy) error {
	if p.FixedCostPerPerson.IsNegative() {
		return calcerr.Domain("fixed_cost_per_person", "must not be negative, got %s", p.FixedCostPerPerson)
	}
	if p.InsuranceRate.IsNegative() {
		return calcerr.Domain("insurance_rate", "must not be negative, got %s", p.InsuranceRate)
	}
	if p.TargetProfitRate.IsNegative() || p.TargetProfitRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return calcerr.Domain("target_profit_rate", "must be in [0, 1), got %s", p.TargetProfitRate)
	}
	return nil
}
