package valuation

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MikeSquared-Agency/Valumetric/internal/calcerr"
	"github.com/MikeSquared-Agency/Valumetric/internal/hcroi"
	"github.com/MikeSquared-Agency/Valumetric/internal/hermes"
	"github.com/MikeSquared-Agency/Valumetric/internal/metrics"
	"github.com/MikeSquared-Agency/Valumetric/internal/store"
)

var monthsPerYear = decimal.NewFromInt(12)

// LaborReturnRequest is one person's figures for a month: revenue for the
// month and the annual salary it is weighed against.
type LaborReturnRequest struct {
	Subject      string              `json:"subject,omitempty"`
	AnnualSalary decimal.NullDecimal `json:"annual_salary"`
	Revenue      decimal.NullDecimal `json:"revenue"`
}

func (r LaborReturnRequest) validate() error {
	if !r.AnnualSalary.Valid {
		return calcerr.Domain("annual_salary", "is required")
	}
	if !r.Revenue.Valid {
		return calcerr.Domain("revenue", "is required")
	}
	return nil
}

// LaborReturn is an HCROI result with the derived costs and its zone.
type LaborReturn struct {
	Subject       string       `json:"subject,omitempty"`
	MonthlySalary string       `json:"monthly_salary"`
	BenefitCost   string       `json:"benefit_cost"`
	Zone          hcroi.Zone   `json:"zone"`
	Result        hcroi.Result `json:"result"`
}

// EvaluateLaborReturn applies the current cost policy: the monthly salary is
// the annual salary over 12 at four places, benefit cost is the monthly
// salary times the insurance rate, and the benefits variant of the
// calculator runs against the per-person fixed cost.
func (s *Service) EvaluateLaborReturn(ctx context.Context, req LaborReturnRequest) (*LaborReturn, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	policy, err := s.CostPolicy(ctx)
	if err != nil {
		return nil, err
	}
	return s.laborReturn(req, policy)
}

func (s *Service) laborReturn(req LaborReturnRequest, policy *store.CostPolicy) (*LaborReturn, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	monthly := req.AnnualSalary.Decimal.DivRound(monthsPerYear, hcroi.IndexScale)
	benefit := monthly.Mul(policy.InsuranceRate)

	res, zone, err := s.calculateHCROI(hcroi.Inputs{
		Revenue:          req.Revenue,
		Salary:           decimal.NewNullDecimal(monthly),
		BenefitCost:      decimal.NewNullDecimal(benefit),
		FixedCost:        decimal.NewNullDecimal(policy.FixedCostPerPerson),
		TargetProfitRate: decimal.NewNullDecimal(policy.TargetProfitRate),
	})
	if err != nil {
		return nil, err
	}
	if zone == hcroi.ZoneRed {
		s.logger.Info("labor return below break-even", "subject", req.Subject, "hcroi", res.HcroiIndex.String())
	}

	s.publish(hermes.SubjectLaborReturnEvaluated, hermes.LaborReturnEvaluatedEvent{
		Subject:               req.Subject,
		Variant:               string(res.Variant),
		HcroiIndex:            res.HcroiIndex,
		TargetAchievementRate: res.TargetAchievementRate,
		Zone:                  string(zone),
		Timestamp:             s.now(),
	})

	return &LaborReturn{
		Subject:       req.Subject,
		MonthlySalary: monthly.StringFixed(hcroi.IndexScale),
		BenefitCost:   benefit.String(),
		Zone:          zone,
		Result:        res,
	}, nil
}

// HCROIResult is a calculation on caller-supplied figures with its zone.
type HCROIResult struct {
	Zone   hcroi.Zone   `json:"zone"`
	Result hcroi.Result `json:"result"`
}

// CalculateHCROI runs the calculator on in as given. No cost policy is
// applied and nothing is published.
func (s *Service) CalculateHCROI(in hcroi.Inputs) (*HCROIResult, error) {
	res, zone, err := s.calculateHCROI(in)
	if err != nil {
		return nil, err
	}
	return &HCROIResult{Zone: zone, Result: res}, nil
}

func (s *Service) calculateHCROI(in hcroi.Inputs) (hcroi.Result, hcroi.Zone, error) {
	start := time.Now()
	res, err := hcroi.Evaluate(in)
	metrics.CalculationDuration.WithLabelValues(metrics.EngineHCROI).Observe(time.Since(start).Seconds())
	metrics.CalculationsTotal.WithLabelValues(metrics.EngineHCROI, metrics.Outcome(err)).Inc()
	if err != nil {
		return hcroi.Result{}, "", err
	}
	zone := hcroi.Classify(res.HcroiIndex)
	metrics.HcroiZones.WithLabelValues(string(zone)).Inc()
	return res, zone, nil
}

// TeamSummary aggregates labor returns across several people. The break-even
// figures compare the summed revenue of the evaluated members with the sum of
// their break-even points.
type TeamSummary struct {
	Members            []*LaborReturn     `json:"members"`
	Failed             []string           `json:"failed,omitempty"`
	AverageIndex       string             `json:"average_hcroi_index"`
	Zones              map[hcroi.Zone]int `json:"zones"`
	TotalRevenue       string             `json:"total_revenue"`
	BreakEvenRevenue   string             `json:"break_even_revenue"`
	RemainingToBEP     string             `json:"remaining_to_bep"`
	BEPAchievementRate string             `json:"bep_achievement_rate"`
	BEPAchieved        bool               `json:"bep_achieved"`
}

// EvaluateTeam evaluates every request against one snapshot of the cost
// policy. Members whose inputs fail are listed in Failed and left out of the
// average and the break-even totals.
func (s *Service) EvaluateTeam(ctx context.Context, reqs []LaborReturnRequest) (*TeamSummary, error) {
	summary := &TeamSummary{Zones: make(map[hcroi.Zone]int)}
	var policy *store.CostPolicy
	if len(reqs) > 0 {
		p, err := s.CostPolicy(ctx)
		if err != nil {
			return nil, err
		}
		policy = p
	}

	total := decimal.Zero
	revenue := decimal.Zero
	bep := decimal.Zero
	for i, req := range reqs {
		lr, err := s.laborReturn(req, policy)
		if err != nil {
			if !calcerr.IsInput(err) {
				return nil, err
			}
			label := req.Subject
			if label == "" {
				label = fmt.Sprintf("#%d", i)
			}
			s.logger.Warn("labor return failed", "subject", label, "error", err)
			summary.Failed = append(summary.Failed, label)
			continue
		}
		summary.Members = append(summary.Members, lr)
		summary.Zones[lr.Zone]++
		total = total.Add(lr.Result.HcroiIndex)
		revenue = revenue.Add(req.Revenue.Decimal)
		bep = bep.Add(lr.Result.BreakEvenPointSales)
	}

	avg := decimal.Zero
	if n := len(summary.Members); n > 0 {
		avg = total.DivRound(decimal.NewFromInt(int64(n)), hcroi.IndexScale)
	}
	rate := decimal.Zero
	if bep.IsPositive() {
		r, err := hcroi.TargetAchievementRate(revenue, bep)
		if err != nil {
			return nil, err
		}
		rate = r
	}

	summary.AverageIndex = avg.StringFixed(hcroi.IndexScale)
	summary.TotalRevenue = revenue.String()
	summary.BreakEvenRevenue = bep.StringFixed(hcroi.IndexScale)
	summary.RemainingToBEP = bep.Sub(revenue).StringFixed(hcroi.IndexScale)
	summary.BEPAchievementRate = rate.StringFixed(hcroi.RateScale)
	summary.BEPAchieved = len(summary.Members) > 0 && revenue.GreaterThanOrEqual(bep)
	return summary, nil
}
