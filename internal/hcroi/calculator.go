// Package hcroi derives break-even sales, target achievement rate and the
// Human Capital ROI index from revenue and cost figures.
//
// All arithmetic is exact fixed-point decimal; results are rounded half-up
// (away from zero) at the scales below, so stored figures reproduce bit for
// bit. Functions are pure and safe for concurrent use.
package hcroi

import (
	"github.com/shopspring/decimal"

	"github.com/MikeSquared-Agency/Valumetric/internal/calcerr"
)

const (
	// IndexScale is the number of fractional digits of BEP and the HCROI index.
	IndexScale int32 = 4
	// RateScale is the number of fractional digits of the achievement rate.
	RateScale int32 = 2
)

const rateWorkingScale = IndexScale + 2

var hundred = decimal.NewFromInt(100)

// BreakEvenPoint returns (laborCost + fixedCost) / (1 - targetProfitRate)
// rounded to IndexScale. A target profit rate of 1 or more is rejected.
func BreakEvenPoint(laborCost, fixedCost, targetProfitRate decimal.Decimal) (decimal.Decimal, error) {
	denominator := decimal.NewFromInt(1).Sub(targetProfitRate)
	if !denominator.IsPositive() {
		return decimal.Decimal{}, calcerr.Arithmetic("target_profit_rate",
			"must be below 1 (100%%) for a break-even point, got %s", targetProfitRate)
	}
	return laborCost.Add(fixedCost).DivRound(denominator, IndexScale), nil
}

// TargetAchievementRate returns revenue / bep × 100 as a percentage rounded
// to RateScale. The quotient keeps two guard digits beyond the final
// percentage scale before the last rounding.
func TargetAchievementRate(revenue, bep decimal.Decimal) (decimal.Decimal, error) {
	if bep.IsZero() {
		return decimal.Decimal{}, calcerr.Arithmetic("break_even_point", "must not be zero")
	}
	return revenue.DivRound(bep, rateWorkingScale).Mul(hundred).Round(RateScale), nil
}

// Index returns the HCROI index (revenue - nonLaborCost) / humanCapitalCost
// rounded to IndexScale.
func Index(revenue, humanCapitalCost, nonLaborCost decimal.Decimal) (decimal.Decimal, error) {
	if humanCapitalCost.IsZero() {
		return decimal.Decimal{}, calcerr.Arithmetic("human_capital_cost", "must not be zero")
	}
	return revenue.Sub(nonLaborCost).DivRound(humanCapitalCost, IndexScale), nil
}

// Calculate runs the basic variant: salary alone stands in for the human
// capital cost. Prefer CalculateWithBenefits whenever benefit cost is known.
func Calculate(revenue, salary, fixedCost, targetProfitRate decimal.Decimal) (Result, error) {
	return Evaluate(Inputs{
		Revenue:          decimal.NewNullDecimal(revenue),
		Salary:           decimal.NewNullDecimal(salary),
		FixedCost:        decimal.NewNullDecimal(fixedCost),
		TargetProfitRate: decimal.NewNullDecimal(targetProfitRate),
	})
}

// CalculateWithBenefits runs the full Fitz-enz variant: salary + benefitCost
// is both the labor cost of the break-even point and the HCROI denominator.
func CalculateWithBenefits(revenue, salary, benefitCost, fixedCost, targetProfitRate decimal.Decimal) (Result, error) {
	return Evaluate(Inputs{
		Revenue:          decimal.NewNullDecimal(revenue),
		Salary:           decimal.NewNullDecimal(salary),
		BenefitCost:      decimal.NewNullDecimal(benefitCost),
		FixedCost:        decimal.NewNullDecimal(fixedCost),
		TargetProfitRate: decimal.NewNullDecimal(targetProfitRate),
	})
}

// Evaluate validates in and computes the result. The benefits variant is
// used when in.BenefitCost is present, the basic variant otherwise.
func Evaluate(in Inputs) (Result, error) {
	if err := Validate(in); err != nil {
		return Result{}, err
	}

	laborCost := in.Salary.Decimal
	variant := VariantBasic
	if in.BenefitCost.Valid {
		laborCost = laborCost.Add(in.BenefitCost.Decimal)
		variant = VariantWithBenefits
	}

	bep, err := BreakEvenPoint(laborCost, in.FixedCost.Decimal, in.TargetProfitRate.Decimal)
	if err != nil {
		return Result{}, err
	}
	rate, err := TargetAchievementRate(in.Revenue.Decimal, bep)
	if err != nil {
		return Result{}, err
	}
	index, err := Index(in.Revenue.Decimal, laborCost, in.FixedCost.Decimal)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Variant:               variant,
		BreakEvenPointSales:   bep,
		TargetAchievementRate: rate,
		HcroiIndex:            index,
	}, nil
}
