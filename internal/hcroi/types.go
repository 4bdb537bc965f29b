package hcroi

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/MikeSquared-Agency/Valumetric/internal/calcerr"
)

// Inputs are the caller-supplied monetary figures. A field that is not Valid
// was never supplied. BenefitCost is optional; the rest are required.
type Inputs struct {
	Revenue          decimal.NullDecimal `json:"revenue"`
	Salary           decimal.NullDecimal `json:"salary"`
	BenefitCost      decimal.NullDecimal `json:"benefit_cost"`
	FixedCost        decimal.NullDecimal `json:"fixed_cost"`
	TargetProfitRate decimal.NullDecimal `json:"target_profit_rate"`
}

// Validate checks presence and domain of every input before any division.
func Validate(in Inputs) error {
	required := []struct {
		field string
		value decimal.NullDecimal
	}{
		{"revenue", in.Revenue},
		{"salary", in.Salary},
		{"fixed_cost", in.FixedCost},
		{"target_profit_rate", in.TargetProfitRate},
	}
	for _, r := range required {
		if !r.value.Valid {
			return calcerr.Domain(r.field, "is required")
		}
	}

	if in.Revenue.Decimal.IsNegative() {
		return calcerr.Domain("revenue", "must not be negative, got %s", in.Revenue.Decimal)
	}
	if !in.Salary.Decimal.IsPositive() {
		return calcerr.Domain("salary", "must be greater than zero, got %s", in.Salary.Decimal)
	}
	if in.BenefitCost.Valid && in.BenefitCost.Decimal.IsNegative() {
		return calcerr.Domain("benefit_cost", "must not be negative, got %s", in.BenefitCost.Decimal)
	}
	if in.FixedCost.Decimal.IsNegative() {
		return calcerr.Domain("fixed_cost", "must not be negative, got %s", in.FixedCost.Decimal)
	}
	rate := in.TargetProfitRate.Decimal
	if rate.IsNegative() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return calcerr.Domain("target_profit_rate", "must be in [0, 1), got %s", rate)
	}
	return nil
}

// Variant names which human-capital cost went into the result.
type Variant string

const (
	VariantBasic        Variant = "basic"
	VariantWithBenefits Variant = "with_benefits"
)

// Result is one HCROI computation snapshot.
type Result struct {
	Variant               Variant
	BreakEvenPointSales   decimal.Decimal
	TargetAchievementRate decimal.Decimal
	HcroiIndex            decimal.Decimal
}

type resultJSON struct {
	Variant               Variant `json:"variant"`
	BreakEvenPointSales   string  `json:"break_even_point_sales"`
	TargetAchievementRate string  `json:"target_achievement_rate"`
	HcroiIndex            string  `json:"hcroi_index"`
}

// MarshalJSON writes every figure as a string at its fixed scale, so
// "2.0000" does not collapse to "2" on the way out.
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(resultJSON{
		Variant:               r.Variant,
		BreakEvenPointSales:   r.BreakEvenPointSales.StringFixed(IndexScale),
		TargetAchievementRate: r.TargetAchievementRate.StringFixed(RateScale),
		HcroiIndex:            r.HcroiIndex.StringFixed(IndexScale),
	})
}

// UnmarshalJSON reads the representation written by MarshalJSON.
func (r *Result) UnmarshalJSON(data []byte) error {
	var raw resultJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var err error
	if r.BreakEvenPointSales, err = decimal.NewFromString(raw.BreakEvenPointSales); err != nil {
		return fmt.Errorf("break_even_point_sales: %w", err)
	}
	if r.TargetAchievementRate, err = decimal.NewFromString(raw.TargetAchievementRate); err != nil {
		return fmt.Errorf("target_achievement_rate: %w", err)
	}
	if r.HcroiIndex, err = decimal.NewFromString(raw.HcroiIndex); err != nil {
		return fmt.Errorf("hcroi_index: %w", err)
	}
	r.Variant = raw.Variant
	return nil
}

func (r Result) String() string {
	return fmt.Sprintf("HcroiResult{BEP=%s, achievement=%s%%, HCROI=%s}",
		r.BreakEvenPointSales.StringFixed(IndexScale),
		r.TargetAchievementRate.StringFixed(RateScale),
		r.HcroiIndex.StringFixed(IndexScale))
}
