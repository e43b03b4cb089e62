package model

import (
	"github.com/shopspring/decimal"

	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// RateTier
// ---------------------------------------------------------------------------

// RateTier is one score-range row of a lender's rate table. The score range
// is inclusive on both ends. Each adjustment table yields a signed
// percentage-point delta added to BaseRate.
type RateTier struct {
	OccupationAdjustments map[string]float64
	LoanAmountAdjustments valueobject.BracketTable
	TermAdjustments       valueobject.BracketTable
	CollateralAdjustments valueobject.BracketTable
	Scores                valueobject.Interval
	BaseRate              float64
}

// Covers reports whether score falls in the tier's inclusive range.
func (t RateTier) Covers(score int) bool {
	return t.Scores.Contains(float64(score))
}

// OccupationDelta returns the exact-key occupation adjustment, or zero.
func (t RateTier) OccupationDelta(occupation string) float64 {
	return t.OccupationAdjustments[occupation]
}

// ---------------------------------------------------------------------------
// FeeSchedule
// ---------------------------------------------------------------------------

// FeeSchedule lists the lender's charges. Percentages apply to the loan
// principal; AnnualManagementFee is a flat amount per loan year.
type FeeSchedule struct {
	ProcessingFeePercent     decimal.Decimal
	InsuranceFeePercent      decimal.Decimal
	EarlyRepaymentFeePercent decimal.Decimal
	LatePaymentFeePercent    decimal.Decimal
	AnnualManagementFee      decimal.Decimal
}

// ---------------------------------------------------------------------------
// LenderProfile
// ---------------------------------------------------------------------------

// LenderProfile is static reference data describing one lender's
// underwriting criteria, rate table and fees. Profiles are read-only once
// they are part of a LenderPanel.
type LenderProfile struct {
	Fees                 FeeSchedule
	ID                   string
	Name                 string
	PreferredOccupations []string
	PreferredPurposes    []string
	RateTiers            []RateTier
	MinMonthlyIncome     float64
	MaxDebtToIncome      float64
	MaxLoanToCollateral  float64
	MinEmploymentYears   float64
	MinScore             int
}

// TierFor returns the first rate tier, in declaration order, whose score
// range contains score.
func (l LenderProfile) TierFor(score int) (RateTier, bool) {
	for _, t := range l.RateTiers {
		if t.Covers(score) {
			return t, true
		}
	}
	return RateTier{}, false
}

// PrefersOccupation reports an exact match against the preferred set.
func (l LenderProfile) PrefersOccupation(occupation string) bool {
	return containsExact(l.PreferredOccupations, occupation)
}

// PrefersPurpose reports an exact match against the preferred set.
func (l LenderProfile) PrefersPurpose(purpose string) bool {
	return containsExact(l.PreferredPurposes, purpose)
}

func (l LenderProfile) clone() LenderProfile {
	next := l
	next.PreferredOccupations = append([]string(nil), l.PreferredOccupations...)
	next.PreferredPurposes = append([]string(nil), l.PreferredPurposes...)
	next.RateTiers = make([]RateTier, len(l.RateTiers))
	for i, t := range l.RateTiers {
		ct := t
		ct.LoanAmountAdjustments = append(valueobject.BracketTable(nil), t.LoanAmountAdjustments...)
		ct.TermAdjustments = append(valueobject.BracketTable(nil), t.TermAdjustments...)
		ct.CollateralAdjustments = append(valueobject.BracketTable(nil), t.CollateralAdjustments...)
		if t.OccupationAdjustments != nil {
			ct.OccupationAdjustments = make(map[string]float64, len(t.OccupationAdjustments))
			for k, v := range t.OccupationAdjustments {
				ct.OccupationAdjustments[k] = v
			}
		}
		next.RateTiers[i] = ct
	}
	return next
}

func containsExact(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
