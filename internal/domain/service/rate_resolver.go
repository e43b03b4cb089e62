package service

import (
	"math"

	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/model"
)

// Resolved rates are clamped to this band, in percent per year.
const (
	MinAnnualRate = 5.0
	MaxAnnualRate = 20.0
)

// RateResolver derives a lender-specific annual rate for an applicant.
type RateResolver struct{}

// NewRateResolver returns a new resolver.
func NewRateResolver() *RateResolver {
	return &RateResolver{}
}

// Resolve selects the first rate tier whose score range contains score and
// stacks the loan-amount, term, occupation and collateral deltas onto its
// base rate. The boolean is false when no tier covers score; that lender
// simply has no rate for this applicant.
func (r *RateResolver) Resolve(p model.ApplicantProfile, score int, lender model.LenderProfile) (float64, bool) {
	tier, ok := lender.TierFor(score)
	if !ok {
		return 0, false
	}

	rate := tier.BaseRate
	rate += tier.LoanAmountAdjustments.DeltaFor(p.DesiredLoanAmount)
	rate += tier.TermAdjustments.DeltaFor(float64(p.DesiredTermYears))
	rate += tier.OccupationDelta(p.OccupationCategory)
	rate += tier.CollateralAdjustments.DeltaFor(p.CollateralValue)

	return math.Min(MaxAnnualRate, math.Max(MinAnnualRate, rate)), true
}
