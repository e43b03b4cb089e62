// Package testutil holds shared fixtures and container helpers for tests.
package testutil

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/model"
	vo "github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/valueobject"
)

// FixedTime is a deterministic load time for panels built in tests.
var FixedTime = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

// ReferenceApplicant is a salaried renter scoring exactly 96: base 40,
// income +10, age +5, good credit +10, full-time +5, two years employed +3,
// DTI about 0.3 +10, loan under 2x annual income +10, no dependents +3.
func ReferenceApplicant() model.ApplicantProfile {
	return model.ApplicantProfile{
		MonthlyIncome:            10_000_000,
		Age:                      30,
		CreditHistory:            vo.CreditHistoryGood,
		EmploymentType:           vo.EmploymentFullTime,
		ExistingAnnualDebt:       0,
		DesiredLoanAmount:        100_000_000,
		DesiredTermYears:         10,
		OccupationCategory:       "other",
		YearsInCurrentEmployment: 2,
		CollateralValue:          0,
		HasCoApplicant:           false,
		DependentCount:           0,
		LoanPurpose:              "home",
		HousingStatus:            vo.HousingRent,
		MonthlyExpenses:          3_000_000,
		PriorLoanCount:           0,
	}
}

// ZeroIncomeApplicant has no income but declares expenses and a loan.
func ZeroIncomeApplicant() model.ApplicantProfile {
	p := ReferenceApplicant()
	p.MonthlyIncome = 0
	p.EmploymentType = vo.EmploymentUnemployed
	return p
}

// Tier builds a rate tier over [lo, hi] with no adjustments.
func Tier(lo, hi, baseRate float64) model.RateTier {
	return model.RateTier{Scores: vo.Interval{Min: lo, Max: hi}, BaseRate: baseRate}
}

// Lender builds a permissive synthetic lender with a single full-range tier.
func Lender(id string, baseRate float64) model.LenderProfile {
	return model.LenderProfile{
		ID:                  id,
		Name:                "Lender " + id,
		MinScore:            50,
		MinMonthlyIncome:    5_000_000,
		MaxDebtToIncome:     0.6,
		MaxLoanToCollateral: 0.8,
		MinEmploymentYears:  1,
		RateTiers:           []model.RateTier{Tier(0, 100, baseRate)},
		Fees: model.FeeSchedule{
			ProcessingFeePercent:     decimal.NewFromInt(1),
			InsuranceFeePercent:      decimal.NewFromFloat(0.5),
			EarlyRepaymentFeePercent: decimal.NewFromInt(2),
			LatePaymentFeePercent:    decimal.NewFromInt(150),
			AnnualManagementFee:      decimal.NewFromInt(100_000),
		},
	}
}

// Panel builds a panel from lenders and fails the test on error.
func Panel(t testing.TB, lenders ...model.LenderProfile) *model.LenderPanel {
	t.Helper()
	p, err := model.NewLenderPanel("test", lenders, FixedTime)
	if err != nil {
		t.Fatalf("build test panel: %v", err)
	}
	return p
}

// Unbounded is +Inf, for open-ended brackets.
var Unbounded = math.Inf(1)
