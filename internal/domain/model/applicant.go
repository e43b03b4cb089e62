package model

import (
	"errors"
	"fmt"
	"math"

	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/valueobject"
)

// RatioDenominatorOffset is added to income denominators so that a zero
// income yields a large finite ratio instead of a division by zero.
const RatioDenominatorOffset = 0.01

// ErrInvalidApplicant is returned when a profile breaks its invariants.
var ErrInvalidApplicant = errors.New("invalid applicant profile")

// ApplicantProfile is the immutable input to a single evaluation. Currency
// amounts are in the base monetary unit with no subunit scaling.
type ApplicantProfile struct {
	CreditHistory            valueobject.CreditHistoryTier
	EmploymentType           valueobject.EmploymentType
	HousingStatus            valueobject.HousingStatus
	OccupationCategory       string
	LoanPurpose              string
	MonthlyIncome            float64
	MonthlyExpenses          float64
	ExistingAnnualDebt       float64
	DesiredLoanAmount        float64
	CollateralValue          float64
	YearsInCurrentEmployment float64
	Age                      int
	DesiredTermYears         int
	DependentCount           int
	PriorLoanCount           int
	PriorLoanRepaidCount     int
	HasCoApplicant           bool
}

// Validate checks the profile invariants: every amount and count is
// non-negative and repaid loans never exceed prior loans.
func (p ApplicantProfile) Validate() error {
	amounts := []struct {
		name  string
		value float64
	}{
		{"monthly income", p.MonthlyIncome},
		{"monthly expenses", p.MonthlyExpenses},
		{"existing annual debt", p.ExistingAnnualDebt},
		{"desired loan amount", p.DesiredLoanAmount},
		{"collateral value", p.CollateralValue},
		{"years in current employment", p.YearsInCurrentEmployment},
	}
	for _, a := range amounts {
		if a.value < 0 || math.IsNaN(a.value) || math.IsInf(a.value, 0) {
			return fmt.Errorf("%w: %s must be a non-negative number", ErrInvalidApplicant, a.name)
		}
	}

	counts := []struct {
		name  string
		value int
	}{
		{"age", p.Age},
		{"desired term years", p.DesiredTermYears},
		{"dependent count", p.DependentCount},
		{"prior loan count", p.PriorLoanCount},
		{"prior loan repaid count", p.PriorLoanRepaidCount},
	}
	for _, c := range counts {
		if c.value < 0 {
			return fmt.Errorf("%w: %s must not be negative", ErrInvalidApplicant, c.name)
		}
	}

	if p.PriorLoanRepaidCount > p.PriorLoanCount {
		return fmt.Errorf("%w: repaid loans (%d) exceed prior loans (%d)",
			ErrInvalidApplicant, p.PriorLoanRepaidCount, p.PriorLoanCount)
	}
	return nil
}

// MonthlyDebtService is the existing annual debt spread over twelve months.
func (p ApplicantProfile) MonthlyDebtService() float64 {
	return p.ExistingAnnualDebt / 12
}

// DebtToIncome returns (monthly debt service + monthly expenses) divided by
// monthly income, offset to stay finite when income is zero.
func (p ApplicantProfile) DebtToIncome() float64 {
	return (p.MonthlyDebtService() + p.MonthlyExpenses) / (p.MonthlyIncome + RatioDenominatorOffset)
}

// LoanToAnnualIncome returns the desired loan divided by annual income,
// offset to stay finite when income is zero.
func (p ApplicantProfile) LoanToAnnualIncome() float64 {
	return p.DesiredLoanAmount / (p.MonthlyIncome*12 + RatioDenominatorOffset)
}

// IsSecured reports whether any collateral is pledged.
func (p ApplicantProfile) IsSecured() bool { return p.CollateralValue > 0 }

// CollateralCoverage is collateral value divided by the desired loan amount.
// A zero loan amount with collateral yields +Inf.
func (p ApplicantProfile) CollateralCoverage() float64 {
	return p.CollateralValue / p.DesiredLoanAmount
}

// LoanToCollateral is the desired loan amount divided by collateral value.
func (p ApplicantProfile) LoanToCollateral() float64 {
	return p.DesiredLoanAmount / p.CollateralValue
}

// HasPriorLoans reports whether the applicant declared any earlier loans.
func (p ApplicantProfile) HasPriorLoans() bool { return p.PriorLoanCount > 0 }

// RepaymentRatio is the share of prior loans repaid. It is zero when the
// applicant has no prior loans.
func (p ApplicantProfile) RepaymentRatio() float64 {
	if p.PriorLoanCount == 0 {
		return 0
	}
	return float64(p.PriorLoanRepaidCount) / float64(p.PriorLoanCount)
}
