package service

import (
	"math"

	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/model"
	vo "github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/valueobject"
)

// BaseEligibilityScore is the starting point before any factor applies.
const BaseEligibilityScore = 40

// ScoreFactor is the contribution of a single attribute to the score.
type ScoreFactor struct {
	Name   string
	Points float64
}

// ScoreBreakdown is the full scoring trace for one applicant.
type ScoreBreakdown struct {
	Factors []ScoreFactor
	Raw     float64
	Score   int
}

// EligibilityScorer maps an applicant profile to a 0-100 creditworthiness
// score by additive rules. It never fails: every rule has a default.
type EligibilityScorer struct {
	income        vo.ThresholdLadder
	age           vo.BracketTable
	yearsEmployed vo.ThresholdLadder
	debtToIncome  vo.ThresholdLadder
	loanToIncome  vo.ThresholdLadder
	collateral    vo.ThresholdLadder
	repayment     vo.ThresholdLadder
	dependents    vo.ThresholdLadder
	credit        map[vo.CreditHistoryTier]float64
	employment    map[vo.EmploymentType]float64
	housing       map[vo.HousingStatus]float64
}

// NewEligibilityScorer returns a scorer loaded with the scoring tables.
func NewEligibilityScorer() *EligibilityScorer {
	return &EligibilityScorer{
		income: vo.NewThresholdLadder(vo.AtLeast, 0,
			vo.Step{Threshold: 30_000_000, Delta: 15},
			vo.Step{Threshold: 20_000_000, Delta: 12},
			vo.Step{Threshold: 10_000_000, Delta: 10},
			vo.Step{Threshold: 7_000_000, Delta: 7},
			vo.Step{Threshold: 5_000_000, Delta: 5},
		),
		age: vo.BracketTable{
			{Range: vo.Interval{Min: 25, Max: 45}, Delta: 5},
			{Range: vo.Interval{Min: 46, Max: 55}, Delta: 3},
			{Range: vo.Interval{Min: 56, Max: 60}, Delta: 1},
			{Range: vo.AtLeastInterval(61), Delta: -5},
			{Range: vo.Interval{Min: 0, Max: 24}, Delta: 1},
		},
		yearsEmployed: vo.NewThresholdLadder(vo.AtLeast, 0,
			vo.Step{Threshold: 10, Delta: 10},
			vo.Step{Threshold: 5, Delta: 8},
			vo.Step{Threshold: 3, Delta: 5},
			vo.Step{Threshold: 1, Delta: 3},
		),
		debtToIncome: vo.NewThresholdLadder(vo.AtMost, -5,
			vo.Step{Threshold: 0.3, Delta: 10},
			vo.Step{Threshold: 0.4, Delta: 7},
			vo.Step{Threshold: 0.5, Delta: 3},
			vo.Step{Threshold: 0.6, Delta: 0},
		),
		loanToIncome: vo.NewThresholdLadder(vo.AtMost, -5,
			vo.Step{Threshold: 2, Delta: 10},
			vo.Step{Threshold: 3, Delta: 7},
			vo.Step{Threshold: 4, Delta: 5},
			vo.Step{Threshold: 5, Delta: 2},
			vo.Step{Threshold: 6, Delta: 0},
		),
		collateral: vo.NewThresholdLadder(vo.AtLeast, 1,
			vo.Step{Threshold: 1.5, Delta: 10},
			vo.Step{Threshold: 1.2, Delta: 8},
			vo.Step{Threshold: 1.0, Delta: 5},
			vo.Step{Threshold: 0.7, Delta: 3},
		),
		repayment: vo.NewThresholdLadder(vo.AtLeast, -10,
			vo.Step{Threshold: 1, Delta: 10},
			vo.Step{Threshold: 0.8, Delta: 7},
			vo.Step{Threshold: 0.6, Delta: 3},
			vo.Step{Threshold: 0.4, Delta: -2},
		),
		dependents: vo.NewThresholdLadder(vo.AtMost, -2,
			vo.Step{Threshold: 1, Delta: 3},
			vo.Step{Threshold: 2, Delta: 1},
		),
		credit: map[vo.CreditHistoryTier]float64{
			vo.CreditHistoryExcellent: 15,
			vo.CreditHistoryGood:      10,
			vo.CreditHistoryFair:      5,
			vo.CreditHistoryPoor:      -10,
			vo.CreditHistoryNone:      -5,
		},
		employment: map[vo.EmploymentType]float64{
			vo.EmploymentFullTime:     5,
			vo.EmploymentPartTime:     2,
			vo.EmploymentSelfEmployed: 3,
			vo.EmploymentContract:     1,
			vo.EmploymentUnemployed:   -15,
		},
		housing: map[vo.HousingStatus]float64{
			vo.HousingOwnOutright:      5,
			vo.HousingOwnMortgage:      3,
			vo.HousingRent:             0,
			vo.HousingLivingWithFamily: 1,
			vo.HousingOther:            0,
		},
	}
}

// Score returns the clamped eligibility score.
func (s *EligibilityScorer) Score(p model.ApplicantProfile) int {
	return s.Explain(p).Score
}

// Explain scores the profile and returns each factor's contribution.
func (s *EligibilityScorer) Explain(p model.ApplicantProfile) ScoreBreakdown {
	factors := make([]ScoreFactor, 0, 12)
	add := func(name string, pts float64) {
		factors = append(factors, ScoreFactor{Name: name, Points: pts})
	}

	add("monthly_income", s.incomePoints(p.MonthlyIncome))
	add("age", s.age.DeltaFor(float64(p.Age)))
	add("credit_history", s.credit[p.CreditHistory])
	add("employment_type", s.employment[p.EmploymentType])
	add("years_employed", s.yearsEmployed.Evaluate(p.YearsInCurrentEmployment))
	add("debt_to_income", s.debtToIncome.Evaluate(p.DebtToIncome()))
	add("loan_to_income", s.loanToIncome.Evaluate(p.LoanToAnnualIncome()))
	if p.IsSecured() {
		add("collateral_coverage", s.collateral.Evaluate(p.CollateralCoverage()))
	}
	if p.HasCoApplicant {
		add("co_applicant", 5)
	}
	add("dependents", s.dependents.Evaluate(float64(p.DependentCount)))
	if p.HasPriorLoans() {
		add("repayment_history", s.repayment.Evaluate(p.RepaymentRatio()))
	}
	add("housing", s.housing[p.HousingStatus])

	raw := float64(BaseEligibilityScore)
	for _, f := range factors {
		raw += f.Points
	}
	return ScoreBreakdown{
		Factors: factors,
		Raw:     raw,
		Score:   clampScore(raw),
	}
}

// Below the lowest income step the applicant earns a partial credit of one
// point per 2M, capped at three.
func (s *EligibilityScorer) incomePoints(income float64) float64 {
	if step, ok := s.income.Match(income); ok {
		return step.Delta
	}
	return math.Min(3, income/2_000_000)
}

func clampScore(v float64) int {
	switch {
	case math.IsNaN(v):
		return model.MinScore
	case v < model.MinScore:
		return model.MinScore
	case v > model.MaxScore:
		return model.MaxScore
	}
	return int(math.Round(v))
}
