package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/model"
	vo "github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/valueobject"
	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/pkg/testutil"
)

func TestEligibilityScorer_ReferenceApplicant(t *testing.T) {
	s := NewEligibilityScorer()
	assert.Equal(t, 96, s.Score(testutil.ReferenceApplicant()))
}

func TestEligibilityScorer_ZeroIncome(t *testing.T) {
	s := NewEligibilityScorer()
	b := s.Explain(testutil.ZeroIncomeApplicant())

	pts := map[string]float64{}
	for _, f := range b.Factors {
		pts[f.Name] = f.Points
	}
	assert.Equal(t, 0.0, pts["monthly_income"])
	assert.Equal(t, -15.0, pts["employment_type"])
	assert.Equal(t, -5.0, pts["debt_to_income"])
	assert.Equal(t, -5.0, pts["loan_to_income"])
	assert.Equal(t, 36, b.Score)
}

func TestEligibilityScorer_Clamps(t *testing.T) {
	s := NewEligibilityScorer()

	best := model.ApplicantProfile{
		MonthlyIncome:            50_000_000,
		Age:                      35,
		CreditHistory:            vo.CreditHistoryExcellent,
		EmploymentType:           vo.EmploymentFullTime,
		YearsInCurrentEmployment: 12,
		DesiredLoanAmount:        100_000_000,
		DesiredTermYears:         5,
		CollateralValue:          1_000_000_000,
		HasCoApplicant:           true,
		PriorLoanCount:           2,
		PriorLoanRepaidCount:     2,
		HousingStatus:            vo.HousingOwnOutright,
	}
	b := s.Explain(best)
	assert.Greater(t, b.Raw, 100.0)
	assert.Equal(t, 100, b.Score)

	worst := model.ApplicantProfile{
		Age:                65,
		CreditHistory:      vo.CreditHistoryPoor,
		EmploymentType:     vo.EmploymentUnemployed,
		ExistingAnnualDebt: 50_000_000,
		MonthlyExpenses:    2_000_000,
		DesiredLoanAmount:  500_000_000,
		DependentCount:     5,
		PriorLoanCount:     3,
		HousingStatus:      vo.HousingOther,
	}
	b = s.Explain(worst)
	assert.Less(t, b.Raw, 0.0)
	assert.Equal(t, 0, b.Score)
}

func TestEligibilityScorer_PartialIncomeCredit(t *testing.T) {
	s := NewEligibilityScorer()
	tests := []struct {
		income float64
		want   float64
	}{
		{0, 0},
		{2_000_000, 1},
		{4_000_000, 2},
		{4_999_999, 2.4999995},
		{5_000_000, 5},
		{6_999_999, 5},
		{7_000_000, 7},
		{9_999_999, 7},
		{10_000_000, 10},
		{19_999_999, 10},
		{20_000_000, 12},
		{29_999_999, 12},
		{30_000_000, 15},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, s.incomePoints(tt.income), 1e-9, "income %v", tt.income)
	}
}

func TestEligibilityScorer_MonotonicInIncome(t *testing.T) {
	s := NewEligibilityScorer()
	p := testutil.ReferenceApplicant()

	prev := -1
	for income := 0.0; income <= 40_000_000; income += 500_000 {
		p.MonthlyIncome = income
		got := s.Score(p)
		assert.GreaterOrEqual(t, got, prev, "income %v", income)
		assert.GreaterOrEqual(t, got, model.MinScore)
		assert.LessOrEqual(t, got, model.MaxScore)
		prev = got
	}
}

func TestEligibilityScorer_UnknownCategoriesContributeNothing(t *testing.T) {
	s := NewEligibilityScorer()
	p := testutil.ReferenceApplicant()
	p.HousingStatus = vo.HousingStatus{}
	p.CreditHistory = vo.CreditHistoryTier{}

	assert.Equal(t, 86, s.Score(p))
}

func TestEligibilityScorer_AgeBrackets(t *testing.T) {
	s := NewEligibilityScorer()
	for age, want := range map[int]float64{18: 1, 24: 1, 25: 5, 45: 5, 46: 3, 55: 3, 58: 1, 61: -5, 80: -5} {
		assert.Equal(t, want, s.age.DeltaFor(float64(age)), "age %d", age)
	}
}

func factorPoints(t *testing.T, b ScoreBreakdown, name string) float64 {
	t.Helper()
	for _, f := range b.Factors {
		if f.Name == name {
			return f.Points
		}
	}
	t.Fatalf("factor %q not in breakdown", name)
	return 0
}

// weakApplicant scores well clear of both clamps so sweeps stay visible.
func weakApplicant() model.ApplicantProfile {
	p := testutil.ReferenceApplicant()
	p.CreditHistory = vo.CreditHistoryPoor
	return p
}

func TestEligibilityScorer_YearsEmployedBreakpoints(t *testing.T) {
	s := NewEligibilityScorer()
	tests := []struct {
		years float64
		want  float64
	}{
		{0, 0},
		{0.99, 0},
		{1, 3},
		{2.99, 3},
		{3, 5},
		{4.99, 5},
		{5, 8},
		{9.99, 8},
		{10, 10},
		{30, 10},
	}
	for _, tt := range tests {
		p := testutil.ReferenceApplicant()
		p.YearsInCurrentEmployment = tt.years
		assert.Equal(t, tt.want, factorPoints(t, s.Explain(p), "years_employed"), "years %v", tt.years)
	}
}

func TestEligibilityScorer_DebtToIncomeBreakpoints(t *testing.T) {
	s := NewEligibilityScorer()
	const eps = 1e-9
	tests := []struct {
		dti  float64
		want float64
	}{
		{0, 10},
		{0.3, 10},
		{0.3 + eps, 7},
		{0.4, 7},
		{0.4 + eps, 3},
		{0.5, 3},
		{0.5 + eps, 0},
		{0.6, 0},
		{0.6 + eps, -5},
		{5, -5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, s.debtToIncome.Evaluate(tt.dti), "dti %v", tt.dti)
	}

	// The ratio reaches the table through the offset denominator.
	p := testutil.ReferenceApplicant()
	p.MonthlyExpenses = 4_000_000
	assert.Equal(t, 7.0, factorPoints(t, s.Explain(p), "debt_to_income"))
	p.MonthlyExpenses = 4_000_001
	assert.Equal(t, 3.0, factorPoints(t, s.Explain(p), "debt_to_income"))
}

func TestEligibilityScorer_LoanToIncomeBreakpoints(t *testing.T) {
	s := NewEligibilityScorer()
	const eps = 1e-9
	tests := []struct {
		lti  float64
		want float64
	}{
		{0, 10},
		{2, 10},
		{2 + eps, 7},
		{3, 7},
		{3 + eps, 5},
		{4, 5},
		{4 + eps, 2},
		{5, 2},
		{5 + eps, 0},
		{6, 0},
		{6 + eps, -5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, s.loanToIncome.Evaluate(tt.lti), "loan/income %v", tt.lti)
	}

	p := testutil.ReferenceApplicant()
	p.DesiredLoanAmount = 360_000_000
	assert.Equal(t, 7.0, factorPoints(t, s.Explain(p), "loan_to_income"))
	p.DesiredLoanAmount = 360_000_001
	assert.Equal(t, 5.0, factorPoints(t, s.Explain(p), "loan_to_income"))
}

func TestEligibilityScorer_CollateralCoverageBreakpoints(t *testing.T) {
	s := NewEligibilityScorer()
	tests := []struct {
		collateral float64
		want       float64
	}{
		{1, 1},
		{69_999_999, 1},
		{70_000_000, 3},
		{99_999_999, 3},
		{100_000_000, 5},
		{119_999_999, 5},
		{120_000_000, 8},
		{149_999_999, 8},
		{150_000_000, 10},
		{1_000_000_000, 10},
	}
	for _, tt := range tests {
		p := testutil.ReferenceApplicant()
		p.DesiredLoanAmount = 100_000_000
		p.CollateralValue = tt.collateral
		assert.Equal(t, tt.want, factorPoints(t, s.Explain(p), "collateral_coverage"), "collateral %v", tt.collateral)
	}

	for _, f := range s.Explain(testutil.ReferenceApplicant()).Factors {
		assert.NotEqual(t, "collateral_coverage", f.Name, "unsecured loans have no coverage factor")
	}
}

func TestEligibilityScorer_RepaymentBreakpoints(t *testing.T) {
	s := NewEligibilityScorer()
	tests := []struct {
		loans, repaid int
		want          float64
	}{
		{5, 5, 10},
		{100, 99, 7},
		{5, 4, 7},
		{100, 79, 3},
		{5, 3, 3},
		{100, 59, -2},
		{5, 2, -2},
		{100, 39, -10},
		{5, 0, -10},
	}
	for _, tt := range tests {
		p := testutil.ReferenceApplicant()
		p.PriorLoanCount = tt.loans
		p.PriorLoanRepaidCount = tt.repaid
		assert.Equal(t, tt.want, factorPoints(t, s.Explain(p), "repayment_history"), "%d of %d repaid", tt.repaid, tt.loans)
	}
}

func TestEligibilityScorer_DependentsBreakpoints(t *testing.T) {
	s := NewEligibilityScorer()
	for deps, want := range map[int]float64{0: 3, 1: 3, 2: 1, 3: -2, 7: -2} {
		p := testutil.ReferenceApplicant()
		p.DependentCount = deps
		assert.Equal(t, want, factorPoints(t, s.Explain(p), "dependents"), "dependents %d", deps)
	}
}

func TestEligibilityScorer_CategoryDeltas(t *testing.T) {
	s := NewEligibilityScorer()

	housing := map[vo.HousingStatus]float64{
		vo.HousingOwnOutright:      5,
		vo.HousingOwnMortgage:      3,
		vo.HousingRent:             0,
		vo.HousingLivingWithFamily: 1,
		vo.HousingOther:            0,
	}
	for status, want := range housing {
		p := testutil.ReferenceApplicant()
		p.HousingStatus = status
		assert.Equal(t, want, factorPoints(t, s.Explain(p), "housing"), "housing %v", status)
	}

	employment := map[vo.EmploymentType]float64{
		vo.EmploymentFullTime:     5,
		vo.EmploymentPartTime:     2,
		vo.EmploymentSelfEmployed: 3,
		vo.EmploymentContract:     1,
		vo.EmploymentUnemployed:   -15,
	}
	for kind, want := range employment {
		p := testutil.ReferenceApplicant()
		p.EmploymentType = kind
		assert.Equal(t, want, factorPoints(t, s.Explain(p), "employment_type"), "employment %v", kind)
	}

	credit := map[vo.CreditHistoryTier]float64{
		vo.CreditHistoryExcellent: 15,
		vo.CreditHistoryGood:      10,
		vo.CreditHistoryFair:      5,
		vo.CreditHistoryPoor:      -10,
		vo.CreditHistoryNone:      -5,
	}
	for tier, want := range credit {
		p := testutil.ReferenceApplicant()
		p.CreditHistory = tier
		assert.Equal(t, want, factorPoints(t, s.Explain(p), "credit_history"), "credit %v", tier)
	}

	p := testutil.ReferenceApplicant()
	p.HasCoApplicant = true
	assert.Equal(t, 5.0, factorPoints(t, s.Explain(p), "co_applicant"))
}

func TestEligibilityScorer_MonotonicInYearsEmployed(t *testing.T) {
	s := NewEligibilityScorer()
	p := weakApplicant()

	prev := -1
	first := 0
	for years := 0.0; years <= 15; years += 0.25 {
		p.YearsInCurrentEmployment = years
		got := s.Score(p)
		if years == 0 {
			first = got
		}
		assert.GreaterOrEqual(t, got, prev, "years %v", years)
		prev = got
	}
	assert.Greater(t, prev, first)
}

func TestEligibilityScorer_MonotonicInCollateral(t *testing.T) {
	s := NewEligibilityScorer()
	p := weakApplicant()
	p.DesiredLoanAmount = 100_000_000

	prev := -1
	first := 0
	for collateral := 0.0; collateral <= 300_000_000; collateral += 2_500_000 {
		p.CollateralValue = collateral
		got := s.Score(p)
		if collateral == 0 {
			first = got
		}
		assert.GreaterOrEqual(t, got, prev, "collateral %v", collateral)
		prev = got
	}
	assert.Greater(t, prev, first)
}
