package service

import (
	"sort"

	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/model"
	vo "github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/valueobject"
)

// BaseMatchScore is every lender's starting match score.
const BaseMatchScore = 50

// LenderMatcher ranks a lender panel for one applicant.
type LenderMatcher struct {
	resolver  *RateResolver
	scoreGap  vo.ThresholdLadder
	cheapRate vo.ThresholdLadder
	dearRate  vo.ThresholdLadder
}

// NewLenderMatcher returns a matcher that resolves rates with resolver.
func NewLenderMatcher(resolver *RateResolver) *LenderMatcher {
	return &LenderMatcher{
		resolver: resolver,
		scoreGap: vo.NewThresholdLadder(vo.AtLeast, 0,
			vo.Step{Threshold: 20, Delta: 15},
			vo.Step{Threshold: 10, Delta: 10},
			vo.Step{Threshold: 5, Delta: 5},
		),
		cheapRate: vo.NewThresholdLadder(vo.AtMost, 0,
			vo.Step{Threshold: 8, Delta: 10},
			vo.Step{Threshold: 9, Delta: 5},
		),
		dearRate: vo.NewThresholdLadder(vo.AtLeast, 0,
			vo.Step{Threshold: 12, Delta: -10},
			vo.Step{Threshold: 11, Delta: -5},
		),
	}
}

// MatchAll scores every lender on the panel and returns the results sorted
// by descending match score. Ties keep panel declaration order.
func (m *LenderMatcher) MatchAll(p model.ApplicantProfile, score int, panel *model.LenderPanel) []model.MatchResult {
	lenders := panel.Lenders()
	results := make([]model.MatchResult, 0, len(lenders))
	for _, l := range lenders {
		results = append(results, m.Match(p, score, l))
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchScore > results[j].MatchScore
	})
	return results
}

// Match scores a single lender.
func (m *LenderMatcher) Match(p model.ApplicantProfile, score int, l model.LenderProfile) model.MatchResult {
	pts := float64(BaseMatchScore)

	if score < l.MinScore {
		pts -= 30
	} else {
		pts += m.scoreGap.Evaluate(float64(score - l.MinScore))
	}

	if p.MonthlyIncome < l.MinMonthlyIncome {
		pts -= 20
	} else {
		pts += vo.NewThresholdLadder(vo.AtLeast, 0,
			vo.Step{Threshold: 2 * l.MinMonthlyIncome, Delta: 10},
			vo.Step{Threshold: 1.5 * l.MinMonthlyIncome, Delta: 7},
			vo.Step{Threshold: 1.2 * l.MinMonthlyIncome, Delta: 5},
		).Evaluate(p.MonthlyIncome)
	}

	dti := p.DebtToIncome()
	if dti > l.MaxDebtToIncome {
		pts -= 15
	} else {
		pts += vo.NewThresholdLadder(vo.AtMost, 0,
			vo.Step{Threshold: 0.6 * l.MaxDebtToIncome, Delta: 10},
			vo.Step{Threshold: 0.8 * l.MaxDebtToIncome, Delta: 5},
		).Evaluate(dti)
	}

	if p.IsSecured() {
		ltc := p.LoanToCollateral()
		if ltc > l.MaxLoanToCollateral {
			pts -= 10
		} else {
			pts += vo.NewThresholdLadder(vo.AtMost, 0,
				vo.Step{Threshold: 0.7 * l.MaxLoanToCollateral, Delta: 10},
				vo.Step{Threshold: 0.85 * l.MaxLoanToCollateral, Delta: 5},
			).Evaluate(ltc)
		}
	} else {
		pts -= 5
	}

	if p.YearsInCurrentEmployment < l.MinEmploymentYears {
		pts -= 10
	} else {
		pts += vo.NewThresholdLadder(vo.AtLeast, 0,
			vo.Step{Threshold: 3 * l.MinEmploymentYears, Delta: 10},
			vo.Step{Threshold: 2 * l.MinEmploymentYears, Delta: 5},
		).Evaluate(p.YearsInCurrentEmployment)
	}

	if l.PrefersOccupation(p.OccupationCategory) {
		pts += 10
	}
	if l.PrefersPurpose(p.LoanPurpose) {
		pts += 10
	}

	result := model.MatchResult{Lender: l}
	if rate, ok := m.resolver.Resolve(p, score, l); ok {
		result.ResolvedRate = &rate
		pts += m.cheapRate.Evaluate(rate) + m.dearRate.Evaluate(rate)
	}

	result.MatchScore = clampScore(pts)
	return result
}
