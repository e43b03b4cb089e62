package usecase

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/application/dto"
	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/model"
	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/service"
	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/pkg/money"
)

func toScoreResponse(b service.ScoreBreakdown) dto.ScoreResponse {
	factors := make([]dto.ScoreFactorResponse, 0, len(b.Factors))
	for _, f := range b.Factors {
		factors = append(factors, dto.ScoreFactorResponse{Name: f.Name, Points: f.Points})
	}
	return dto.ScoreResponse{Score: b.Score, Factors: factors}
}

func toMatchResponse(r model.MatchResult) dto.MatchResponse {
	resp := dto.MatchResponse{
		LenderID:    r.Lender.ID,
		LenderName:  r.Lender.Name,
		MatchScore:  r.MatchScore,
		RateDisplay: dto.RateUnavailable,
	}
	if rate, ok := r.Rate(); ok {
		resp.Rate = &rate
		resp.RateDisplay = fmt.Sprintf("%.2f%%", rate)
	}
	return resp
}

func toMatchResponses(results []model.MatchResult) []dto.MatchResponse {
	out := make([]dto.MatchResponse, 0, len(results))
	for _, r := range results {
		out = append(out, toMatchResponse(r))
	}
	return out
}

// toScheduleResponse rounds a schedule to the currency's minor unit. Row
// principal is the drop between consecutive rounded balances, so the column
// sums to the rounded principal exactly; payment is principal plus rounded
// interest, and the totals are sums of the rounded rows.
func toScheduleResponse(rows []model.AmortizationRow, currency money.Currency) dto.ScheduleResponse {
	round := func(v float64) money.Money {
		return money.NewFromFloat(v, currency).Round()
	}

	summary := model.Summarize(rows)
	resp := dto.ScheduleResponse{
		Currency:       currency.Code(),
		MonthlyPayment: round(summary.MonthlyPayment).Amount(),
		TotalPayment:   decimal.Zero,
		TotalInterest:  decimal.Zero,
		Periods:        summary.Periods,
		Rows:           make([]dto.ScheduleRowResponse, 0, len(rows)),
	}
	if len(rows) == 0 {
		return resp
	}

	opening := round(rows[0].Principal + rows[0].RemainingBalance).Amount()
	for _, r := range rows {
		balance := round(r.RemainingBalance).Amount()
		principal := opening.Sub(balance)
		interest := round(r.Interest).Amount()
		payment := principal.Add(interest)

		resp.Rows = append(resp.Rows, dto.ScheduleRowResponse{
			Period:           r.Period,
			Payment:          payment,
			Principal:        principal,
			Interest:         interest,
			RemainingBalance: balance,
		})
		resp.TotalPayment = resp.TotalPayment.Add(payment)
		resp.TotalInterest = resp.TotalInterest.Add(interest)
		opening = balance
	}
	return resp
}

func toAdvisoryResponses(advisories []model.Advisory) []dto.AdvisoryResponse {
	out := make([]dto.AdvisoryResponse, 0, len(advisories))
	for _, a := range advisories {
		out = append(out, dto.AdvisoryResponse{Code: string(a.Code), Message: a.Message})
	}
	return out
}

func toFeeQuoteResponse(q service.FeeQuote) (dto.FeeQuoteResponse, error) {
	upfront, err := q.Upfront()
	if err != nil {
		return dto.FeeQuoteResponse{}, fmt.Errorf("upfront fees: %w", err)
	}
	total, err := q.TotalCost()
	if err != nil {
		return dto.FeeQuoteResponse{}, fmt.Errorf("total cost: %w", err)
	}
	return dto.FeeQuoteResponse{
		ProcessingFee:         q.ProcessingFee.Amount(),
		InsuranceFee:          q.InsuranceFee.Amount(),
		ManagementFees:        q.ManagementFees.Amount(),
		EarlyRepaymentPenalty: q.EarlyRepaymentPenalty.Amount(),
		LatePaymentFeePercent: q.LatePaymentFeePercent,
		Upfront:               upfront.Amount(),
		TotalCost:             total.Amount(),
	}, nil
}

func toLenderResponse(l model.LenderProfile) dto.LenderResponse {
	tiers := make([]dto.RateTierResponse, 0, len(l.RateTiers))
	for _, t := range l.RateTiers {
		tiers = append(tiers, dto.RateTierResponse{
			MinScore: t.Scores.Min,
			MaxScore: t.Scores.Max,
			BaseRate: t.BaseRate,
		})
	}
	return dto.LenderResponse{
		ID:                   l.ID,
		Name:                 l.Name,
		MinScore:             l.MinScore,
		MinMonthlyIncome:     l.MinMonthlyIncome,
		MaxDebtToIncome:      l.MaxDebtToIncome,
		MaxLoanToCollateral:  l.MaxLoanToCollateral,
		MinEmploymentYears:   l.MinEmploymentYears,
		PreferredOccupations: l.PreferredOccupations,
		PreferredPurposes:    l.PreferredPurposes,
		RateTiers:            tiers,
	}
}
