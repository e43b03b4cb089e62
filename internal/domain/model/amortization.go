package model

import "math"

// AmortizationRow is one period of a fixed-payment schedule.
type AmortizationRow struct {
	Period           int
	Payment          float64
	Principal        float64
	Interest         float64
	RemainingBalance float64
}

// GenerateAmortizationSchedule computes a fixed-payment monthly schedule.
//
// The calculation uses:
//
//	r       = annualRatePercent / 100 / 12
//	payment = P * r * (1+r)^n / ((1+r)^n - 1)
//	payment = P / n                              when r == 0
//
// The last scheduled period repays whatever principal remains so the final
// balance is exactly zero. The schedule stops early if the balance reaches
// zero before the nominal term. A non-positive principal or term yields no
// rows.
func GenerateAmortizationSchedule(principal, annualRatePercent float64, termYears int) []AmortizationRow {
	if termYears <= 0 || !(principal > 0) || math.IsInf(principal, 0) {
		return nil
	}

	periods := termYears * 12
	monthlyRate := annualRatePercent / 100 / 12

	payment := principal / float64(periods)
	if monthlyRate != 0 {
		factor := math.Pow(1+monthlyRate, float64(periods))
		payment = principal * monthlyRate * factor / (factor - 1)
	}

	schedule := make([]AmortizationRow, 0, periods)
	balance := principal

	for period := 1; period <= periods; period++ {
		interest := balance * monthlyRate
		principalPart := payment - interest
		rowPayment := payment

		// Last period: absorb floating-point drift so the balance closes at zero.
		if period == periods {
			principalPart = balance
			rowPayment = principalPart + interest
		}

		balance -= principalPart
		if period == periods || balance <= 0 {
			balance = 0
		}

		schedule = append(schedule, AmortizationRow{
			Period:           period,
			Payment:          rowPayment,
			Principal:        principalPart,
			Interest:         interest,
			RemainingBalance: balance,
		})

		if balance <= 0 {
			break
		}
	}

	return schedule
}

// ScheduleSummary aggregates a schedule for display.
type ScheduleSummary struct {
	MonthlyPayment float64
	TotalPayment   float64
	TotalInterest  float64
	Periods        int
}

// Summarize totals a schedule. MonthlyPayment is the first row's payment.
func Summarize(rows []AmortizationRow) ScheduleSummary {
	var s ScheduleSummary
	if len(rows) == 0 {
		return s
	}
	s.MonthlyPayment = rows[0].Payment
	s.Periods = len(rows)
	for _, r := range rows {
		s.TotalPayment += r.Payment
		s.TotalInterest += r.Interest
	}
	return s
}
