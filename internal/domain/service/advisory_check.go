package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/model"
	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/port"
)

// Advisory thresholds.
const (
	MaxLoanToAnnualIncomeMultiple = 5.0
	MaxDebtServiceToIncome        = 0.5
)

// AdvisoryCheck raises cautionary notices about an applicant's request.
// Notices never affect the score or the schedule.
type AdvisoryCheck struct {
	notifier port.Notifier
}

// NewAdvisoryCheck returns a check that delivers notices to notifier. A nil
// notifier only computes them.
func NewAdvisoryCheck(notifier port.Notifier) *AdvisoryCheck {
	return &AdvisoryCheck{notifier: notifier}
}

// Warnings evaluates both rules independently.
func (c *AdvisoryCheck) Warnings(p model.ApplicantProfile) []model.Advisory {
	var out []model.Advisory

	if p.DesiredLoanAmount > p.MonthlyIncome*12*MaxLoanToAnnualIncomeMultiple {
		out = append(out, model.Advisory{
			Code:    model.AdvisoryLoanExceedsIncomeMultiple,
			Message: "loan exceeds 5x annual income",
		})
	}

	// No offset here: zero income with any debt divides to +Inf and fires,
	// zero income with no debt yields NaN and does not.
	if p.MonthlyDebtService()/p.MonthlyIncome > MaxDebtServiceToIncome {
		out = append(out, model.Advisory{
			Code:    model.AdvisoryDebtExceedsHalfIncome,
			Message: "existing debt exceeds 50% of income",
		})
	}

	return out
}

// Check computes the notices and hands them to the configured notifier and
// to each of extra. The notices are returned even when delivery fails.
func (c *AdvisoryCheck) Check(ctx context.Context, p model.ApplicantProfile, extra ...port.Notifier) ([]model.Advisory, error) {
	advisories := c.Warnings(p)
	if len(advisories) == 0 {
		return advisories, nil
	}

	targets := extra
	if c.notifier != nil {
		targets = append([]port.Notifier{c.notifier}, extra...)
	}

	var errs []error
	for _, n := range targets {
		for _, a := range advisories {
			if err := n.Notify(ctx, a); err != nil {
				errs = append(errs, fmt.Errorf("notify %s: %w", a.Code, err))
			}
		}
	}
	return advisories, errors.Join(errs...)
}
