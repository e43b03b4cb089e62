package service

import (
	"context"
	"fmt"

	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/model"
	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/port"
)

// Engine bundles the scoring, matching, amortization and advisory
// operations over the active lender panel. It holds no mutable state and
// is safe for concurrent use.
type Engine struct {
	panels   port.PanelProvider
	scorer   *EligibilityScorer
	resolver *RateResolver
	matcher  *LenderMatcher
	advisory *AdvisoryCheck
}

// NewEngine wires the domain services. notifier may be nil.
func NewEngine(panels port.PanelProvider, notifier port.Notifier) *Engine {
	resolver := NewRateResolver()
	return &Engine{
		panels:   panels,
		scorer:   NewEligibilityScorer(),
		resolver: resolver,
		matcher:  NewLenderMatcher(resolver),
		advisory: NewAdvisoryCheck(notifier),
	}
}

// ComputeScore returns the applicant's eligibility score in [0,100].
func (e *Engine) ComputeScore(p model.ApplicantProfile) int {
	return e.scorer.Score(p)
}

// ExplainScore returns the score with its per-factor contributions.
func (e *Engine) ExplainScore(p model.ApplicantProfile) ScoreBreakdown {
	return e.scorer.Explain(p)
}

// MatchLenders ranks the active panel for the applicant.
func (e *Engine) MatchLenders(p model.ApplicantProfile, score int) ([]model.MatchResult, error) {
	panel, err := e.panels.Current()
	if err != nil {
		return nil, fmt.Errorf("current panel: %w", err)
	}
	return e.matcher.MatchAll(p, score, panel), nil
}

// ResolveRate resolves one lender's rate. The boolean is false when the
// lender has no tier for score.
func (e *Engine) ResolveRate(p model.ApplicantProfile, score int, lenderID string) (float64, bool, error) {
	panel, err := e.panels.Current()
	if err != nil {
		return 0, false, fmt.Errorf("current panel: %w", err)
	}
	l, err := panel.Lender(lenderID)
	if err != nil {
		return 0, false, err
	}
	rate, ok := e.resolver.Resolve(p, score, l)
	return rate, ok, nil
}

// BuildSchedule produces the amortization schedule for the loan terms.
func (e *Engine) BuildSchedule(principal, annualRatePercent float64, termYears int) []model.AmortizationRow {
	return model.GenerateAmortizationSchedule(principal, annualRatePercent, termYears)
}

// CheckWarnings runs the advisory rules and delivers any notices to the
// engine's notifier and to each of extra.
func (e *Engine) CheckWarnings(ctx context.Context, p model.ApplicantProfile, extra ...port.Notifier) ([]model.Advisory, error) {
	return e.advisory.Check(ctx, p, extra...)
}

// Panel returns the active lender panel.
func (e *Engine) Panel() (*model.LenderPanel, error) {
	return e.panels.Current()
}
