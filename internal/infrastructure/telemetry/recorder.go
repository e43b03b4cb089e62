// Package telemetry records engine metrics through OpenTelemetry.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/model"
)

const meterName = "github.com/ggonevn2t4/vay-thong-minh-viet-sub001"

// Recorder implements port.EvaluationRecorder.
type Recorder struct {
	evaluations  metric.Int64Counter
	scores       metric.Int64Histogram
	ratedLenders metric.Int64Histogram
	advisories   metric.Int64Counter
	cacheLookups metric.Int64Counter
	panelReloads metric.Int64Counter
	panelLenders metric.Int64Gauge
}

// NewRecorder creates the instruments on a meter from provider.
func NewRecorder(provider metric.MeterProvider) (*Recorder, error) {
	m := provider.Meter(meterName)
	r := &Recorder{}

	var err error
	if r.evaluations, err = m.Int64Counter("loanmatch_evaluations_total",
		metric.WithDescription("Completed applicant evaluations.")); err != nil {
		return nil, fmt.Errorf("telemetry: evaluations counter: %w", err)
	}
	if r.scores, err = m.Int64Histogram("loanmatch_eligibility_score",
		metric.WithDescription("Eligibility scores produced by evaluations."),
		metric.WithExplicitBucketBoundaries(10, 20, 30, 40, 50, 60, 70, 80, 90, 100)); err != nil {
		return nil, fmt.Errorf("telemetry: score histogram: %w", err)
	}
	if r.ratedLenders, err = m.Int64Histogram("loanmatch_rated_lenders",
		metric.WithDescription("Lenders offering a rate per evaluation.")); err != nil {
		return nil, fmt.Errorf("telemetry: rated lenders histogram: %w", err)
	}
	if r.advisories, err = m.Int64Counter("loanmatch_advisories_total",
		metric.WithDescription("Advisories raised, by code.")); err != nil {
		return nil, fmt.Errorf("telemetry: advisories counter: %w", err)
	}
	if r.cacheLookups, err = m.Int64Counter("loanmatch_schedule_cache_lookups_total",
		metric.WithDescription("Schedule cache lookups, by result.")); err != nil {
		return nil, fmt.Errorf("telemetry: cache counter: %w", err)
	}
	if r.panelReloads, err = m.Int64Counter("loanmatch_panel_reloads_total",
		metric.WithDescription("Lender panel reload attempts, by outcome.")); err != nil {
		return nil, fmt.Errorf("telemetry: reload counter: %w", err)
	}
	if r.panelLenders, err = m.Int64Gauge("loanmatch_panel_lenders",
		metric.WithDescription("Lenders on the active panel.")); err != nil {
		return nil, fmt.Errorf("telemetry: panel gauge: %w", err)
	}
	return r, nil
}

func (r *Recorder) RecordEvaluation(ctx context.Context, score, lenders, rated int) {
	r.evaluations.Add(ctx, 1)
	r.scores.Record(ctx, int64(score))
	r.ratedLenders.Record(ctx, int64(rated), metric.WithAttributes(attribute.Int("panel_size", lenders)))
}

func (r *Recorder) RecordAdvisory(ctx context.Context, code model.AdvisoryCode) {
	r.advisories.Add(ctx, 1, metric.WithAttributes(attribute.String("code", string(code))))
}

func (r *Recorder) RecordCacheLookup(ctx context.Context, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cacheLookups.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}

func (r *Recorder) RecordPanelReload(ctx context.Context, lenders int, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	r.panelReloads.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	if err == nil {
		r.panelLenders.Record(ctx, int64(lenders))
	}
}
