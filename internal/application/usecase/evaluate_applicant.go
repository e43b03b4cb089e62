package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/application/dto"
	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/model"
	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/port"
	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/service"
)

// EvaluateApplicantUseCase runs a full evaluation: score, rank, schedule the
// best rated lender, quote its fees and raise advisories.
type EvaluateApplicantUseCase struct {
	engine    *service.Engine
	schedules *BuildScheduleUseCase
	warnings  *CheckWarningsUseCase
	fees      *service.FeeCalculator
	recorder  port.EvaluationRecorder
	logger    *slog.Logger
}

// NewEvaluateApplicantUseCase wires dependencies. recorder may be nil.
func NewEvaluateApplicantUseCase(
	engine *service.Engine,
	schedules *BuildScheduleUseCase,
	warnings *CheckWarningsUseCase,
	fees *service.FeeCalculator,
	recorder port.EvaluationRecorder,
	logger *slog.Logger,
) *EvaluateApplicantUseCase {
	return &EvaluateApplicantUseCase{
		engine:    engine,
		schedules: schedules,
		warnings:  warnings,
		fees:      fees,
		recorder:  recorderOrNop(recorder),
		logger:    loggerOrDefault(logger),
	}
}

// Execute evaluates the applicant against the active panel.
func (uc *EvaluateApplicantUseCase) Execute(ctx context.Context, req dto.ApplicantRequest) (dto.EvaluationResponse, error) {
	ctx, span := startSpan(ctx, "Evaluate")
	defer span.End()

	// 1. Validate.
	p, err := req.ToProfile()
	if err != nil {
		failSpan(span, err)
		return dto.EvaluationResponse{}, err
	}

	evaluationID := uuid.NewString()
	ctx = port.WithEvaluationID(ctx, evaluationID)
	span.SetAttributes(attribute.String("loanmatch.evaluation_id", evaluationID))

	panel, err := uc.engine.Panel()
	if err != nil {
		failSpan(span, err)
		return dto.EvaluationResponse{}, fmt.Errorf("current panel: %w", err)
	}

	// 2. Score.
	breakdown := uc.engine.ExplainScore(p)

	// 3. Rank the panel.
	results, err := uc.engine.MatchLenders(p, breakdown.Score)
	if err != nil {
		failSpan(span, err)
		return dto.EvaluationResponse{}, fmt.Errorf("match lenders: %w", err)
	}

	resp := dto.EvaluationResponse{
		EvaluationID: evaluationID,
		PanelVersion: panel.Version(),
		Score:        toScoreResponse(breakdown),
		Matches:      toMatchResponses(results),
	}

	// 4. Schedule and fees for the best lender that offers a rate.
	if top, ok := model.TopRated(results); ok {
		rate, _ := top.Rate()
		topResp := toMatchResponse(top)
		resp.TopLender = &topResp

		rows := uc.schedules.schedule(ctx, p.DesiredLoanAmount, rate, p.DesiredTermYears)
		schedule := toScheduleResponse(rows, uc.schedules.currency)
		resp.Schedule = &schedule

		fees, err := toFeeQuoteResponse(uc.fees.Quote(top.Lender, p.DesiredLoanAmount, p.DesiredTermYears))
		if err != nil {
			failSpan(span, err)
			return dto.EvaluationResponse{}, fmt.Errorf("quote fees: %w", err)
		}
		resp.Fees = &fees
	}

	// 5. Advisories.
	resp.Advisories = toAdvisoryResponses(uc.warnings.check(ctx, p))

	rated := 0
	for _, r := range results {
		if r.HasRate() {
			rated++
		}
	}
	uc.recorder.RecordEvaluation(ctx, breakdown.Score, len(results), rated)
	span.SetAttributes(
		attribute.Int("loanmatch.score", breakdown.Score),
		attribute.Int("loanmatch.rated_lenders", rated),
	)

	uc.logger.InfoContext(ctx, "applicant evaluated",
		"evaluation_id", evaluationID,
		"eligibility_score", breakdown.Score,
		"lenders", len(results),
		"rated_lenders", rated,
		"advisories", len(resp.Advisories),
	)
	return resp, nil
}
