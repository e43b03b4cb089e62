package usecase

import (
	"context"
	"log/slog"

	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/application/dto"
	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/model"
	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/port"
	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/service"
)

// CheckWarningsUseCase runs the advisory rules for an applicant.
type CheckWarningsUseCase struct {
	engine   *service.Engine
	recorder port.EvaluationRecorder
	logger   *slog.Logger
}

// NewCheckWarningsUseCase wires dependencies. recorder may be nil.
func NewCheckWarningsUseCase(engine *service.Engine, recorder port.EvaluationRecorder, logger *slog.Logger) *CheckWarningsUseCase {
	return &CheckWarningsUseCase{
		engine:   engine,
		recorder: recorderOrNop(recorder),
		logger:   loggerOrDefault(logger),
	}
}

// Execute returns the notices raised for the applicant. Delivery failures
// are logged and never fail the request.
func (uc *CheckWarningsUseCase) Execute(ctx context.Context, req dto.ApplicantRequest) (dto.WarningsResponse, error) {
	ctx, span := startSpan(ctx, "CheckWarnings")
	defer span.End()

	p, err := req.ToProfile()
	if err != nil {
		failSpan(span, err)
		return dto.WarningsResponse{}, err
	}

	return dto.WarningsResponse{Advisories: toAdvisoryResponses(uc.check(ctx, p))}, nil
}

func (uc *CheckWarningsUseCase) check(ctx context.Context, p model.ApplicantProfile) []model.Advisory {
	advisories, err := uc.engine.CheckWarnings(ctx, p)
	if err != nil {
		uc.logger.WarnContext(ctx, "advisory delivery failed", "error", err)
	}
	for _, a := range advisories {
		uc.recorder.RecordAdvisory(ctx, a.Code)
	}
	return advisories
}
