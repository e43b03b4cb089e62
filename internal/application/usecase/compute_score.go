package usecase

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/application/dto"
	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/service"
)

// ComputeScoreUseCase scores an applicant.
type ComputeScoreUseCase struct {
	engine *service.Engine
}

// NewComputeScoreUseCase wires dependencies.
func NewComputeScoreUseCase(engine *service.Engine) *ComputeScoreUseCase {
	return &ComputeScoreUseCase{engine: engine}
}

// Execute validates the request and returns the score with its breakdown.
func (uc *ComputeScoreUseCase) Execute(ctx context.Context, req dto.ApplicantRequest) (dto.ScoreResponse, error) {
	_, span := startSpan(ctx, "ComputeScore")
	defer span.End()

	p, err := req.ToProfile()
	if err != nil {
		failSpan(span, err)
		return dto.ScoreResponse{}, err
	}

	b := uc.engine.ExplainScore(p)
	span.SetAttributes(attribute.Int("loanmatch.score", b.Score))
	return toScoreResponse(b), nil
}
